// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package issue orchestrates issue mutations: the store write plus the
// notification fan-out that follows it.
package issue

import (
	"context"

	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/notification"
	"code.questhq.io/quest/modules/util"
)

// NewIssue creates a new issue in the project and notifies
func NewIssue(ctx context.Context, doer *user_model.User, p *project_model.Project, issue *issues_model.Issue, labelIDs []int64) error {
	if issue.AssigneeID > 0 {
		if err := checkAssignee(ctx, p, issue.AssigneeID); err != nil {
			return err
		}
	}
	if err := issues_model.NewIssue(ctx, p, issue, labelIDs); err != nil {
		return err
	}

	notification.NotifyNewIssue(ctx, doer, issue)
	return nil
}

// ChangeStatus moves the issue into another status group and notifies
func ChangeStatus(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, status issues_model.IssueStatus) error {
	oldStatus := issue.Status
	if err := issues_model.ChangeStatus(ctx, issue, status); err != nil {
		return err
	}
	if oldStatus == issue.Status {
		return nil
	}

	notification.NotifyIssueChangeStatus(ctx, doer, issue, oldStatus)
	return nil
}

// MoveIssue places the issue at an explicit board position and notifies
// when the move crossed columns.
func MoveIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, status issues_model.IssueStatus, sorting int64) error {
	oldStatus := issue.Status
	if err := issues_model.ChangePosition(ctx, issue, status, sorting); err != nil {
		return err
	}
	if oldStatus != issue.Status {
		notification.NotifyIssueChangeStatus(ctx, doer, issue, oldStatus)
	}
	return nil
}

// ChangeAssignee validates membership of the new assignee, updates the
// issue and notifies. assigneeID 0 unassigns.
func ChangeAssignee(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, assigneeID int64) error {
	if issue.AssigneeID == assigneeID {
		return nil
	}
	if assigneeID > 0 {
		if err := issue.LoadProject(ctx); err != nil {
			return err
		}
		if err := checkAssignee(ctx, issue.Project, assigneeID); err != nil {
			return err
		}
	}
	issue.AssigneeID = assigneeID
	if err := issues_model.UpdateIssueCols(ctx, issue, "assignee_id"); err != nil {
		return err
	}

	notification.NotifyIssueChangeAssignee(ctx, doer, issue)
	return nil
}

// ChangePriority updates the issue priority and notifies
func ChangePriority(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, priority issues_model.IssuePriority) error {
	if !issues_model.IsValidPriority(priority) {
		return util.NewInvalidArgumentErrorf("issue priority is not valid: %s", priority)
	}
	if issue.Priority == priority {
		return nil
	}
	issue.Priority = priority
	if err := issues_model.UpdateIssueCols(ctx, issue, "priority"); err != nil {
		return err
	}

	notification.NotifyIssueChangePriority(ctx, doer, issue)
	return nil
}

// DeleteIssue removes the issue with its full cascade and notifies
func DeleteIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) error {
	if err := issue.LoadProject(ctx); err != nil {
		return err
	}
	if err := issues_model.DeleteIssue(ctx, issue); err != nil {
		return err
	}

	notification.NotifyDeleteIssue(ctx, doer, issue)
	return nil
}

// CreateComment posts a comment on the issue and notifies
func CreateComment(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, content string) (*issues_model.Comment, error) {
	comment := &issues_model.Comment{
		IssueID:  issue.ID,
		PosterID: doer.ID,
		Content:  content,
	}
	if err := issues_model.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	notification.NotifyCreateIssueComment(ctx, doer, issue, comment)
	return comment, nil
}

// ApplyBulk runs a bulk mutation and notifies per affected issue
func ApplyBulk(ctx context.Context, doer *user_model.User, opts *issues_model.BulkOptions) ([]*issues_model.Issue, error) {
	oldStatuses := make(map[int64]issues_model.IssueStatus)
	if opts.Action == issues_model.BulkUpdateStatus {
		before, err := issues_model.GetIssuesByIDs(ctx, opts.IssueIDs)
		if err != nil {
			return nil, err
		}
		for _, issue := range before {
			oldStatuses[issue.ID] = issue.Status
		}
	}

	issues, err := issues_model.ApplyBulk(ctx, doer, opts)
	if err != nil {
		return nil, err
	}

	for _, issue := range issues {
		switch opts.Action {
		case issues_model.BulkUpdateStatus:
			if oldStatuses[issue.ID] != issue.Status {
				notification.NotifyIssueChangeStatus(ctx, doer, issue, oldStatuses[issue.ID])
			}
		case issues_model.BulkAssign:
			notification.NotifyIssueChangeAssignee(ctx, doer, issue)
		case issues_model.BulkUpdatePriority:
			notification.NotifyIssueChangePriority(ctx, doer, issue)
		case issues_model.BulkDelete:
			notification.NotifyDeleteIssue(ctx, doer, issue)
		}
	}
	return issues, nil
}

// checkAssignee ensures the user exists and can access the project's
// workspace.
func checkAssignee(ctx context.Context, p *project_model.Project, assigneeID int64) error {
	assignee, err := user_model.GetUserByID(ctx, assigneeID)
	if err != nil {
		return err
	}
	w, err := workspace_model.GetWorkspaceByID(ctx, p.WorkspaceID)
	if err != nil {
		return err
	}
	access, err := workspace_model.HasWorkspaceAccess(ctx, assignee.ID, w)
	if err != nil {
		return err
	}
	if !access {
		return util.NewInvalidArgumentErrorf("assignee %d is not a member of workspace %d", assignee.ID, w.ID)
	}
	return nil
}
