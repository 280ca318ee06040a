// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"
	"sort"

	"code.questhq.io/quest/models/db"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/util"
)

// BulkAction is an operation applied to a batch of issues at once
type BulkAction string

// Bulk actions
const (
	BulkUpdateStatus   BulkAction = "updateStatus"
	BulkAssign         BulkAction = "assign"
	BulkUpdatePriority BulkAction = "updatePriority"
	BulkDelete         BulkAction = "delete"
)

// IsValidBulkAction checks if the action is a known bulk action
func IsValidBulkAction(a BulkAction) bool {
	switch a {
	case BulkUpdateStatus, BulkAssign, BulkUpdatePriority, BulkDelete:
		return true
	default:
		return false
	}
}

// ErrMixedProjects is returned when a bulk batch spans more than one
// project. Batches are scoped to a single project so the whole batch is
// covered by one authorization decision.
type ErrMixedProjects struct {
	ProjectIDs []int64
}

// IsErrMixedProjects checks if an error is a ErrMixedProjects.
func IsErrMixedProjects(err error) bool {
	_, ok := err.(ErrMixedProjects)
	return ok
}

func (err ErrMixedProjects) Error() string {
	return fmt.Sprintf("issues belong to different projects %v", err.ProjectIDs)
}

func (err ErrMixedProjects) Unwrap() error {
	return util.ErrInvalidArgument
}

// BulkOptions describes a bulk mutation over a batch of issues
type BulkOptions struct {
	Action   BulkAction
	IssueIDs []int64

	Status     IssueStatus   // BulkUpdateStatus
	AssigneeID int64         // BulkAssign, 0 unassigns
	Priority   IssuePriority // BulkUpdatePriority
}

// ApplyBulk applies one action to a batch of issues all-or-nothing. The
// whole batch must exist, belong to a single project, and be accessible
// to the doer; any failure leaves every issue untouched. It returns the
// affected issues in id order.
func ApplyBulk(ctx context.Context, doer *user_model.User, opts *BulkOptions) ([]*Issue, error) {
	if len(opts.IssueIDs) == 0 {
		return nil, util.NewInvalidArgumentErrorf("no issues in batch")
	}
	if !IsValidBulkAction(opts.Action) {
		return nil, util.NewInvalidArgumentErrorf("bulk action is not valid: %s", opts.Action)
	}

	issues, err := GetIssuesByIDs(ctx, opts.IssueIDs)
	if err != nil {
		return nil, err
	}
	if len(issues) != len(deduplicate(opts.IssueIDs)) {
		return nil, ErrIssueNotExist{ID: firstMissing(opts.IssueIDs, issues)}
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].ID < issues[j].ID })

	projectID := issues[0].ProjectID
	for _, issue := range issues[1:] {
		if issue.ProjectID != projectID {
			return nil, ErrMixedProjects{ProjectIDs: []int64{projectID, issue.ProjectID}}
		}
	}

	p, err := project_model.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	w, err := workspace_model.GetWorkspaceByID(ctx, p.WorkspaceID)
	if err != nil {
		return nil, err
	}
	access, err := workspace_model.HasWorkspaceAccess(ctx, doer.ID, w)
	if err != nil {
		return nil, err
	}
	if !access {
		return nil, util.NewPermissionDeniedErrorf("user %d has no access to workspace %d", doer.ID, w.ID)
	}

	switch opts.Action {
	case BulkUpdateStatus:
		if !IsValidStatus(opts.Status) {
			return nil, util.NewInvalidArgumentErrorf("issue status is not valid: %s", opts.Status)
		}
	case BulkUpdatePriority:
		if !IsValidPriority(opts.Priority) {
			return nil, util.NewInvalidArgumentErrorf("issue priority is not valid: %s", opts.Priority)
		}
	case BulkAssign:
		if opts.AssigneeID > 0 {
			assignee, err := user_model.GetUserByID(ctx, opts.AssigneeID)
			if err != nil {
				return nil, err
			}
			access, err := workspace_model.HasWorkspaceAccess(ctx, assignee.ID, w)
			if err != nil {
				return nil, err
			}
			if !access {
				return nil, util.NewInvalidArgumentErrorf("assignee %d is not a member of workspace %d", assignee.ID, w.ID)
			}
		}
	}

	if err := db.WithTx(ctx, func(ctx context.Context) error {
		switch opts.Action {
		case BulkUpdateStatus:
			return bulkUpdateStatus(ctx, projectID, issues, opts.Status)
		case BulkAssign:
			for _, issue := range issues {
				issue.AssigneeID = opts.AssigneeID
				if _, err := db.GetEngine(ctx).ID(issue.ID).Cols("assignee_id").Update(issue); err != nil {
					return err
				}
			}
		case BulkUpdatePriority:
			for _, issue := range issues {
				issue.Priority = opts.Priority
				if err := UpdateIssueCols(ctx, issue, "priority"); err != nil {
					return err
				}
			}
		case BulkDelete:
			for _, issue := range issues {
				subtasks, err := GetSubtasks(ctx, issue.ID)
				if err != nil {
					return err
				}
				for _, subtask := range subtasks {
					if err := deleteIssue(ctx, subtask); err != nil {
						return err
					}
				}
				if err := deleteIssue(ctx, issue); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return issues, nil
}

// bulkUpdateStatus moves the batch into the target group, appending to
// the end in id order so positions stay unique inside the group.
func bulkUpdateStatus(ctx context.Context, projectID int64, issues []*Issue, status IssueStatus) error {
	max, err := maxSorting(ctx, projectID, status)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		max++
		issue.Status = status
		issue.Sorting = max
		if err := UpdateIssueCols(ctx, issue, "status", "sorting"); err != nil {
			return err
		}
	}
	return nil
}

func deduplicate(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func firstMissing(ids []int64, issues []*Issue) int64 {
	found := make(map[int64]struct{}, len(issues))
	for _, issue := range issues {
		found[issue.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return id
		}
	}
	return 0
}
