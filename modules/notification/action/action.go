// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package action

import (
	"context"

	activities_model "code.questhq.io/quest/models/activities"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/log"
	"code.questhq.io/quest/modules/notification/base"
)

type actionNotifier struct {
	base.NullNotifier
}

var _ base.Notifier = &actionNotifier{}

// NewNotifier create a new actionNotifier notifier
func NewNotifier() base.Notifier {
	return &actionNotifier{}
}

func (a *actionNotifier) record(ctx context.Context, act *activities_model.Activity) {
	if err := activities_model.NotifyActivity(ctx, act); err != nil {
		log.Error("NotifyActivity: %v", err)
	}
}

func (a *actionNotifier) issueActivity(ctx context.Context, opType activities_model.ActivityOpType, doer *user_model.User, issue *issues_model.Issue, commentID int64, content string) {
	if err := issue.LoadProject(ctx); err != nil {
		log.Error("LoadProject: %v", err)
		return
	}
	a.record(ctx, &activities_model.Activity{
		OpType:      opType,
		ActUserID:   doer.ID,
		WorkspaceID: issue.Project.WorkspaceID,
		ProjectID:   issue.ProjectID,
		IssueID:     issue.ID,
		CommentID:   commentID,
		Content:     content,
	})
}

func (a *actionNotifier) NotifyNewIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	a.issueActivity(ctx, activities_model.ActivityOpCreateIssue, doer, issue, 0, issue.Key)
}

func (a *actionNotifier) NotifyIssueChangeStatus(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.IssueStatus) {
	a.issueActivity(ctx, activities_model.ActivityOpChangeStatus, doer, issue, 0, string(oldStatus)+"|"+string(issue.Status))
}

func (a *actionNotifier) NotifyIssueChangeAssignee(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	a.issueActivity(ctx, activities_model.ActivityOpAssignIssue, doer, issue, 0, "")
}

func (a *actionNotifier) NotifyIssueChangePriority(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	a.issueActivity(ctx, activities_model.ActivityOpChangePriority, doer, issue, 0, string(issue.Priority))
}

func (a *actionNotifier) NotifyDeleteIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	if err := issue.LoadProject(ctx); err != nil {
		log.Error("LoadProject: %v", err)
		return
	}
	// the issue row is gone after this event, keep only the key
	a.record(ctx, &activities_model.Activity{
		OpType:      activities_model.ActivityOpDeleteIssue,
		ActUserID:   doer.ID,
		WorkspaceID: issue.Project.WorkspaceID,
		ProjectID:   issue.ProjectID,
		Content:     issue.Key,
	})
}

func (a *actionNotifier) NotifyCreateIssueComment(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, comment *issues_model.Comment) {
	a.issueActivity(ctx, activities_model.ActivityOpCommentIssue, doer, issue, comment.ID, "")
}

func (a *actionNotifier) NotifyNewProject(ctx context.Context, doer *user_model.User, workspace *workspace_model.Workspace, project *project_model.Project) {
	a.record(ctx, &activities_model.Activity{
		OpType:      activities_model.ActivityOpCreateProject,
		ActUserID:   doer.ID,
		WorkspaceID: workspace.ID,
		ProjectID:   project.ID,
		Content:     project.Key,
	})
}

func (a *actionNotifier) NotifyDeleteProject(ctx context.Context, doer *user_model.User, workspace *workspace_model.Workspace, project *project_model.Project) {
	a.record(ctx, &activities_model.Activity{
		OpType:      activities_model.ActivityOpDeleteProject,
		ActUserID:   doer.ID,
		WorkspaceID: workspace.ID,
		Content:     project.Key,
	})
}
