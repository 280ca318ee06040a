// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package base

import (
	"context"

	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"
)

// NullNotifier implements a blank notifier
type NullNotifier struct{}

var _ Notifier = &NullNotifier{}

// Run places a place holder function
func (*NullNotifier) Run() {}

// NotifyNewIssue places a place holder function
func (*NullNotifier) NotifyNewIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
}

// NotifyIssueChangeStatus places a place holder function
func (*NullNotifier) NotifyIssueChangeStatus(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.IssueStatus) {
}

// NotifyIssueChangeAssignee places a place holder function
func (*NullNotifier) NotifyIssueChangeAssignee(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
}

// NotifyIssueChangePriority places a place holder function
func (*NullNotifier) NotifyIssueChangePriority(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
}

// NotifyDeleteIssue places a place holder function
func (*NullNotifier) NotifyDeleteIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
}

// NotifyCreateIssueComment places a place holder function
func (*NullNotifier) NotifyCreateIssueComment(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, comment *issues_model.Comment) {
}

// NotifyNewProject places a place holder function
func (*NullNotifier) NotifyNewProject(ctx context.Context, doer *user_model.User, workspace *workspace_model.Workspace, project *project_model.Project) {
}

// NotifyDeleteProject places a place holder function
func (*NullNotifier) NotifyDeleteProject(ctx context.Context, doer *user_model.User, workspace *workspace_model.Workspace, project *project_model.Project) {
}
