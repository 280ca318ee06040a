// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package notification fans domain events out to registered notifiers:
// the activity feed writer and the per-user notification store. Services
// fire events after their transaction commits, a notifier failure never
// rolls the mutation back.
package notification

import (
	"context"

	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/notification/action"
	"code.questhq.io/quest/modules/notification/base"
	"code.questhq.io/quest/modules/notification/ui"
)

var notifiers []base.Notifier

// RegisterNotifier providers method to receive notify messages
func RegisterNotifier(notifier base.Notifier) {
	go notifier.Run()
	notifiers = append(notifiers, notifier)
}

// NewContext registers the default notifiers
func NewContext() {
	RegisterNotifier(ui.NewNotifier())
	RegisterNotifier(action.NewNotifier())
}

// NotifyNewIssue notifies new issue to notifiers
func NotifyNewIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	for _, notifier := range notifiers {
		notifier.NotifyNewIssue(ctx, doer, issue)
	}
}

// NotifyIssueChangeStatus notifies close or reopen issue to notifiers
func NotifyIssueChangeStatus(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.IssueStatus) {
	for _, notifier := range notifiers {
		notifier.NotifyIssueChangeStatus(ctx, doer, issue, oldStatus)
	}
}

// NotifyIssueChangeAssignee notifies an issue changed assignee to notifiers
func NotifyIssueChangeAssignee(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	for _, notifier := range notifiers {
		notifier.NotifyIssueChangeAssignee(ctx, doer, issue)
	}
}

// NotifyIssueChangePriority notifies an issue changed priority to notifiers
func NotifyIssueChangePriority(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	for _, notifier := range notifiers {
		notifier.NotifyIssueChangePriority(ctx, doer, issue)
	}
}

// NotifyDeleteIssue notifies an issue deletion to notifiers
func NotifyDeleteIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	for _, notifier := range notifiers {
		notifier.NotifyDeleteIssue(ctx, doer, issue)
	}
}

// NotifyCreateIssueComment notifies comment on an issue to notifiers
func NotifyCreateIssueComment(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, comment *issues_model.Comment) {
	for _, notifier := range notifiers {
		notifier.NotifyCreateIssueComment(ctx, doer, issue, comment)
	}
}

// NotifyNewProject notifies project creation to notifiers
func NotifyNewProject(ctx context.Context, doer *user_model.User, workspace *workspace_model.Workspace, project *project_model.Project) {
	for _, notifier := range notifiers {
		notifier.NotifyNewProject(ctx, doer, workspace, project)
	}
}

// NotifyDeleteProject notifies project deletion to notifiers
func NotifyDeleteProject(ctx context.Context, doer *user_model.User, workspace *workspace_model.Workspace, project *project_model.Project) {
	for _, notifier := range notifiers {
		notifier.NotifyDeleteProject(ctx, doer, workspace, project)
	}
}
