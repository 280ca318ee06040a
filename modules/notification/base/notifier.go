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

// Notifier defines an interface to notify receiver
type Notifier interface {
	Run()

	NotifyNewIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue)
	NotifyIssueChangeStatus(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.IssueStatus)
	NotifyIssueChangeAssignee(ctx context.Context, doer *user_model.User, issue *issues_model.Issue)
	NotifyIssueChangePriority(ctx context.Context, doer *user_model.User, issue *issues_model.Issue)
	NotifyDeleteIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue)
	NotifyCreateIssueComment(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, comment *issues_model.Comment)

	NotifyNewProject(ctx context.Context, doer *user_model.User, workspace *workspace_model.Workspace, project *project_model.Project)
	NotifyDeleteProject(ctx context.Context, doer *user_model.User, workspace *workspace_model.Workspace, project *project_model.Project)
}
