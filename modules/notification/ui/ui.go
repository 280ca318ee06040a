// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ui

import (
	"context"

	activities_model "code.questhq.io/quest/models/activities"
	issues_model "code.questhq.io/quest/models/issues"
	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/log"
	"code.questhq.io/quest/modules/notification/base"
)

type notificationService struct {
	base.NullNotifier
}

var _ base.Notifier = &notificationService{}

// NewNotifier create a new notificationService notifier
func NewNotifier() base.Notifier {
	return &notificationService{}
}

func (ns *notificationService) notify(ctx context.Context, issueID, commentID, doerID int64) {
	if err := activities_model.CreateOrUpdateIssueNotifications(ctx, issueID, commentID, doerID); err != nil {
		log.Error("CreateOrUpdateIssueNotifications: %v", err)
	}
}

func (ns *notificationService) NotifyNewIssue(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	ns.notify(ctx, issue.ID, 0, doer.ID)
}

func (ns *notificationService) NotifyIssueChangeStatus(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.IssueStatus) {
	ns.notify(ctx, issue.ID, 0, doer.ID)
}

func (ns *notificationService) NotifyIssueChangeAssignee(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	ns.notify(ctx, issue.ID, 0, doer.ID)
}

func (ns *notificationService) NotifyIssueChangePriority(ctx context.Context, doer *user_model.User, issue *issues_model.Issue) {
	ns.notify(ctx, issue.ID, 0, doer.ID)
}

func (ns *notificationService) NotifyCreateIssueComment(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, comment *issues_model.Comment) {
	ns.notify(ctx, issue.ID, comment.ID, doer.ID)
}
