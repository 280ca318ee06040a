// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package activities

import (
	"context"
	"fmt"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"
)

// NotificationStatus is the status of a notification
type NotificationStatus uint8

const (
	// NotificationStatusUnread represents an unread notification
	NotificationStatusUnread NotificationStatus = iota + 1
	// NotificationStatusRead represents a read notification
	NotificationStatusRead
)

// ErrNotificationNotExist represents a "NotificationNotExist" kind of error.
type ErrNotificationNotExist struct {
	ID int64
}

// IsErrNotificationNotExist checks if an error is a ErrNotificationNotExist.
func IsErrNotificationNotExist(err error) bool {
	_, ok := err.(ErrNotificationNotExist)
	return ok
}

func (err ErrNotificationNotExist) Error() string {
	return fmt.Sprintf("notification does not exist [id: %d]", err.ID)
}

func (err ErrNotificationNotExist) Unwrap() error {
	return util.ErrNotExist
}

// Notification represents a notification addressed to one user about one
// issue. At most one unread row exists per (user, issue); new events on
// the same issue refresh that row instead of stacking up.
type Notification struct {
	ID     int64              `xorm:"pk autoincr" json:"id"`
	UserID int64              `xorm:"INDEX NOT NULL" json:"-"`
	Status NotificationStatus `xorm:"SMALLINT INDEX NOT NULL" json:"status"`

	IssueID   int64 `xorm:"INDEX NOT NULL" json:"issueId"`
	CommentID int64 `json:"commentId,omitempty"`
	UpdatedBy int64 `xorm:"INDEX NOT NULL" json:"updatedBy"`

	Issue *issues_model.Issue `xorm:"-" json:"issue,omitempty"`

	CreatedUnix timeutil.TimeStamp `xorm:"created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated INDEX" json:"updated"`
}

func init() {
	db.RegisterModel(new(Notification))
}

// CreateOrUpdateIssueNotifications fans an issue event out to the users
// who follow the issue: its assignee and its reporter. The acting user
// never notifies themselves.
func CreateOrUpdateIssueNotifications(ctx context.Context, issueID, commentID, doerID int64) error {
	return db.AutoTx(ctx, func(ctx context.Context) error {
		issue, err := issues_model.GetIssueByID(ctx, issueID)
		if err != nil {
			return err
		}

		toNotify := make(map[int64]struct{}, 2)
		if issue.AssigneeID > 0 {
			toNotify[issue.AssigneeID] = struct{}{}
		}
		toNotify[issue.ReporterID] = struct{}{}
		delete(toNotify, doerID)

		for userID := range toNotify {
			if err := createOrUpdateIssueNotification(ctx, userID, issueID, commentID, doerID); err != nil {
				return err
			}
		}
		return nil
	})
}

func createOrUpdateIssueNotification(ctx context.Context, userID, issueID, commentID, doerID int64) error {
	notification := new(Notification)
	has, err := db.GetEngine(ctx).
		Where("user_id = ? AND issue_id = ? AND status = ?", userID, issueID, NotificationStatusUnread).
		Get(notification)
	if err != nil {
		return err
	}
	if has {
		notification.CommentID = commentID
		notification.UpdatedBy = doerID
		_, err = db.GetEngine(ctx).ID(notification.ID).Cols("comment_id", "updated_by").Update(notification)
		return err
	}
	return db.Insert(ctx, &Notification{
		UserID:    userID,
		Status:    NotificationStatusUnread,
		IssueID:   issueID,
		CommentID: commentID,
		UpdatedBy: doerID,
	})
}

// FindNotificationOptions options for listing a user's notifications
type FindNotificationOptions struct {
	db.ListOptions
	UserID int64
	Status []NotificationStatus
}

// GetNotifications returns the user's notifications most recently
// touched first, with their issues loaded.
func GetNotifications(ctx context.Context, opts *FindNotificationOptions) ([]*Notification, error) {
	sess := db.GetEngine(ctx).Where("user_id = ?", opts.UserID)
	if len(opts.Status) > 0 {
		sess.In("status", opts.Status)
	}
	sess.Desc("updated_unix", "id")
	if opts.Page > 0 {
		sess = db.SetSessionPagination(sess, &opts.ListOptions)
	}
	notifications := make([]*Notification, 0, 10)
	if err := sess.Find(&notifications); err != nil {
		return nil, err
	}
	return notifications, loadNotificationIssues(ctx, notifications)
}

func loadNotificationIssues(ctx context.Context, notifications []*Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	issueIDs := make([]int64, 0, len(notifications))
	for _, notification := range notifications {
		issueIDs = append(issueIDs, notification.IssueID)
	}
	issues, err := issues_model.GetIssuesByIDs(ctx, issueIDs)
	if err != nil {
		return err
	}
	byID := make(map[int64]*issues_model.Issue, len(issues))
	for _, issue := range issues {
		byID[issue.ID] = issue
	}
	for _, notification := range notifications {
		notification.Issue = byID[notification.IssueID]
	}
	return nil
}

// CountUnread counts the user's unread notifications
func CountUnread(ctx context.Context, userID int64) (int64, error) {
	return db.GetEngine(ctx).
		Where("user_id = ? AND status = ?", userID, NotificationStatusUnread).
		Count(new(Notification))
}

// GetNotificationByID returns the notification by given ID if exists.
func GetNotificationByID(ctx context.Context, id int64) (*Notification, error) {
	notification := new(Notification)
	has, err := db.GetEngine(ctx).ID(id).Get(notification)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrNotificationNotExist{ID: id}
	}
	return notification, nil
}

// SetNotificationStatus changes the status of the user's notification,
// NotFound when the notification belongs to another user.
func SetNotificationStatus(ctx context.Context, id int64, user *user_model.User, status NotificationStatus) (*Notification, error) {
	notification, err := GetNotificationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification.UserID != user.ID {
		return nil, ErrNotificationNotExist{ID: id}
	}
	notification.Status = status
	_, err = db.GetEngine(ctx).ID(notification.ID).Cols("status").Update(notification)
	return notification, err
}

// UpdateNotificationStatuses marks all of the user's notifications with
// the current status as the desired one.
func UpdateNotificationStatuses(ctx context.Context, user *user_model.User, currentStatus, desiredStatus NotificationStatus) error {
	_, err := db.GetEngine(ctx).
		Where("user_id = ? AND status = ?", user.ID, currentStatus).
		Cols("status").
		Update(&Notification{Status: desiredStatus})
	return err
}
