// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package activities records what happened in a workspace (the activity
// feed) and who should hear about it (notifications).
package activities

import (
	"context"

	"code.questhq.io/quest/models/db"
	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/timeutil"
)

// ActivityOpType is the kind of event an activity row records
type ActivityOpType int

// Activity operation types, the stored value is the int so the order
// must not change.
const (
	ActivityOpCreateIssue ActivityOpType = iota + 1
	ActivityOpChangeStatus
	ActivityOpAssignIssue
	ActivityOpChangePriority
	ActivityOpCommentIssue
	ActivityOpDeleteIssue
	ActivityOpCreateProject
	ActivityOpDeleteProject
)

// Activity represents one entry of the workspace activity feed
type Activity struct {
	ID          int64          `xorm:"pk autoincr" json:"id"`
	OpType      ActivityOpType `xorm:"INDEX NOT NULL" json:"opType"`
	ActUserID   int64          `xorm:"INDEX NOT NULL" json:"actUserId"`
	WorkspaceID int64          `xorm:"INDEX NOT NULL" json:"workspaceId"`
	ProjectID   int64          `xorm:"INDEX" json:"projectId,omitempty"`
	IssueID     int64          `xorm:"INDEX" json:"issueId,omitempty"`
	CommentID   int64          `json:"commentId,omitempty"`
	Content     string         `xorm:"TEXT" json:"content,omitempty"`

	ActUser *user_model.User `xorm:"-" json:"actUser,omitempty"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created" json:"created"`
}

func init() {
	db.RegisterModel(new(Activity))
}

// NotifyActivity inserts an activity feed row
func NotifyActivity(ctx context.Context, act *Activity) error {
	return db.Insert(ctx, act)
}

// GetActivitiesOptions options for listing a workspace feed
type GetActivitiesOptions struct {
	db.ListOptions
	WorkspaceID int64
	ProjectID   int64
	IssueID     int64
}

// GetActivities returns activity feed entries most recent first
func GetActivities(ctx context.Context, opts *GetActivitiesOptions) ([]*Activity, error) {
	sess := db.GetEngine(ctx).Where("workspace_id = ?", opts.WorkspaceID)
	if opts.ProjectID > 0 {
		sess.And("project_id = ?", opts.ProjectID)
	}
	if opts.IssueID > 0 {
		sess.And("issue_id = ?", opts.IssueID)
	}
	sess.Desc("created_unix", "id")
	if opts.Page > 0 {
		sess = db.SetSessionPagination(sess, &opts.ListOptions)
	}
	actions := make([]*Activity, 0, 20)
	if err := sess.Find(&actions); err != nil {
		return nil, err
	}
	return actions, loadActivityUsers(ctx, actions)
}

func loadActivityUsers(ctx context.Context, actions []*Activity) error {
	if len(actions) == 0 {
		return nil
	}
	userIDs := make([]int64, 0, len(actions))
	for _, act := range actions {
		userIDs = append(userIDs, act.ActUserID)
	}
	users, err := user_model.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	for _, act := range actions {
		act.ActUser = users[act.ActUserID]
	}
	return nil
}
