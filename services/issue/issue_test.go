// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issue_test

import (
	"testing"

	activities_model "code.questhq.io/quest/models/activities"
	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/models/unittest"
	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/util"
	issue_service "code.questhq.io/quest/services/issue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadUser(t *testing.T, userID int64) *user_model.User {
	t.Helper()
	u, err := user_model.GetUserByID(db.DefaultContext, userID)
	require.NoError(t, err)
	return u
}

func latestActivity(t *testing.T) *activities_model.Activity {
	t.Helper()
	activities, err := activities_model.GetActivities(db.DefaultContext, &activities_model.GetActivitiesOptions{
		WorkspaceID: 1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, activities)
	return activities[0]
}

func TestServiceNewIssue(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	alice := loadUser(t, 1)
	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	require.NoError(t, err)

	issue := &issues_model.Issue{
		Title:      "Wire up tracing",
		Type:       issues_model.TypeTask,
		Priority:   issues_model.PriorityLow,
		AssigneeID: 2,
		ReporterID: alice.ID,
	}
	assert.NoError(t, issue_service.NewIssue(db.DefaultContext, alice, p, issue, nil))

	act := latestActivity(t)
	assert.Equal(t, activities_model.ActivityOpCreateIssue, act.OpType)
	assert.Equal(t, issue.Key, act.Content)

	// the assignee hears about the new issue
	count, err := activities_model.CountUnread(db.DefaultContext, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestServiceNewIssueAssigneeOutsideWorkspace(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	alice := loadUser(t, 1)
	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	require.NoError(t, err)

	err = issue_service.NewIssue(db.DefaultContext, alice, p, &issues_model.Issue{
		Title:      "bad assignee",
		Type:       issues_model.TypeTask,
		Priority:   issues_model.PriorityNone,
		AssigneeID: 3,
		ReporterID: alice.ID,
	}, nil)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestServiceChangeStatus(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	bob := loadUser(t, 2)
	issue, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	require.NoError(t, err)

	assert.NoError(t, issue_service.ChangeStatus(db.DefaultContext, bob, issue, issues_model.StatusInProgress))

	act := latestActivity(t)
	assert.Equal(t, activities_model.ActivityOpChangeStatus, act.OpType)
	assert.Equal(t, "TODO|IN_PROGRESS", act.Content)

	// alice reported the issue, so she is notified of bob's move
	count, err := activities_model.CountUnread(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// a move to the current status changes nothing
	assert.NoError(t, issue_service.ChangeStatus(db.DefaultContext, bob, issue, issues_model.StatusInProgress))
	act = latestActivity(t)
	assert.Equal(t, activities_model.ActivityOpChangeStatus, act.OpType)
}

func TestServiceChangeAssignee(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	alice := loadUser(t, 1)
	issue, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	require.NoError(t, err)

	assert.NoError(t, issue_service.ChangeAssignee(db.DefaultContext, alice, issue, 2))
	fetched, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, fetched.AssigneeID)

	act := latestActivity(t)
	assert.Equal(t, activities_model.ActivityOpAssignIssue, act.OpType)

	// outsiders cannot be assigned
	err = issue_service.ChangeAssignee(db.DefaultContext, alice, issue, 3)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	// unassign
	assert.NoError(t, issue_service.ChangeAssignee(db.DefaultContext, alice, issue, 0))
	fetched, err = issues_model.GetIssueByID(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Zero(t, fetched.AssigneeID)
}

func TestServiceChangePriority(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	alice := loadUser(t, 1)
	issue, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	require.NoError(t, err)

	assert.NoError(t, issue_service.ChangePriority(db.DefaultContext, alice, issue, issues_model.PriorityUrgent))
	act := latestActivity(t)
	assert.Equal(t, activities_model.ActivityOpChangePriority, act.OpType)
	assert.Equal(t, "URGENT", act.Content)

	err = issue_service.ChangePriority(db.DefaultContext, alice, issue, "HIGHEST")
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestServiceCreateComment(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	bob := loadUser(t, 2)
	issue, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	require.NoError(t, err)

	comment, err := issue_service.CreateComment(db.DefaultContext, bob, issue, "reproduced locally")
	assert.NoError(t, err)
	require.NotNil(t, comment)
	assert.EqualValues(t, bob.ID, comment.PosterID)

	act := latestActivity(t)
	assert.Equal(t, activities_model.ActivityOpCommentIssue, act.OpType)
	assert.Equal(t, comment.ID, act.CommentID)

	// the reporter is notified about the comment
	notifications, err := activities_model.GetNotifications(db.DefaultContext, &activities_model.FindNotificationOptions{
		UserID: 1,
		Status: []activities_model.NotificationStatus{activities_model.NotificationStatusUnread},
	})
	assert.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, comment.ID, notifications[0].CommentID)
}

func TestServiceDeleteIssue(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	alice := loadUser(t, 1)
	issue, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	require.NoError(t, err)
	key := issue.Key

	assert.NoError(t, issue_service.DeleteIssue(db.DefaultContext, alice, issue))

	_, err = issues_model.GetIssueByID(db.DefaultContext, 1)
	assert.True(t, issues_model.IsErrIssueNotExist(err))

	// the feed keeps a record of the deletion under the old key
	act := latestActivity(t)
	assert.Equal(t, activities_model.ActivityOpDeleteIssue, act.OpType)
	assert.Equal(t, key, act.Content)
}
