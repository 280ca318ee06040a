// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"testing"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/models/unittest"
	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulkDoer(t *testing.T, userID int64) *user_model.User {
	t.Helper()
	doer, err := user_model.GetUserByID(db.DefaultContext, userID)
	require.NoError(t, err)
	return doer
}

func TestApplyBulkUpdateStatus(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issues, err := issues_model.ApplyBulk(db.DefaultContext, bulkDoer(t, 1), &issues_model.BulkOptions{
		Action:   issues_model.BulkUpdateStatus,
		IssueIDs: []int64{2, 1},
		Status:   issues_model.StatusDone,
	})
	assert.NoError(t, err)
	require.Len(t, issues, 2)

	// the batch joins the end of the target group in id order with
	// unique positions
	assert.EqualValues(t, 1, issues[0].ID)
	assert.Equal(t, issues_model.StatusDone, issues[0].Status)
	assert.EqualValues(t, 1, issues[0].Sorting)
	assert.EqualValues(t, 2, issues[1].ID)
	assert.EqualValues(t, 2, issues[1].Sorting)
}

func TestApplyBulkAssign(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issues, err := issues_model.ApplyBulk(db.DefaultContext, bulkDoer(t, 1), &issues_model.BulkOptions{
		Action:     issues_model.BulkAssign,
		IssueIDs:   []int64{1, 2},
		AssigneeID: 2,
	})
	assert.NoError(t, err)
	for _, issue := range issues {
		assert.EqualValues(t, 2, issue.AssigneeID)
	}

	// assignee 0 unassigns
	issues, err = issues_model.ApplyBulk(db.DefaultContext, bulkDoer(t, 1), &issues_model.BulkOptions{
		Action:   issues_model.BulkAssign,
		IssueIDs: []int64{1, 2},
	})
	assert.NoError(t, err)
	for _, issue := range issues {
		assert.Zero(t, issue.AssigneeID)
	}
}

func TestApplyBulkAssignNonMember(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// charlie is not a member of the workspace
	_, err := issues_model.ApplyBulk(db.DefaultContext, bulkDoer(t, 1), &issues_model.BulkOptions{
		Action:     issues_model.BulkAssign,
		IssueIDs:   []int64{1},
		AssigneeID: 3,
	})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestApplyBulkDelete(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	subtask := newSubtask(t, 1)

	_, err := issues_model.ApplyBulk(db.DefaultContext, bulkDoer(t, 1), &issues_model.BulkOptions{
		Action:   issues_model.BulkDelete,
		IssueIDs: []int64{1, 2},
	})
	assert.NoError(t, err)

	count, err := issues_model.CountProjectIssues(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Zero(t, count)
	_, err = issues_model.GetIssueByID(db.DefaultContext, subtask.ID)
	assert.True(t, issues_model.IsErrIssueNotExist(err))
}

func TestApplyBulkMissingIssue(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := issues_model.ApplyBulk(db.DefaultContext, bulkDoer(t, 1), &issues_model.BulkOptions{
		Action:   issues_model.BulkUpdatePriority,
		IssueIDs: []int64{1, 999},
		Priority: issues_model.PriorityLow,
	})
	assert.True(t, issues_model.IsErrIssueNotExist(err))

	// all-or-nothing: the existing issue is untouched
	issue, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Equal(t, issues_model.PriorityMedium, issue.Priority)
}

func TestApplyBulkMixedProjects(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	other := &project_model.Project{WorkspaceID: 1, Name: "Website", Key: "WEB"}
	require.NoError(t, project_model.NewProject(db.DefaultContext, other))
	foreign := &issues_model.Issue{
		Title:      "landing page",
		Type:       issues_model.TypeStory,
		Priority:   issues_model.PriorityNone,
		ReporterID: 1,
	}
	require.NoError(t, issues_model.NewIssue(db.DefaultContext, other, foreign, nil))

	_, err := issues_model.ApplyBulk(db.DefaultContext, bulkDoer(t, 1), &issues_model.BulkOptions{
		Action:   issues_model.BulkUpdatePriority,
		IssueIDs: []int64{1, foreign.ID},
		Priority: issues_model.PriorityLow,
	})
	assert.True(t, issues_model.IsErrMixedProjects(err))
}

func TestApplyBulkNoAccess(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := issues_model.ApplyBulk(db.DefaultContext, bulkDoer(t, 3), &issues_model.BulkOptions{
		Action:   issues_model.BulkUpdatePriority,
		IssueIDs: []int64{1},
		Priority: issues_model.PriorityLow,
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestApplyBulkValidation(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	doer := bulkDoer(t, 1)

	_, err := issues_model.ApplyBulk(db.DefaultContext, doer, &issues_model.BulkOptions{
		Action: issues_model.BulkDelete,
	})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	_, err = issues_model.ApplyBulk(db.DefaultContext, doer, &issues_model.BulkOptions{
		Action:   "archive",
		IssueIDs: []int64{1},
	})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	_, err = issues_model.ApplyBulk(db.DefaultContext, doer, &issues_model.BulkOptions{
		Action:   issues_model.BulkUpdateStatus,
		IssueIDs: []int64{1},
		Status:   "WAITING",
	})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}
