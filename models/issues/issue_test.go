// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"testing"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/models/unittest"
	"code.questhq.io/quest/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssue(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	require.NoError(t, err)

	issue := &issues_model.Issue{
		Title:      "Fix login flow",
		Type:       issues_model.TypeTask,
		Priority:   issues_model.PriorityMedium,
		ReporterID: 1,
	}
	assert.NoError(t, issues_model.NewIssue(db.DefaultContext, p, issue, []int64{1}))

	assert.Equal(t, "ENG-3", issue.Key)
	assert.EqualValues(t, 3, issue.Num)
	assert.Equal(t, issues_model.StatusBacklog, issue.Status)
	// appended after the existing backlog issue
	assert.EqualValues(t, 2, issue.Sorting)

	require.NoError(t, issue.LoadLabels(db.DefaultContext))
	require.Len(t, issue.Labels, 1)
	assert.Equal(t, "backend", issue.Labels[0].Name)
}

func TestNewIssueExplicitStatus(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	require.NoError(t, err)

	issue := &issues_model.Issue{
		Title:      "Investigate flaky deploy",
		Type:       issues_model.TypeBug,
		Status:     issues_model.StatusTodo,
		Priority:   issues_model.PriorityHigh,
		ReporterID: 1,
	}
	assert.NoError(t, issues_model.NewIssue(db.DefaultContext, p, issue, nil))

	// appended behind the fixture issue already in TODO
	assert.EqualValues(t, 2, issue.Sorting)
}

func TestNewIssueValidation(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	require.NoError(t, err)

	for _, issue := range []*issues_model.Issue{
		{Title: "", Type: issues_model.TypeTask, Priority: issues_model.PriorityNone, ReporterID: 1},
		{Title: "x", Type: "CHORE", Priority: issues_model.PriorityNone, ReporterID: 1},
		{Title: "x", Type: issues_model.TypeTask, Priority: "HIGHEST", ReporterID: 1},
		{Title: "x", Type: issues_model.TypeTask, Status: "WAITING", Priority: issues_model.PriorityNone, ReporterID: 1},
		{Title: "x", Type: issues_model.TypeTask, Priority: issues_model.PriorityNone},
	} {
		err := issues_model.NewIssue(db.DefaultContext, p, issue, nil)
		assert.ErrorIs(t, err, util.ErrInvalidArgument)
	}

	// the counter must not have moved for rejected issues
	num, err := project_model.NextIssueNum(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, num)
}

func newSubtask(t *testing.T, parentID int64) *issues_model.Issue {
	t.Helper()
	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	require.NoError(t, err)
	issue := &issues_model.Issue{
		Title:      "subtask",
		Type:       issues_model.TypeTask,
		Priority:   issues_model.PriorityNone,
		ReporterID: 1,
		ParentID:   parentID,
	}
	require.NoError(t, issues_model.NewIssue(db.DefaultContext, p, issue, nil))
	return issue
}

func TestSubtaskNesting(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	require.NoError(t, err)

	subtask := newSubtask(t, 1)
	assert.True(t, subtask.IsSubtask())

	// a subtask cannot itself be a parent
	err = issues_model.NewIssue(db.DefaultContext, p, &issues_model.Issue{
		Title:      "too deep",
		Type:       issues_model.TypeTask,
		Priority:   issues_model.PriorityNone,
		ReporterID: 1,
		ParentID:   subtask.ID,
	}, nil)
	assert.True(t, issues_model.IsErrNestedSubtask(err))

	// an issue that has subtasks cannot become a subtask
	parent, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	require.NoError(t, err)
	err = issues_model.ChangeParent(db.DefaultContext, parent, 2)
	assert.True(t, issues_model.IsErrNestedSubtask(err))

	// self-parenting is rejected
	other, err := issues_model.GetIssueByID(db.DefaultContext, 2)
	require.NoError(t, err)
	err = issues_model.ChangeParent(db.DefaultContext, other, other.ID)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestChangeParentCrossProject(t *testing.T) {
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

	issue, err := issues_model.GetIssueByID(db.DefaultContext, 2)
	require.NoError(t, err)
	err = issues_model.ChangeParent(db.DefaultContext, issue, foreign.ID)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestChangeParentClear(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	subtask := newSubtask(t, 1)

	assert.NoError(t, issues_model.ChangeParent(db.DefaultContext, subtask, 0))
	fetched, err := issues_model.GetIssueByID(db.DefaultContext, subtask.ID)
	assert.NoError(t, err)
	assert.False(t, fetched.IsSubtask())
}

func TestChangeStatus(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.GetIssueByID(db.DefaultContext, 2)
	require.NoError(t, err)
	require.Equal(t, issues_model.StatusBacklog, issue.Status)

	// moving joins the end of the target group
	assert.NoError(t, issues_model.ChangeStatus(db.DefaultContext, issue, issues_model.StatusTodo))
	assert.Equal(t, issues_model.StatusTodo, issue.Status)
	assert.EqualValues(t, 2, issue.Sorting)

	// same status is a no-op, the position is kept
	assert.NoError(t, issues_model.ChangeStatus(db.DefaultContext, issue, issues_model.StatusTodo))
	assert.EqualValues(t, 2, issue.Sorting)

	err = issues_model.ChangeStatus(db.DefaultContext, issue, "WAITING")
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestChangePosition(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.GetIssueByID(db.DefaultContext, 2)
	require.NoError(t, err)

	assert.NoError(t, issues_model.ChangePosition(db.DefaultContext, issue, issues_model.StatusTodo, 1))

	fetched, err := issues_model.GetIssueByID(db.DefaultContext, 2)
	assert.NoError(t, err)
	assert.Equal(t, issues_model.StatusTodo, fetched.Status)
	assert.EqualValues(t, 1, fetched.Sorting)
}

func TestDeleteIssue(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	subtask := newSubtask(t, 1)

	issue, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	require.NoError(t, err)
	assert.NoError(t, issues_model.DeleteIssue(db.DefaultContext, issue))

	_, err = issues_model.GetIssueByID(db.DefaultContext, 1)
	assert.True(t, issues_model.IsErrIssueNotExist(err))
	_, err = issues_model.GetIssueByID(db.DefaultContext, subtask.ID)
	assert.True(t, issues_model.IsErrIssueNotExist(err))

	// dependent rows are gone with the issue
	unittest.AssertCount(t, &issues_model.Comment{IssueID: 1}, 0)
	unittest.AssertCount(t, &issues_model.Attachment{IssueID: 1}, 0)
	unittest.AssertCount(t, &issues_model.IssueLabel{IssueID: 1}, 0)

	// issue keys are never reused
	num, err := project_model.NextIssueNum(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 4, num)
}

func TestReplaceIssueLabels(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.GetIssueByID(db.DefaultContext, 1)
	require.NoError(t, err)

	assert.NoError(t, issues_model.ReplaceIssueLabels(db.DefaultContext, issue, []int64{2}))
	require.Len(t, issue.Labels, 1)
	assert.Equal(t, "frontend", issue.Labels[0].Name)

	// repeated ids collapse to a single attachment of the label
	issue.Labels = nil
	assert.NoError(t, issues_model.ReplaceIssueLabels(db.DefaultContext, issue, []int64{1, 1, 2}))
	require.Len(t, issue.Labels, 2)
	unittest.AssertCount(t, &issues_model.IssueLabel{IssueID: 1, LabelID: 1}, 1)

	// labels from other projects are rejected
	err = issues_model.ReplaceIssueLabels(db.DefaultContext, issue, []int64{999})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	// an empty slice clears all labels
	assert.NoError(t, issues_model.ReplaceIssueLabels(db.DefaultContext, issue, []int64{}))
	assert.Empty(t, issue.Labels)
}
