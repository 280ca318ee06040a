// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"testing"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	"code.questhq.io/quest/models/unittest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBoard(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	columns, err := issues_model.LoadBoard(db.DefaultContext, 1)
	assert.NoError(t, err)
	require.Len(t, columns, len(issues_model.ColumnOrder))

	// every column is present, in the fixed order, even when empty
	for i, status := range issues_model.ColumnOrder {
		assert.Equal(t, status, columns[i].Status)
		assert.NotNil(t, columns[i].Issues)
	}

	require.Len(t, columns[0].Issues, 1)
	assert.Equal(t, "ENG-2", columns[0].Issues[0].Key)
	require.Len(t, columns[1].Issues, 1)
	assert.Equal(t, "ENG-1", columns[1].Issues[0].Key)
	assert.Empty(t, columns[4].Issues)
}

func TestLoadBoardExcludesSubtasks(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	subtask := newSubtask(t, 1)

	columns, err := issues_model.LoadBoard(db.DefaultContext, 1)
	assert.NoError(t, err)
	for _, column := range columns {
		for _, issue := range column.Issues {
			assert.NotEqual(t, subtask.ID, issue.ID)
		}
	}
}

func TestLoadBoardColumnOrdering(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.GetIssueByID(db.DefaultContext, 2)
	require.NoError(t, err)
	require.NoError(t, issues_model.ChangeStatus(db.DefaultContext, issue, issues_model.StatusTodo))

	columns, err := issues_model.LoadBoard(db.DefaultContext, 1)
	assert.NoError(t, err)
	require.Len(t, columns[1].Issues, 2)
	assert.Equal(t, "ENG-1", columns[1].Issues[0].Key)
	assert.Equal(t, "ENG-2", columns[1].Issues[1].Key)

	// equal sorting values fall back to id order
	require.NoError(t, issues_model.ChangePosition(db.DefaultContext, issue, issues_model.StatusTodo, 1))
	columns, err = issues_model.LoadBoard(db.DefaultContext, 1)
	assert.NoError(t, err)
	require.Len(t, columns[1].Issues, 2)
	assert.Equal(t, "ENG-1", columns[1].Issues[0].Key)
	assert.Equal(t, "ENG-2", columns[1].Issues[1].Key)
}

func TestLoadBacklog(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issues, count, err := issues_model.LoadBacklog(db.DefaultContext, &issues_model.BacklogOptions{ProjectID: 1})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, issues, 2)
	// most recently created first
	assert.Equal(t, "ENG-2", issues[0].Key)
	assert.Equal(t, "ENG-1", issues[1].Key)
}

func TestLoadBacklogPagination(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issues, count, err := issues_model.LoadBacklog(db.DefaultContext, &issues_model.BacklogOptions{
		ListOptions: db.ListOptions{Page: 2, PageSize: 1},
		ProjectID:   1,
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, issues, 1)
	assert.Equal(t, "ENG-1", issues[0].Key)
}
