// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project_test

import (
	"testing"

	"code.questhq.io/quest/models/db"
	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/models/unittest"
	"code.questhq.io/quest/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSprint(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	s := &project_model.Sprint{
		ProjectID: 1,
		Name:      "Sprint 2",
		Goal:      "ship the board",
		// a caller-supplied status is ignored, sprints always start planned
		Status: project_model.SprintStatusActive,
	}
	assert.NoError(t, project_model.NewSprint(db.DefaultContext, s))
	assert.Equal(t, project_model.SprintStatusPlanned, s.Status)
}

func TestNewSprintBadDates(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	err := project_model.NewSprint(db.DefaultContext, &project_model.Sprint{
		ProjectID: 1,
		Name:      "Backwards",
		StartUnix: 1700100000,
		EndUnix:   1700000000,
	})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestUpdateSprintSingleActive(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	first, err := project_model.GetSprintByID(db.DefaultContext, 1)
	require.NoError(t, err)
	first.Status = project_model.SprintStatusActive
	assert.NoError(t, project_model.UpdateSprint(db.DefaultContext, first))

	second := &project_model.Sprint{ProjectID: 1, Name: "Sprint 2"}
	require.NoError(t, project_model.NewSprint(db.DefaultContext, second))

	second.Status = project_model.SprintStatusActive
	err = project_model.UpdateSprint(db.DefaultContext, second)
	assert.True(t, project_model.IsErrSprintAlreadyActive(err))

	// completing the first sprint frees the slot
	first.Status = project_model.SprintStatusCompleted
	assert.NoError(t, project_model.UpdateSprint(db.DefaultContext, first))
	assert.NoError(t, project_model.UpdateSprint(db.DefaultContext, second))
}
