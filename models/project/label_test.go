// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project_test

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

func TestNewLabel(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	l := &project_model.Label{ProjectID: 1, Name: "docs", Color: "#336699"}
	assert.NoError(t, project_model.NewLabel(db.DefaultContext, l))
	assert.NotZero(t, l.ID)

	for _, color := range []string{"", "336699", "#33669", "#3366999", "#33669g"} {
		err := project_model.NewLabel(db.DefaultContext, &project_model.Label{
			ProjectID: 1, Name: "bad", Color: color,
		})
		assert.ErrorIs(t, err, util.ErrInvalidArgument, "color %q", color)
	}
}

func TestGetLabelsByProjectID(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	labels, err := project_model.GetLabelsByProjectID(db.DefaultContext, 1)
	assert.NoError(t, err)
	require.Len(t, labels, 2)
	// sorted by name
	assert.Equal(t, "backend", labels[0].Name)
	assert.Equal(t, "frontend", labels[1].Name)
}

func TestGetLabelsByIDs(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	labels, err := project_model.GetLabelsByIDs(db.DefaultContext, 1, []int64{1, 2, 999})
	assert.NoError(t, err)
	assert.Len(t, labels, 2)

	// ids from another project are not visible
	labels, err = project_model.GetLabelsByIDs(db.DefaultContext, 2, []int64{1})
	assert.NoError(t, err)
	assert.Empty(t, labels)
}

func TestUpdateLabel(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	l, err := project_model.GetLabelByID(db.DefaultContext, 1)
	require.NoError(t, err)

	l.Name = "api"
	l.Color = "#ff0000"
	assert.NoError(t, project_model.UpdateLabel(db.DefaultContext, l))

	fetched, err := project_model.GetLabelByID(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Equal(t, "api", fetched.Name)
	assert.Equal(t, "#ff0000", fetched.Color)
}

func TestDeleteLabel(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	l, err := project_model.GetLabelByID(db.DefaultContext, 1)
	require.NoError(t, err)
	assert.NoError(t, project_model.DeleteLabel(db.DefaultContext, l))

	_, err = project_model.GetLabelByID(db.DefaultContext, 1)
	assert.True(t, project_model.IsErrLabelNotExist(err))

	// issue references are detached as well
	unittest.AssertCount(t, &issues_model.IssueLabel{LabelID: 1}, 0)
}
