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

func TestNewProject(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p := &project_model.Project{
		WorkspaceID: 1,
		Name:        "Website",
		Key:         "WEB",
		LeadID:      1,
	}
	assert.NoError(t, project_model.NewProject(db.DefaultContext, p))
	assert.NotZero(t, p.ID)

	fetched, err := project_model.GetProjectByID(db.DefaultContext, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "WEB", fetched.Key)
	assert.Zero(t, fetched.NumIssues)
}

func TestNewProjectDuplicateKey(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	err := project_model.NewProject(db.DefaultContext, &project_model.Project{
		WorkspaceID: 1,
		Name:        "Engine Again",
		Key:         "ENG",
	})
	assert.True(t, project_model.IsErrProjectAlreadyExist(err))
}

func TestNewProjectInvalidKey(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	for _, key := range []string{"", "E", "eng", "1NG", "TOOLONGKEYX", "EN-G"} {
		err := project_model.NewProject(db.DefaultContext, &project_model.Project{
			WorkspaceID: 1,
			Name:        "Bad Key",
			Key:         key,
		})
		assert.ErrorIs(t, err, util.ErrInvalidArgument, "key %q", key)
	}
}

func TestFindProjects(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	projects, err := project_model.FindProjects(db.DefaultContext, 1)
	assert.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "ENG", projects[0].Key)

	projects, err = project_model.FindProjects(db.DefaultContext, 999)
	assert.NoError(t, err)
	assert.Empty(t, projects)
}

func TestNextIssueNum(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// the fixture project has already handed out two numbers
	num, err := project_model.NextIssueNum(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, num)

	num, err = project_model.NextIssueNum(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 4, num)

	_, err = project_model.NextIssueNum(db.DefaultContext, 999)
	assert.Error(t, err)
}

func TestDeleteProject(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	require.NoError(t, err)
	assert.NoError(t, project_model.DeleteProject(db.DefaultContext, p))

	_, err = project_model.GetProjectByID(db.DefaultContext, 1)
	assert.True(t, project_model.IsErrProjectNotExist(err))

	labels, err := project_model.GetLabelsByProjectID(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Empty(t, labels)

	sprints, err := project_model.FindSprints(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Empty(t, sprints)
}
