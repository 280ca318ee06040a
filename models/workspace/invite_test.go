// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace_test

import (
	"testing"

	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/models/unittest"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvitation(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	inv := &workspace_model.Invitation{
		WorkspaceID: 1,
		Email:       "Charlie@Example.com",
		Role:        workspace_model.RoleGuest,
		InviterID:   1,
	}
	assert.NoError(t, workspace_model.CreateInvitation(db.DefaultContext, inv))
	assert.EqualValues(t, "charlie@example.com", inv.Email)
	assert.NotEmpty(t, inv.Token)

	// a second pending invitation for the same address is rejected
	dup := &workspace_model.Invitation{
		WorkspaceID: 1,
		Email:       "charlie@example.com",
		Role:        workspace_model.RoleGuest,
		InviterID:   1,
	}
	err := workspace_model.CreateInvitation(db.DefaultContext, dup)
	assert.True(t, workspace_model.IsErrInvitationAlreadyExist(err))
}

func TestAcceptInvitation(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	inv := &workspace_model.Invitation{
		WorkspaceID: 1,
		Email:       "charlie@example.com",
		Role:        workspace_model.RoleTester,
		InviterID:   1,
	}
	require.NoError(t, workspace_model.CreateInvitation(db.DefaultContext, inv))

	charlie, err := user_model.GetUserByID(db.DefaultContext, 3)
	require.NoError(t, err)

	assert.NoError(t, workspace_model.AcceptInvitation(db.DefaultContext, inv, charlie))

	isMember, err := workspace_model.IsWorkspaceMember(db.DefaultContext, 1, 3)
	assert.NoError(t, err)
	assert.True(t, isMember)

	// a spent invitation cannot be redeemed twice
	err = workspace_model.AcceptInvitation(db.DefaultContext, inv, charlie)
	assert.True(t, workspace_model.IsErrInvitationAlreadyAccepted(err))
}

func TestAcceptInvitationWrongEmail(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	inv, err := workspace_model.GetInvitationByToken(db.DefaultContext, "11111111-2222-3333-4444-555555555555")
	require.NoError(t, err)

	charlie, err := user_model.GetUserByID(db.DefaultContext, 3)
	require.NoError(t, err)

	err = workspace_model.AcceptInvitation(db.DefaultContext, inv, charlie)
	assert.Error(t, err)

	isMember, err := workspace_model.IsWorkspaceMember(db.DefaultContext, 1, 3)
	assert.NoError(t, err)
	assert.False(t, isMember)
}

func TestGetInvitationByToken(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	inv, err := workspace_model.GetInvitationByToken(db.DefaultContext, "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, inv.WorkspaceID)
	assert.Equal(t, "dave@example.com", inv.Email)

	_, err = workspace_model.GetInvitationByToken(db.DefaultContext, "unknown")
	assert.True(t, workspace_model.IsErrInvitationNotExist(err))
}
