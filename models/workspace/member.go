// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"context"
	"fmt"

	"code.questhq.io/quest/models/db"
	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"
)

// Role is the membership role of a user inside a workspace
type Role string

// Membership roles
const (
	RoleAdmin     Role = "ADMIN"
	RoleDeveloper Role = "DEVELOPER"
	RoleTester    Role = "TESTER"
	RoleGuest     Role = "GUEST"
)

// IsValidRole checks if the role is one of the known membership roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleTester, RoleGuest:
		return true
	default:
		return false
	}
}

// ErrMemberAlreadyExist represents a "MemberAlreadyExist" kind of error.
type ErrMemberAlreadyExist struct {
	WorkspaceID int64
	UserID      int64
}

// IsErrMemberAlreadyExist checks if an error is a ErrMemberAlreadyExist.
func IsErrMemberAlreadyExist(err error) bool {
	_, ok := err.(ErrMemberAlreadyExist)
	return ok
}

func (err ErrMemberAlreadyExist) Error() string {
	return fmt.Sprintf("user is already a workspace member [workspace_id: %d, user_id: %d]", err.WorkspaceID, err.UserID)
}

func (err ErrMemberAlreadyExist) Unwrap() error {
	return util.ErrAlreadyExist
}

// ErrLastOwner is returned when removing the workspace owner from the
// member list.
type ErrLastOwner struct {
	UserID int64
}

// IsErrLastOwner checks if an error is a ErrLastOwner.
func IsErrLastOwner(err error) bool {
	_, ok := err.(ErrLastOwner)
	return ok
}

func (err ErrLastOwner) Error() string {
	return fmt.Sprintf("user is the workspace owner and cannot be removed [user_id: %d]", err.UserID)
}

func (err ErrLastOwner) Unwrap() error {
	return util.ErrInvalidArgument
}

// WorkspaceMember represents a user belonging to a workspace
type WorkspaceMember struct {
	ID          int64            `xorm:"pk autoincr" json:"id"`
	WorkspaceID int64            `xorm:"UNIQUE(s) NOT NULL" json:"workspaceId"`
	UserID      int64            `xorm:"UNIQUE(s) NOT NULL" json:"userId"`
	Role        Role             `xorm:"VARCHAR(10) NOT NULL" json:"role"`
	User        *user_model.User `xorm:"-" json:"user,omitempty"`

	CreatedUnix timeutil.TimeStamp `xorm:"created" json:"created"`
}

func init() {
	db.RegisterModel(new(WorkspaceMember))
}

// AddWorkspaceMember adds a user to the workspace with the given role
func AddWorkspaceMember(ctx context.Context, workspaceID, userID int64, role Role) error {
	if !IsValidRole(role) {
		return util.NewInvalidArgumentErrorf("membership role is not valid: %s", role)
	}
	return db.WithTx(ctx, func(ctx context.Context) error {
		return addWorkspaceMember(ctx, workspaceID, userID, role)
	})
}

func addWorkspaceMember(ctx context.Context, workspaceID, userID int64, role Role) error {
	has, err := db.GetEngine(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Exist(new(WorkspaceMember))
	if err != nil {
		return err
	}
	if has {
		return ErrMemberAlreadyExist{WorkspaceID: workspaceID, UserID: userID}
	}
	return db.Insert(ctx, &WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	})
}

// RemoveWorkspaceMember removes a user from the workspace. The owner
// cannot be removed.
func RemoveWorkspaceMember(ctx context.Context, w *Workspace, userID int64) error {
	if w.OwnerID == userID {
		return ErrLastOwner{UserID: userID}
	}
	_, err := db.GetEngine(ctx).
		Where("workspace_id = ? AND user_id = ?", w.ID, userID).
		Delete(new(WorkspaceMember))
	return err
}

// GetMembers returns all membership rows of a workspace with their users
// loaded.
func GetMembers(ctx context.Context, workspaceID int64) ([]*WorkspaceMember, error) {
	members := make([]*WorkspaceMember, 0, 5)
	if err := db.GetEngine(ctx).Where("workspace_id = ?", workspaceID).
		OrderBy("id").Find(&members); err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	userMap, err := user_model.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		m.User = userMap[m.UserID]
	}
	return members, nil
}

// IsWorkspaceMember returns true if the user has a membership row in the
// workspace.
func IsWorkspaceMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	return db.GetEngine(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Exist(new(WorkspaceMember))
}
