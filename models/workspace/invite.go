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

	"github.com/google/uuid"
)

// ErrInvitationNotExist represents a "InvitationNotExist" kind of error.
type ErrInvitationNotExist struct {
	Token string
}

// IsErrInvitationNotExist checks if an error is a ErrInvitationNotExist.
func IsErrInvitationNotExist(err error) bool {
	_, ok := err.(ErrInvitationNotExist)
	return ok
}

func (err ErrInvitationNotExist) Error() string {
	return fmt.Sprintf("invitation does not exist [token: %s]", err.Token)
}

func (err ErrInvitationNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrInvitationAlreadyExist represents a pending invitation for the same
// email in the same workspace.
type ErrInvitationAlreadyExist struct {
	WorkspaceID int64
	Email       string
}

// IsErrInvitationAlreadyExist checks if an error is a ErrInvitationAlreadyExist.
func IsErrInvitationAlreadyExist(err error) bool {
	_, ok := err.(ErrInvitationAlreadyExist)
	return ok
}

func (err ErrInvitationAlreadyExist) Error() string {
	return fmt.Sprintf("invitation already exists [workspace_id: %d, email: %s]", err.WorkspaceID, err.Email)
}

func (err ErrInvitationAlreadyExist) Unwrap() error {
	return util.ErrAlreadyExist
}

// ErrInvitationAlreadyAccepted is returned when accepting an invitation
// twice.
type ErrInvitationAlreadyAccepted struct {
	Token string
}

// IsErrInvitationAlreadyAccepted checks if an error is a ErrInvitationAlreadyAccepted.
func IsErrInvitationAlreadyAccepted(err error) bool {
	_, ok := err.(ErrInvitationAlreadyAccepted)
	return ok
}

func (err ErrInvitationAlreadyAccepted) Error() string {
	return fmt.Sprintf("invitation has already been accepted [token: %s]", err.Token)
}

func (err ErrInvitationAlreadyAccepted) Unwrap() error {
	return util.ErrAlreadyExist
}

// Invitation represents a pending offer to join a workspace, addressed to
// an email so the recipient does not need an account yet.
type Invitation struct {
	ID          int64  `xorm:"pk autoincr" json:"id"`
	WorkspaceID int64  `xorm:"INDEX NOT NULL" json:"workspaceId"`
	Email       string `xorm:"NOT NULL" json:"email"`
	Role        Role   `xorm:"VARCHAR(10) NOT NULL" json:"role"`
	Token       string `xorm:"UNIQUE NOT NULL" json:"token"`
	InviterID   int64  `xorm:"NOT NULL" json:"inviterId"`
	Accepted    bool   `xorm:"NOT NULL DEFAULT false" json:"accepted"`

	CreatedUnix timeutil.TimeStamp `xorm:"created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated" json:"-"`
}

func init() {
	db.RegisterModel(new(Invitation))
}

// CreateInvitation creates a pending invitation with a fresh token. Only
// one pending invitation per (workspace, email) is allowed.
func CreateInvitation(ctx context.Context, inv *Invitation) error {
	inv.Email = user_model.NormalizeEmail(inv.Email)
	if inv.Email == "" {
		return util.NewInvalidArgumentErrorf("invitation email is empty")
	}
	if !IsValidRole(inv.Role) {
		return util.NewInvalidArgumentErrorf("membership role is not valid: %s", inv.Role)
	}
	inv.Token = uuid.New().String()

	return db.WithTx(ctx, func(ctx context.Context) error {
		has, err := db.GetEngine(ctx).
			Where("workspace_id = ? AND email = ? AND accepted = ?", inv.WorkspaceID, inv.Email, false).
			Exist(new(Invitation))
		if err != nil {
			return err
		}
		if has {
			return ErrInvitationAlreadyExist{WorkspaceID: inv.WorkspaceID, Email: inv.Email}
		}
		return db.Insert(ctx, inv)
	})
}

// GetInvitationByToken returns the invitation with the given token.
func GetInvitationByToken(ctx context.Context, token string) (*Invitation, error) {
	inv := new(Invitation)
	has, err := db.GetEngine(ctx).Where("token = ?", token).Get(inv)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrInvitationNotExist{Token: token}
	}
	return inv, nil
}

// FindInvitations returns all invitations of a workspace, newest first.
func FindInvitations(ctx context.Context, workspaceID int64) ([]*Invitation, error) {
	invitations := make([]*Invitation, 0, 5)
	return invitations, db.GetEngine(ctx).
		Where("workspace_id = ?", workspaceID).
		OrderBy(string(db.SearchOrderByNewest)).Find(&invitations)
}

// AcceptInvitation marks the invitation accepted and adds the user as a
// member in one transaction. The accepting user's email must match the
// invited address.
func AcceptInvitation(ctx context.Context, inv *Invitation, doer *user_model.User) error {
	if inv.Accepted {
		return ErrInvitationAlreadyAccepted{Token: inv.Token}
	}
	if user_model.NormalizeEmail(doer.Email) != inv.Email {
		return util.NewPermissionDeniedErrorf("invitation was addressed to a different email")
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		inv.Accepted = true
		if _, err := db.GetEngine(ctx).ID(inv.ID).Cols("accepted").Update(inv); err != nil {
			return err
		}
		err := addWorkspaceMember(ctx, inv.WorkspaceID, doer.ID, inv.Role)
		if IsErrMemberAlreadyExist(err) {
			// already joined through another path, the invitation is spent either way
			return nil
		}
		return err
	})
}
