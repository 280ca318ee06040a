// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workspace models the top-level tenant container. A workspace
// has exactly one owner and any number of members; write access to
// everything below it (projects, issues) is mediated through membership,
// there are no per-issue ACLs.
package workspace

import (
	"context"
	"fmt"
	"regexp"

	"code.questhq.io/quest/models/db"
	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"

	"xorm.io/builder"
)

// SlugPattern validates workspace slugs: lower-case alphanumerics with
// single dashes inside.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ErrWorkspaceNotExist represents a "WorkspaceNotExist" kind of error.
type ErrWorkspaceNotExist struct {
	ID   int64
	Slug string
}

// IsErrWorkspaceNotExist checks if an error is a ErrWorkspaceNotExist.
func IsErrWorkspaceNotExist(err error) bool {
	_, ok := err.(ErrWorkspaceNotExist)
	return ok
}

func (err ErrWorkspaceNotExist) Error() string {
	return fmt.Sprintf("workspace does not exist [id: %d, slug: %s]", err.ID, err.Slug)
}

func (err ErrWorkspaceNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrWorkspaceAlreadyExist represents a "WorkspaceAlreadyExist" kind of error.
type ErrWorkspaceAlreadyExist struct {
	Slug string
}

// IsErrWorkspaceAlreadyExist checks if an error is a ErrWorkspaceAlreadyExist.
func IsErrWorkspaceAlreadyExist(err error) bool {
	_, ok := err.(ErrWorkspaceAlreadyExist)
	return ok
}

func (err ErrWorkspaceAlreadyExist) Error() string {
	return fmt.Sprintf("workspace already exists [slug: %s]", err.Slug)
}

func (err ErrWorkspaceAlreadyExist) Unwrap() error {
	return util.ErrAlreadyExist
}

// Workspace represents a tenant organization holding projects
type Workspace struct {
	ID      int64            `xorm:"pk autoincr" json:"id"`
	Name    string           `xorm:"NOT NULL" json:"name"`
	Slug    string           `xorm:"UNIQUE NOT NULL" json:"slug"`
	OwnerID int64            `xorm:"INDEX NOT NULL" json:"ownerId"`
	Owner   *user_model.User `xorm:"-" json:"owner,omitempty"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated" json:"updated"`
}

func init() {
	db.RegisterModel(new(Workspace))
}

// LoadOwner loads the owner user association
func (w *Workspace) LoadOwner(ctx context.Context) (err error) {
	if w.Owner != nil {
		return nil
	}
	w.Owner, err = user_model.GetUserByID(ctx, w.OwnerID)
	return err
}

// CreateWorkspace creates a workspace and its owner membership row in one
// transaction.
func CreateWorkspace(ctx context.Context, w *Workspace) error {
	if !SlugPattern.MatchString(w.Slug) {
		return util.NewInvalidArgumentErrorf("workspace slug is not valid: %s", w.Slug)
	}
	if w.Name == "" {
		return util.NewInvalidArgumentErrorf("workspace name is empty")
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		has, err := db.GetEngine(ctx).Where("slug = ?", w.Slug).Exist(new(Workspace))
		if err != nil {
			return err
		}
		if has {
			return ErrWorkspaceAlreadyExist{Slug: w.Slug}
		}
		if err := db.Insert(ctx, w); err != nil {
			return err
		}
		return db.Insert(ctx, &WorkspaceMember{
			WorkspaceID: w.ID,
			UserID:      w.OwnerID,
			Role:        RoleAdmin,
		})
	})
}

// GetWorkspaceByID returns the workspace by given ID if exists.
func GetWorkspaceByID(ctx context.Context, id int64) (*Workspace, error) {
	w := new(Workspace)
	has, err := db.GetEngine(ctx).ID(id).Get(w)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrWorkspaceNotExist{ID: id}
	}
	return w, nil
}

// GetWorkspaceBySlug returns the workspace by given slug if exists.
func GetWorkspaceBySlug(ctx context.Context, slug string) (*Workspace, error) {
	w := new(Workspace)
	has, err := db.GetEngine(ctx).Where("slug = ?", slug).Get(w)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrWorkspaceNotExist{Slug: slug}
	}
	return w, nil
}

// FindUserWorkspaces returns all workspaces the user owns or is a member
// of, newest first.
func FindUserWorkspaces(ctx context.Context, userID int64) ([]*Workspace, error) {
	workspaces := make([]*Workspace, 0, 5)
	cond := builder.Or(
		builder.Eq{"owner_id": userID},
		builder.In("id", builder.Select("workspace_id").
			From("workspace_member").Where(builder.Eq{"user_id": userID})),
	)
	return workspaces, db.GetEngine(ctx).Where(cond).
		OrderBy(string(db.SearchOrderByNewest)).Find(&workspaces)
}

// UpdateWorkspace updates the mutable workspace properties
func UpdateWorkspace(ctx context.Context, w *Workspace) error {
	if w.Name == "" {
		return util.NewInvalidArgumentErrorf("workspace name is empty")
	}
	_, err := db.GetEngine(ctx).ID(w.ID).Cols("name").Update(w)
	return err
}

// DeleteWorkspace removes the workspace row and its membership and
// invitation rows. Projects must already be gone, the full cascade is
// orchestrated by the workspace service.
func DeleteWorkspace(ctx context.Context, w *Workspace) error {
	if err := db.DeleteBeans(ctx,
		&WorkspaceMember{WorkspaceID: w.ID},
		&Invitation{WorkspaceID: w.ID},
	); err != nil {
		return err
	}
	_, err := db.GetEngine(ctx).ID(w.ID).Delete(new(Workspace))
	return err
}
