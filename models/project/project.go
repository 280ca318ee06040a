// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package project models a named issue-key namespace inside a workspace.
// The project key ("ENG") prefixes every issue key and the NumIssues
// counter allocates the per-project issue numbers.
package project

import (
	"context"
	"fmt"
	"regexp"

	"code.questhq.io/quest/models/db"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"
)

// KeyPattern validates project keys: 2-10 upper-case alphanumerics
// starting with a letter.
var KeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

// ErrProjectNotExist represents a "ProjectNotExist" kind of error.
type ErrProjectNotExist struct {
	ID int64
}

// IsErrProjectNotExist checks if an error is a ErrProjectNotExist
func IsErrProjectNotExist(err error) bool {
	_, ok := err.(ErrProjectNotExist)
	return ok
}

func (err ErrProjectNotExist) Error() string {
	return fmt.Sprintf("project does not exist [id: %d]", err.ID)
}

func (err ErrProjectNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrProjectAlreadyExist represents a duplicate project key inside one
// workspace.
type ErrProjectAlreadyExist struct {
	WorkspaceID int64
	Key         string
}

// IsErrProjectAlreadyExist checks if an error is a ErrProjectAlreadyExist
func IsErrProjectAlreadyExist(err error) bool {
	_, ok := err.(ErrProjectAlreadyExist)
	return ok
}

func (err ErrProjectAlreadyExist) Error() string {
	return fmt.Sprintf("project already exists [workspace_id: %d, key: %s]", err.WorkspaceID, err.Key)
}

func (err ErrProjectAlreadyExist) Unwrap() error {
	return util.ErrAlreadyExist
}

// Project represents a project inside a workspace
type Project struct {
	ID          int64  `xorm:"pk autoincr" json:"id"`
	WorkspaceID int64  `xorm:"UNIQUE(s) INDEX NOT NULL" json:"workspaceId"`
	Name        string `xorm:"NOT NULL" json:"name"`
	Key         string `xorm:"UNIQUE(s) VARCHAR(10) NOT NULL" json:"key"`
	Description string `xorm:"TEXT" json:"description,omitempty"`
	LeadID      int64  `xorm:"INDEX" json:"leadId,omitempty"`

	// NumIssues counts ever-created issues and allocates issue numbers,
	// it never decreases on deletion so keys are not reused.
	NumIssues int64 `xorm:"NOT NULL DEFAULT 0" json:"-"`

	Workspace *workspace_model.Workspace `xorm:"-" json:"-"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated" json:"updated"`
}

func init() {
	db.RegisterModel(new(Project))
}

// LoadWorkspace loads the owning workspace association
func (p *Project) LoadWorkspace(ctx context.Context) (err error) {
	if p.Workspace != nil {
		return nil
	}
	p.Workspace, err = workspace_model.GetWorkspaceByID(ctx, p.WorkspaceID)
	return err
}

// NewProject creates a project. The key must be unique inside the
// workspace.
func NewProject(ctx context.Context, p *Project) error {
	if p.Name == "" {
		return util.NewInvalidArgumentErrorf("project name is empty")
	}
	if !KeyPattern.MatchString(p.Key) {
		return util.NewInvalidArgumentErrorf("project key is not valid: %s", p.Key)
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		has, err := db.GetEngine(ctx).
			Where("workspace_id = ? AND `key` = ?", p.WorkspaceID, p.Key).
			Exist(new(Project))
		if err != nil {
			return err
		}
		if has {
			return ErrProjectAlreadyExist{WorkspaceID: p.WorkspaceID, Key: p.Key}
		}
		return db.Insert(ctx, p)
	})
}

// GetProjectByID returns the project by given ID if exists.
func GetProjectByID(ctx context.Context, id int64) (*Project, error) {
	p := new(Project)
	has, err := db.GetEngine(ctx).ID(id).Get(p)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrProjectNotExist{ID: id}
	}
	return p, nil
}

// FindProjects returns all projects of a workspace, oldest first.
func FindProjects(ctx context.Context, workspaceID int64) ([]*Project, error) {
	projects := make([]*Project, 0, 5)
	return projects, db.GetEngine(ctx).
		Where("workspace_id = ?", workspaceID).
		OrderBy(string(db.SearchOrderByID)).Find(&projects)
}

// UpdateProject updates the mutable project properties
func UpdateProject(ctx context.Context, p *Project) error {
	if p.Name == "" {
		return util.NewInvalidArgumentErrorf("project name is empty")
	}
	_, err := db.GetEngine(ctx).ID(p.ID).Cols("name", "description", "lead_id").Update(p)
	return err
}

// NextIssueNum increments the project's issue counter and returns the new
// value. Must run inside the same transaction as the issue insert.
func NextIssueNum(ctx context.Context, projectID int64) (int64, error) {
	if _, err := db.Exec(ctx, "UPDATE `project` SET num_issues = num_issues + 1 WHERE id = ?", projectID); err != nil {
		return 0, err
	}
	var num int64
	has, err := db.GetEngine(ctx).Table("project").Where("id = ?", projectID).Cols("num_issues").Get(&num)
	if err != nil {
		return 0, err
	} else if !has {
		return 0, ErrProjectNotExist{ID: projectID}
	}
	return num, nil
}

// DeleteProject removes the project row and its labels and sprints.
// Issues must already be gone, the full cascade is orchestrated by the
// project service.
func DeleteProject(ctx context.Context, p *Project) error {
	if err := db.DeleteBeans(ctx,
		&Label{ProjectID: p.ID},
		&Sprint{ProjectID: p.ID},
	); err != nil {
		return err
	}
	_, err := db.GetEngine(ctx).ID(p.ID).Delete(new(Project))
	return err
}
