// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"fmt"

	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"
)

// SprintStatus is the lifecycle state of a sprint
type SprintStatus string

// Sprint lifecycle states
const (
	SprintStatusPlanned   SprintStatus = "PLANNED"
	SprintStatusActive    SprintStatus = "ACTIVE"
	SprintStatusCompleted SprintStatus = "COMPLETED"
)

// IsValidSprintStatus checks if the status is a known sprint state
func IsValidSprintStatus(s SprintStatus) bool {
	switch s {
	case SprintStatusPlanned, SprintStatusActive, SprintStatusCompleted:
		return true
	default:
		return false
	}
}

// ErrSprintNotExist represents a "SprintNotExist" kind of error.
type ErrSprintNotExist struct {
	SprintID int64
}

// IsErrSprintNotExist checks if an error is a ErrSprintNotExist
func IsErrSprintNotExist(err error) bool {
	_, ok := err.(ErrSprintNotExist)
	return ok
}

func (err ErrSprintNotExist) Error() string {
	return fmt.Sprintf("sprint does not exist [id: %d]", err.SprintID)
}

func (err ErrSprintNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrSprintAlreadyActive is returned when starting a sprint while the
// project already has an active one.
type ErrSprintAlreadyActive struct {
	ProjectID int64
}

// IsErrSprintAlreadyActive checks if an error is a ErrSprintAlreadyActive
func IsErrSprintAlreadyActive(err error) bool {
	_, ok := err.(ErrSprintAlreadyActive)
	return ok
}

func (err ErrSprintAlreadyActive) Error() string {
	return fmt.Sprintf("project already has an active sprint [project_id: %d]", err.ProjectID)
}

func (err ErrSprintAlreadyActive) Unwrap() error {
	return util.ErrAlreadyExist
}

// Sprint represents a timeboxed iteration inside a project
type Sprint struct {
	ID        int64        `xorm:"pk autoincr" json:"id"`
	ProjectID int64        `xorm:"INDEX NOT NULL" json:"projectId"`
	Name      string       `xorm:"NOT NULL" json:"name"`
	Goal      string       `xorm:"TEXT" json:"goal,omitempty"`
	Status    SprintStatus `xorm:"VARCHAR(10) NOT NULL DEFAULT 'PLANNED'" json:"status"`

	StartUnix timeutil.TimeStamp `json:"startDate,omitempty"`
	EndUnix   timeutil.TimeStamp `json:"endDate,omitempty"`

	CreatedUnix timeutil.TimeStamp `xorm:"created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated" json:"-"`
}

func init() {
	db.RegisterModel(new(Sprint))
}

// NewSprint creates a sprint in PLANNED state
func NewSprint(ctx context.Context, s *Sprint) error {
	if s.Name == "" {
		return util.NewInvalidArgumentErrorf("sprint name is empty")
	}
	if !s.StartUnix.IsZero() && !s.EndUnix.IsZero() && s.EndUnix < s.StartUnix {
		return util.NewInvalidArgumentErrorf("sprint ends before it starts")
	}
	s.Status = SprintStatusPlanned
	return db.Insert(ctx, s)
}

// GetSprintByID returns the sprint by given ID if exists.
func GetSprintByID(ctx context.Context, id int64) (*Sprint, error) {
	s := new(Sprint)
	has, err := db.GetEngine(ctx).ID(id).Get(s)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrSprintNotExist{SprintID: id}
	}
	return s, nil
}

// FindSprints returns all sprints of a project, oldest first.
func FindSprints(ctx context.Context, projectID int64) ([]*Sprint, error) {
	sprints := make([]*Sprint, 0, 5)
	return sprints, db.GetEngine(ctx).
		Where("project_id = ?", projectID).
		OrderBy(string(db.SearchOrderByID)).Find(&sprints)
}

// UpdateSprint updates the sprint properties and state. At most one
// sprint per project can be ACTIVE.
func UpdateSprint(ctx context.Context, s *Sprint) error {
	if s.Name == "" {
		return util.NewInvalidArgumentErrorf("sprint name is empty")
	}
	if !IsValidSprintStatus(s.Status) {
		return util.NewInvalidArgumentErrorf("sprint status is not valid: %s", s.Status)
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		if s.Status == SprintStatusActive {
			has, err := db.GetEngine(ctx).
				Where("project_id = ? AND status = ? AND id <> ?", s.ProjectID, SprintStatusActive, s.ID).
				Exist(new(Sprint))
			if err != nil {
				return err
			}
			if has {
				return ErrSprintAlreadyActive{ProjectID: s.ProjectID}
			}
		}
		_, err := db.GetEngine(ctx).ID(s.ID).
			Cols("name", "goal", "status", "start_unix", "end_unix").Update(s)
		return err
	})
}
