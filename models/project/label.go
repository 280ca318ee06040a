// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"fmt"
	"regexp"

	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"
)

// LabelColorPattern is a regexp which can validate label colors
var LabelColorPattern = regexp.MustCompile("^#[0-9a-fA-F]{6}$")

// ErrLabelNotExist represents a "LabelNotExist" kind of error.
type ErrLabelNotExist struct {
	LabelID int64
}

// IsErrLabelNotExist checks if an error is a ErrLabelNotExist
func IsErrLabelNotExist(err error) bool {
	_, ok := err.(ErrLabelNotExist)
	return ok
}

func (err ErrLabelNotExist) Error() string {
	return fmt.Sprintf("label does not exist [id: %d]", err.LabelID)
}

func (err ErrLabelNotExist) Unwrap() error {
	return util.ErrNotExist
}

// Label represents a project-scoped issue label
type Label struct {
	ID        int64  `xorm:"pk autoincr" json:"id"`
	ProjectID int64  `xorm:"INDEX NOT NULL" json:"projectId"`
	Name      string `xorm:"NOT NULL" json:"name"`
	Color     string `xorm:"VARCHAR(7) NOT NULL" json:"color"`

	CreatedUnix timeutil.TimeStamp `xorm:"created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated" json:"-"`
}

func init() {
	db.RegisterModel(new(Label))
}

// NewLabel creates a label for the given project
func NewLabel(ctx context.Context, l *Label) error {
	if l.Name == "" {
		return util.NewInvalidArgumentErrorf("label name is empty")
	}
	if !LabelColorPattern.MatchString(l.Color) {
		return util.NewInvalidArgumentErrorf("bad color code: %s", l.Color)
	}
	return db.Insert(ctx, l)
}

// GetLabelByID returns the label by given ID if exists.
func GetLabelByID(ctx context.Context, id int64) (*Label, error) {
	l := new(Label)
	has, err := db.GetEngine(ctx).ID(id).Get(l)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrLabelNotExist{LabelID: id}
	}
	return l, nil
}

// GetLabelsByProjectID returns all labels of a project
func GetLabelsByProjectID(ctx context.Context, projectID int64) ([]*Label, error) {
	labels := make([]*Label, 0, 10)
	return labels, db.GetEngine(ctx).
		Where("project_id = ?", projectID).
		OrderBy("name").Find(&labels)
}

// GetLabelsByIDs returns the labels with the given ids scoped to one
// project, missing ids are skipped.
func GetLabelsByIDs(ctx context.Context, projectID int64, labelIDs []int64) ([]*Label, error) {
	labels := make([]*Label, 0, len(labelIDs))
	if len(labelIDs) == 0 {
		return labels, nil
	}
	return labels, db.GetEngine(ctx).
		Where("project_id = ?", projectID).
		In("id", labelIDs).Find(&labels)
}

// UpdateLabel updates the label properties
func UpdateLabel(ctx context.Context, l *Label) error {
	if !LabelColorPattern.MatchString(l.Color) {
		return util.NewInvalidArgumentErrorf("bad color code: %s", l.Color)
	}
	_, err := db.GetEngine(ctx).ID(l.ID).Cols("name", "color").Update(l)
	return err
}

// DeleteLabel removes the label and all its issue references
func DeleteLabel(ctx context.Context, l *Label) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := db.Exec(ctx, "DELETE FROM issue_label WHERE label_id = ?", l.ID); err != nil {
			return err
		}
		_, err := db.GetEngine(ctx).ID(l.ID).Delete(new(Label))
		return err
	})
}
