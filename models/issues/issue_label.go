// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"

	"code.questhq.io/quest/models/db"
	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/modules/util"
)

// IssueLabel represents an issue-label relation.
type IssueLabel struct {
	ID      int64 `xorm:"pk autoincr"`
	IssueID int64 `xorm:"UNIQUE(s) NOT NULL"`
	LabelID int64 `xorm:"UNIQUE(s) NOT NULL"`
}

func init() {
	db.RegisterModel(new(IssueLabel))
}

// LoadLabels loads the labels attached to the issue
func (issue *Issue) LoadLabels(ctx context.Context) error {
	if issue.Labels != nil {
		return nil
	}
	issue.Labels = make([]*project_model.Label, 0, 5)
	return db.GetEngine(ctx).
		Join("INNER", "issue_label", "issue_label.label_id = label.id").
		Where("issue_label.issue_id = ?", issue.ID).
		Asc("label.name").
		Find(&issue.Labels)
}

// ReplaceIssueLabels makes the given label set the issue's label set.
// Every label must belong to the issue's project.
func ReplaceIssueLabels(ctx context.Context, issue *Issue, labelIDs []int64) error {
	return db.AutoTx(ctx, func(ctx context.Context) error {
		return replaceIssueLabels(ctx, issue, labelIDs)
	})
}

func replaceIssueLabels(ctx context.Context, issue *Issue, labelIDs []int64) error {
	if labelIDs == nil {
		return nil
	}
	ids := make([]int64, 0, len(labelIDs))
	for _, id := range labelIDs {
		if !util.SliceContains(ids, id) {
			ids = append(ids, id)
		}
	}
	labels, err := project_model.GetLabelsByIDs(ctx, issue.ProjectID, ids)
	if err != nil {
		return err
	}
	if len(labels) != len(ids) {
		return util.NewInvalidArgumentErrorf("some labels do not belong to the project")
	}

	if _, err := db.Exec(ctx, "DELETE FROM issue_label WHERE issue_id = ?", issue.ID); err != nil {
		return err
	}
	issueLabels := make([]*IssueLabel, 0, len(labels))
	for _, label := range labels {
		issueLabels = append(issueLabels, &IssueLabel{IssueID: issue.ID, LabelID: label.ID})
	}
	if len(issueLabels) > 0 {
		if err := db.Insert(ctx, issueLabels); err != nil {
			return err
		}
	}
	issue.Labels = labels
	return nil
}
