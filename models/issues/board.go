// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"

	"code.questhq.io/quest/models/db"
)

// ColumnOrder is the fixed order board columns are returned in. Every
// column is present even when empty.
var ColumnOrder = []IssueStatus{
	StatusBacklog,
	StatusTodo,
	StatusInProgress,
	StatusInReview,
	StatusDone,
	StatusCancelled,
}

// BoardColumn is one status group of the project board
type BoardColumn struct {
	Status IssueStatus `json:"status"`
	Issues []*Issue    `json:"issues"`
}

// LoadBoard returns the project's issues grouped into the fixed columns.
// Subtasks never appear as cards of their own; inside a column issues are
// ordered by sorting with id as the tie-break. The projection is pure
// read, it never reassigns positions.
func LoadBoard(ctx context.Context, projectID int64) ([]*BoardColumn, error) {
	issues := make([]*Issue, 0, 10)
	if err := db.GetEngine(ctx).
		Where("project_id = ? AND parent_id = 0", projectID).
		OrderBy("sorting, id").
		Find(&issues); err != nil {
		return nil, err
	}

	byStatus := make(map[IssueStatus][]*Issue, len(ColumnOrder))
	for _, issue := range issues {
		byStatus[issue.Status] = append(byStatus[issue.Status], issue)
	}

	columns := make([]*BoardColumn, 0, len(ColumnOrder))
	for _, status := range ColumnOrder {
		column := &BoardColumn{Status: status, Issues: byStatus[status]}
		if column.Issues == nil {
			column.Issues = []*Issue{}
		}
		columns = append(columns, column)
	}
	return columns, nil
}

// BacklogOptions control the backlog listing
type BacklogOptions struct {
	db.ListOptions
	ProjectID int64
}

// LoadBacklog returns the project's top-level issues most recent first,
// regardless of status.
func LoadBacklog(ctx context.Context, opts *BacklogOptions) ([]*Issue, int64, error) {
	sess := db.GetEngine(ctx).
		Where("project_id = ? AND parent_id = 0", opts.ProjectID).
		OrderBy("created_unix DESC, id DESC")
	if opts.Page > 0 {
		sess = db.SetSessionPagination(sess, &opts.ListOptions)
	}
	issues := make([]*Issue, 0, 10)
	count, err := sess.FindAndCount(&issues)
	if err != nil {
		return nil, 0, err
	}
	return issues, count, nil
}
