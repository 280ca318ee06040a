// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

// CreateIssueOption options when creating an issue
type CreateIssueOption struct {
	Title       string  `json:"title" binding:"Required;MaxSize(255)"`
	Description string  `json:"description" binding:"MaxSize(65535)"`
	Type        string  `json:"type" binding:"Required"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssigneeID  int64   `json:"assigneeId"`
	ParentID    int64   `json:"parentId"`
	SprintID    int64   `json:"sprintId"`
	DueDate     int64   `json:"dueDate"`
	Labels      []int64 `json:"labels"`
}

// EditIssueOption options when updating an issue. Nil fields keep their
// current value; zero values clear optional associations.
type EditIssueOption struct {
	Title       *string `json:"title" binding:"MaxSize(255)"`
	Description *string `json:"description" binding:"MaxSize(65535)"`
	Type        *string `json:"type"`
	Priority    *string `json:"priority"`
	AssigneeID  *int64  `json:"assigneeId"`
	ParentID    *int64  `json:"parentId"`
	SprintID    *int64  `json:"sprintId"`
	DueDate     *int64  `json:"dueDate"`
	Labels      []int64 `json:"labels"`
}

// MoveIssueOption options when moving an issue on the board
type MoveIssueOption struct {
	Status string `json:"status" binding:"Required"`
	Order  int64  `json:"order"`
}

// BulkIssueOption options for a bulk mutation over issues
type BulkIssueOption struct {
	Action     string  `json:"action" binding:"Required"`
	IssueIDs   []int64 `json:"issueIds" binding:"Required"`
	Status     string  `json:"status"`
	AssigneeID int64   `json:"assigneeId"`
	Priority   string  `json:"priority"`
}

// CreateCommentOption options when commenting on an issue
type CreateCommentOption struct {
	Content string `json:"content" binding:"Required;MaxSize(65535)"`
}

// EditCommentOption options when updating a comment
type EditCommentOption struct {
	Content string `json:"content" binding:"Required;MaxSize(65535)"`
}

// CreateAttachmentOption options when attaching a file's metadata
type CreateAttachmentOption struct {
	Name string `json:"name" binding:"Required;MaxSize(255)"`
	Size int64  `json:"size"`
}
