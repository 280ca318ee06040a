// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issue

import (
	"net/http"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/web"
	issue_service "code.questhq.io/quest/services/issue"
)

// ListIssues returns all issues of the project, newest first
func ListIssues(ctx *context.APIContext) {
	opts := &db.ListOptions{Page: ctx.FormInt("page"), PageSize: ctx.FormInt("limit")}
	sess := db.GetEngine(ctx.Req.Context()).
		Where("project_id = ?", ctx.Project.ID).
		OrderBy("created_unix DESC, id DESC")
	if opts.Page > 0 {
		sess = db.SetSessionPagination(sess, opts)
	}
	issues := make([]*issues_model.Issue, 0, 10)
	if err := sess.Find(&issues); err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, issues)
}

// Create creates an issue in the project
func Create(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateIssueOption)

	issue := &issues_model.Issue{
		Title:       form.Title,
		Description: form.Description,
		Type:        issues_model.IssueType(form.Type),
		Status:      issues_model.IssueStatus(form.Status),
		Priority:    issues_model.IssuePriority(form.Priority),
		AssigneeID:  form.AssigneeID,
		ReporterID:  ctx.Doer.ID,
		ParentID:    form.ParentID,
		SprintID:    form.SprintID,
		DueUnix:     timeutil.TimeStamp(form.DueDate),
	}
	if issue.Priority == "" {
		issue.Priority = issues_model.PriorityNone
	}
	if issue.SprintID > 0 && !checkSprint(ctx, issue.SprintID) {
		return
	}

	if err := issue_service.NewIssue(ctx.Req.Context(), ctx.Doer, ctx.Project, issue, form.Labels); err != nil {
		ctx.ServeError("NewIssue", err)
		return
	}
	ctx.JSON(http.StatusCreated, issue)
}

// Get returns the issue with labels and subtasks
func Get(ctx *context.APIContext) {
	issue := ctx.Issue
	if err := issue.LoadLabels(ctx.Req.Context()); err != nil {
		ctx.InternalServerError(err)
		return
	}
	subtasks, err := issues_model.GetSubtasks(ctx.Req.Context(), issue.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, struct {
		*issues_model.Issue
		Subtasks []*issues_model.Issue `json:"subtasks"`
	}{issue, subtasks})
}

// Edit updates fields of the issue. Status changes go through the move
// endpoint or the bulk endpoint instead.
func Edit(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditIssueOption)
	issue := ctx.Issue

	cols := make([]string, 0, 5)
	if form.Title != nil {
		if *form.Title == "" {
			ctx.Error(http.StatusUnprocessableEntity, "Edit", "issue title is empty")
			return
		}
		issue.Title = *form.Title
		cols = append(cols, "title")
	}
	if form.Description != nil {
		issue.Description = *form.Description
		cols = append(cols, "description")
	}
	if form.Type != nil {
		t := issues_model.IssueType(*form.Type)
		if !issues_model.IsValidType(t) {
			ctx.Error(http.StatusUnprocessableEntity, "Edit", "issue type is not valid: "+*form.Type)
			return
		}
		issue.Type = t
		cols = append(cols, "type")
	}
	if form.SprintID != nil {
		if *form.SprintID > 0 && !checkSprint(ctx, *form.SprintID) {
			return
		}
		issue.SprintID = *form.SprintID
		cols = append(cols, "sprint_id")
	}
	if form.DueDate != nil {
		issue.DueUnix = timeutil.TimeStamp(*form.DueDate)
		cols = append(cols, "due_unix")
	}
	if len(cols) > 0 {
		if err := issues_model.UpdateIssueCols(ctx.Req.Context(), issue, cols...); err != nil {
			ctx.InternalServerError(err)
			return
		}
	}

	if form.ParentID != nil && *form.ParentID != issue.ParentID {
		if err := issues_model.ChangeParent(ctx.Req.Context(), issue, *form.ParentID); err != nil {
			ctx.ServeError("ChangeParent", err)
			return
		}
	}
	if form.Priority != nil {
		if err := issue_service.ChangePriority(ctx.Req.Context(), ctx.Doer, issue, issues_model.IssuePriority(*form.Priority)); err != nil {
			ctx.ServeError("ChangePriority", err)
			return
		}
	}
	if form.AssigneeID != nil {
		if err := issue_service.ChangeAssignee(ctx.Req.Context(), ctx.Doer, issue, *form.AssigneeID); err != nil {
			ctx.ServeError("ChangeAssignee", err)
			return
		}
	}
	if form.Labels != nil {
		if err := issues_model.ReplaceIssueLabels(ctx.Req.Context(), issue, form.Labels); err != nil {
			ctx.ServeError("ReplaceIssueLabels", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, issue)
}

// Delete removes the issue with its subtasks, comments and attachments
func Delete(ctx *context.APIContext) {
	if err := issue_service.DeleteIssue(ctx.Req.Context(), ctx.Doer, ctx.Issue); err != nil {
		ctx.ServeError("DeleteIssue", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Move places the issue on the board: target column and position
func Move(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.MoveIssueOption)

	status := issues_model.IssueStatus(form.Status)
	if !issues_model.IsValidStatus(status) {
		ctx.Error(http.StatusUnprocessableEntity, "Move", "issue status is not valid: "+form.Status)
		return
	}
	// without an explicit position the issue is appended to the column
	var err error
	if form.Order > 0 {
		err = issue_service.MoveIssue(ctx.Req.Context(), ctx.Doer, ctx.Issue, status, form.Order)
	} else {
		err = issue_service.ChangeStatus(ctx.Req.Context(), ctx.Doer, ctx.Issue, status)
	}
	if err != nil {
		ctx.ServeError("MoveIssue", err)
		return
	}
	ctx.JSON(http.StatusOK, ctx.Issue)
}

// ListSubtasks returns the issue's direct subtasks
func ListSubtasks(ctx *context.APIContext) {
	subtasks, err := issues_model.GetSubtasks(ctx.Req.Context(), ctx.Issue.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, subtasks)
}

// checkSprint rejects sprints of other projects
func checkSprint(ctx *context.APIContext, sprintID int64) bool {
	sprint, err := project_model.GetSprintByID(ctx.Req.Context(), sprintID)
	if err != nil {
		ctx.ServeError("GetSprintByID", err)
		return false
	}
	if sprint.ProjectID != ctx.Project.ID {
		ctx.Error(http.StatusUnprocessableEntity, "checkSprint", "sprint belongs to another project")
		return false
	}
	return true
}
