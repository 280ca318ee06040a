// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"net/http"
	"strconv"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"
	project_service "code.questhq.io/quest/services/project"
)

// ListProjects returns the workspace's projects
func ListProjects(ctx *context.APIContext) {
	projects, err := project_model.FindProjects(ctx.Req.Context(), ctx.Workspace.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, projects)
}

// Create creates a project in the workspace
func Create(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateProjectOption)

	p := &project_model.Project{
		WorkspaceID: ctx.Workspace.ID,
		Name:        form.Name,
		Key:         form.Key,
		Description: form.Description,
		LeadID:      form.LeadID,
	}
	if err := project_service.NewProject(ctx.Req.Context(), ctx.Doer, ctx.Workspace, p); err != nil {
		ctx.ServeError("NewProject", err)
		return
	}
	ctx.JSON(http.StatusCreated, p)
}

// Get returns the project
func Get(ctx *context.APIContext) {
	ctx.JSON(http.StatusOK, ctx.Project)
}

// Edit updates name, description or lead of the project
func Edit(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditProjectOption)

	if form.Name != nil {
		ctx.Project.Name = *form.Name
	}
	if form.Description != nil {
		ctx.Project.Description = *form.Description
	}
	if form.LeadID != nil {
		ctx.Project.LeadID = *form.LeadID
	}
	if err := project_model.UpdateProject(ctx.Req.Context(), ctx.Project); err != nil {
		ctx.ServeError("UpdateProject", err)
		return
	}
	ctx.JSON(http.StatusOK, ctx.Project)
}

// Delete removes the project with all its issues
func Delete(ctx *context.APIContext) {
	if err := project_service.DeleteProject(ctx.Req.Context(), ctx.Doer, ctx.Workspace, ctx.Project); err != nil {
		ctx.ServeError("DeleteProject", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Board returns the project's issues grouped into the fixed board columns
func Board(ctx *context.APIContext) {
	columns, err := issues_model.LoadBoard(ctx.Req.Context(), ctx.Project.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, columns)
}

// Backlog returns the project's top-level issues most recent first
func Backlog(ctx *context.APIContext) {
	issues, count, err := issues_model.LoadBacklog(ctx.Req.Context(), &issues_model.BacklogOptions{
		ListOptions: db.ListOptions{Page: ctx.FormInt("page"), PageSize: ctx.FormInt("limit")},
		ProjectID:   ctx.Project.ID,
	})
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.Resp.Header().Set("X-Total-Count", fmtInt64(count))
	ctx.JSON(http.StatusOK, issues)
}

func fmtInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}
