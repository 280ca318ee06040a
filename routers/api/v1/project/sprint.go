// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"net/http"

	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/web"
)

// ListSprints returns the project's sprints
func ListSprints(ctx *context.APIContext) {
	sprints, err := project_model.FindSprints(ctx.Req.Context(), ctx.Project.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, sprints)
}

// CreateSprint creates a sprint in the project, always planned
func CreateSprint(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateSprintOption)

	sprint := &project_model.Sprint{
		ProjectID: ctx.Project.ID,
		Name:      form.Name,
		Goal:      form.Goal,
		StartUnix: timeutil.TimeStamp(form.StartDate),
		EndUnix:   timeutil.TimeStamp(form.EndDate),
	}
	if err := project_model.NewSprint(ctx.Req.Context(), sprint); err != nil {
		ctx.ServeError("NewSprint", err)
		return
	}
	ctx.JSON(http.StatusCreated, sprint)
}

// EditSprint updates a sprint, at most one sprint per project may be
// active at a time.
func EditSprint(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditSprintOption)

	sprint, err := project_model.GetSprintByID(ctx.Req.Context(), ctx.ParamsInt64("sprintID"))
	if err != nil {
		ctx.ServeError("GetSprintByID", err)
		return
	}
	if sprint.ProjectID != ctx.Project.ID {
		ctx.NotFound()
		return
	}

	if form.Name != nil {
		sprint.Name = *form.Name
	}
	if form.Goal != nil {
		sprint.Goal = *form.Goal
	}
	if form.Status != nil {
		sprint.Status = project_model.SprintStatus(*form.Status)
	}
	if form.StartDate != nil {
		sprint.StartUnix = timeutil.TimeStamp(*form.StartDate)
	}
	if form.EndDate != nil {
		sprint.EndUnix = timeutil.TimeStamp(*form.EndDate)
	}
	if err := project_model.UpdateSprint(ctx.Req.Context(), sprint); err != nil {
		ctx.ServeError("UpdateSprint", err)
		return
	}
	ctx.JSON(http.StatusOK, sprint)
}
