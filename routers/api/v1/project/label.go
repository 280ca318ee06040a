// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"net/http"

	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"
)

// getProjectLabel resolves the labelID parameter inside the current
// project, labels of other projects are 404.
func getProjectLabel(ctx *context.APIContext) *project_model.Label {
	label, err := project_model.GetLabelByID(ctx.Req.Context(), ctx.ParamsInt64("labelID"))
	if err != nil {
		ctx.ServeError("GetLabelByID", err)
		return nil
	}
	if label.ProjectID != ctx.Project.ID {
		ctx.NotFound()
		return nil
	}
	return label
}

// ListLabels returns the project's labels
func ListLabels(ctx *context.APIContext) {
	labels, err := project_model.GetLabelsByProjectID(ctx.Req.Context(), ctx.Project.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, labels)
}

// CreateLabel creates a label in the project
func CreateLabel(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateLabelOption)

	label := &project_model.Label{
		ProjectID: ctx.Project.ID,
		Name:      form.Name,
		Color:     form.Color,
	}
	if err := project_model.NewLabel(ctx.Req.Context(), label); err != nil {
		ctx.ServeError("NewLabel", err)
		return
	}
	ctx.JSON(http.StatusCreated, label)
}

// EditLabel updates name or color of a label
func EditLabel(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditLabelOption)

	label := getProjectLabel(ctx)
	if label == nil {
		return
	}
	if form.Name != nil {
		label.Name = *form.Name
	}
	if form.Color != nil {
		label.Color = *form.Color
	}
	if err := project_model.UpdateLabel(ctx.Req.Context(), label); err != nil {
		ctx.ServeError("UpdateLabel", err)
		return
	}
	ctx.JSON(http.StatusOK, label)
}

// DeleteLabel removes a label and detaches it from every issue
func DeleteLabel(ctx *context.APIContext) {
	label := getProjectLabel(ctx)
	if label == nil {
		return
	}
	if err := project_model.DeleteLabel(ctx.Req.Context(), label); err != nil {
		ctx.ServeError("DeleteLabel", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
