// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"net/http"

	activities_model "code.questhq.io/quest/models/activities"
	"code.questhq.io/quest/models/db"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"
	workspace_service "code.questhq.io/quest/services/workspace"
)

// List returns the workspaces the signed-in user owns or belongs to
func List(ctx *context.APIContext) {
	workspaces, err := workspace_model.FindUserWorkspaces(ctx.Req.Context(), ctx.Doer.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, workspaces)
}

// Create creates a workspace owned by the signed-in user
func Create(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateWorkspaceOption)

	w := &workspace_model.Workspace{
		Name:    form.Name,
		Slug:    form.Slug,
		OwnerID: ctx.Doer.ID,
	}
	if err := workspace_model.CreateWorkspace(ctx.Req.Context(), w); err != nil {
		ctx.ServeError("CreateWorkspace", err)
		return
	}
	ctx.JSON(http.StatusCreated, w)
}

// Get returns the workspace
func Get(ctx *context.APIContext) {
	if err := ctx.Workspace.LoadOwner(ctx.Req.Context()); err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, ctx.Workspace)
}

// Edit renames the workspace
func Edit(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditWorkspaceOption)

	ctx.Workspace.Name = form.Name
	if err := workspace_model.UpdateWorkspace(ctx.Req.Context(), ctx.Workspace); err != nil {
		ctx.ServeError("UpdateWorkspace", err)
		return
	}
	ctx.JSON(http.StatusOK, ctx.Workspace)
}

// Delete removes the workspace and everything under it, owner only
func Delete(ctx *context.APIContext) {
	if err := workspace_service.DeleteWorkspace(ctx.Req.Context(), ctx.Doer, ctx.Workspace); err != nil {
		ctx.ServeError("DeleteWorkspace", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListMembers returns the workspace members with their users loaded
func ListMembers(ctx *context.APIContext) {
	members, err := workspace_model.GetMembers(ctx.Req.Context(), ctx.Workspace.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, members)
}

// RemoveMember removes a member from the workspace. Members may remove
// themselves; removing the owner is rejected.
func RemoveMember(ctx *context.APIContext) {
	if err := workspace_model.RemoveWorkspaceMember(ctx.Req.Context(), ctx.Workspace, ctx.ParamsInt64("userID")); err != nil {
		ctx.ServeError("RemoveWorkspaceMember", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Activities returns the workspace activity feed
func Activities(ctx *context.APIContext) {
	activities, err := activities_model.GetActivities(ctx.Req.Context(), &activities_model.GetActivitiesOptions{
		ListOptions: db.ListOptions{Page: ctx.FormInt("page"), PageSize: ctx.FormInt("limit")},
		WorkspaceID: ctx.Workspace.ID,
		ProjectID:   int64(ctx.FormInt("project")),
	})
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, activities)
}
