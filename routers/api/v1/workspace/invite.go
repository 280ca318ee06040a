// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"net/http"

	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"
)

// Invite creates a pending invitation to the workspace
func Invite(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateInvitationOption)

	role := workspace_model.Role(form.Role)
	if !workspace_model.IsValidRole(role) {
		ctx.Error(http.StatusUnprocessableEntity, "Invite", "role is not valid: "+form.Role)
		return
	}

	inv := &workspace_model.Invitation{
		WorkspaceID: ctx.Workspace.ID,
		Email:       form.Email,
		Role:        role,
		InviterID:   ctx.Doer.ID,
	}
	if err := workspace_model.CreateInvitation(ctx.Req.Context(), inv); err != nil {
		ctx.ServeError("CreateInvitation", err)
		return
	}
	ctx.JSON(http.StatusCreated, inv)
}

// ListInvitations returns the workspace's invitations
func ListInvitations(ctx *context.APIContext) {
	invitations, err := workspace_model.FindInvitations(ctx.Req.Context(), ctx.Workspace.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, invitations)
}

// AcceptInvite redeems an invitation token for the signed-in user. The
// token is the only capability needed, the invitation's email has to
// match the user's.
func AcceptInvite(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.AcceptInvitationOption)

	inv, err := workspace_model.GetInvitationByToken(ctx.Req.Context(), form.Token)
	if err != nil {
		ctx.ServeError("GetInvitationByToken", err)
		return
	}
	if err := workspace_model.AcceptInvitation(ctx.Req.Context(), inv, ctx.Doer); err != nil {
		ctx.ServeError("AcceptInvitation", err)
		return
	}

	w, err := workspace_model.GetWorkspaceByID(ctx.Req.Context(), inv.WorkspaceID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, w)
}
