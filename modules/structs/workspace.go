// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

// CreateWorkspaceOption options when creating a workspace
type CreateWorkspaceOption struct {
	Name string `json:"name" binding:"Required;MaxSize(100)"`
	Slug string `json:"slug" binding:"Required;MaxSize(63)"`
}

// EditWorkspaceOption options when updating a workspace
type EditWorkspaceOption struct {
	Name string `json:"name" binding:"Required;MaxSize(100)"`
}

// CreateInvitationOption options when inviting a user to a workspace
type CreateInvitationOption struct {
	Email string `json:"email" binding:"Required;Email;MaxSize(254)"`
	Role  string `json:"role" binding:"Required"`
}

// AcceptInvitationOption options when accepting an invitation
type AcceptInvitationOption struct {
	Token string `json:"token" binding:"Required"`
}
