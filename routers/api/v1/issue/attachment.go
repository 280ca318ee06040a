// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issue

import (
	"net/http"

	issues_model "code.questhq.io/quest/models/issues"
	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"
)

// ListAttachments returns the issue's attachment metadata
func ListAttachments(ctx *context.APIContext) {
	attachments, err := issues_model.FindAttachments(ctx.Req.Context(), ctx.Issue.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, attachments)
}

// CreateAttachment records attachment metadata on the issue, the uuid
// in the response keys the stored bytes.
func CreateAttachment(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateAttachmentOption)

	attach := &issues_model.Attachment{
		IssueID:    ctx.Issue.ID,
		UploaderID: ctx.Doer.ID,
		Name:       form.Name,
		Size:       form.Size,
	}
	if err := issues_model.CreateAttachment(ctx.Req.Context(), attach); err != nil {
		ctx.ServeError("CreateAttachment", err)
		return
	}
	ctx.JSON(http.StatusCreated, attach)
}

// DeleteAttachment removes attachment metadata from the issue
func DeleteAttachment(ctx *context.APIContext) {
	attach, err := issues_model.GetAttachmentByID(ctx.Req.Context(), ctx.ParamsInt64("attachmentID"))
	if err != nil {
		ctx.ServeError("GetAttachmentByID", err)
		return
	}
	if attach.IssueID != ctx.Issue.ID {
		ctx.NotFound()
		return
	}
	if err := issues_model.DeleteAttachment(ctx.Req.Context(), attach); err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
