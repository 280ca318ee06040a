// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issue

import (
	"net/http"

	issues_model "code.questhq.io/quest/models/issues"
	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"
	issue_service "code.questhq.io/quest/services/issue"
)

// getIssueComment resolves the commentID parameter inside the current
// issue, comments of other issues are 404.
func getIssueComment(ctx *context.APIContext) *issues_model.Comment {
	comment, err := issues_model.GetCommentByID(ctx.Req.Context(), ctx.ParamsInt64("commentID"))
	if err != nil {
		ctx.ServeError("GetCommentByID", err)
		return nil
	}
	if comment.IssueID != ctx.Issue.ID {
		ctx.NotFound()
		return nil
	}
	return comment
}

// ListComments returns the issue's comments, oldest first
func ListComments(ctx *context.APIContext) {
	comments, err := issues_model.FindComments(ctx.Req.Context(), ctx.Issue.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// CreateComment posts a comment on the issue
func CreateComment(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateCommentOption)

	comment, err := issue_service.CreateComment(ctx.Req.Context(), ctx.Doer, ctx.Issue, form.Content)
	if err != nil {
		ctx.ServeError("CreateComment", err)
		return
	}
	ctx.JSON(http.StatusCreated, comment)
}

// EditComment changes a comment's content, poster only
func EditComment(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditCommentOption)

	comment := getIssueComment(ctx)
	if comment == nil {
		return
	}
	if comment.PosterID != ctx.Doer.ID {
		ctx.Error(http.StatusForbidden, "EditComment", "only the poster can edit a comment")
		return
	}
	comment.Content = form.Content
	if err := issues_model.UpdateComment(ctx.Req.Context(), comment); err != nil {
		ctx.ServeError("UpdateComment", err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment, poster only
func DeleteComment(ctx *context.APIContext) {
	comment := getIssueComment(ctx)
	if comment == nil {
		return
	}
	if comment.PosterID != ctx.Doer.ID {
		ctx.Error(http.StatusForbidden, "DeleteComment", "only the poster can delete a comment")
		return
	}
	if err := issues_model.DeleteComment(ctx.Req.Context(), comment); err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
