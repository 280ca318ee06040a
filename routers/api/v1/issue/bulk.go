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

// Bulk applies one action to a batch of issues all-or-nothing
func Bulk(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.BulkIssueOption)

	action := issues_model.BulkAction(form.Action)
	if !issues_model.IsValidBulkAction(action) {
		ctx.Error(http.StatusUnprocessableEntity, "Bulk", "bulk action is not valid: "+form.Action)
		return
	}

	issues, err := issue_service.ApplyBulk(ctx.Req.Context(), ctx.Doer, &issues_model.BulkOptions{
		Action:     action,
		IssueIDs:   form.IssueIDs,
		Status:     issues_model.IssueStatus(form.Status),
		AssigneeID: form.AssigneeID,
		Priority:   issues_model.IssuePriority(form.Priority),
	})
	if err != nil {
		ctx.ServeError("ApplyBulk", err)
		return
	}
	ctx.JSON(http.StatusOK, issues)
}
