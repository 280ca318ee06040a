// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package notify

import (
	"net/http"

	activities_model "code.questhq.io/quest/models/activities"
	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/modules/context"
)

// ListNotifications returns the signed-in user's notifications, unread
// first unless all=true.
func ListNotifications(ctx *context.APIContext) {
	opts := &activities_model.FindNotificationOptions{
		ListOptions: db.ListOptions{Page: ctx.FormInt("page"), PageSize: ctx.FormInt("limit")},
		UserID:      ctx.Doer.ID,
	}
	if ctx.FormString("all") != "true" {
		opts.Status = []activities_model.NotificationStatus{activities_model.NotificationStatusUnread}
	}
	notifications, err := activities_model.GetNotifications(ctx.Req.Context(), opts)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, notifications)
}

// NewAvailable returns the number of unread notifications
func NewAvailable(ctx *context.APIContext) {
	count, err := activities_model.CountUnread(ctx.Req.Context(), ctx.Doer.ID)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]int64{"new": count})
}

// ReadNotifications marks all unread notifications of the user as read
func ReadNotifications(ctx *context.APIContext) {
	if err := activities_model.UpdateNotificationStatuses(ctx.Req.Context(), ctx.Doer,
		activities_model.NotificationStatusUnread, activities_model.NotificationStatusRead); err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.Status(http.StatusResetContent)
}

// ReadNotification marks a single notification as read, to-status=unread
// flips it back.
func ReadNotification(ctx *context.APIContext) {
	status := activities_model.NotificationStatusRead
	if ctx.FormString("to-status") == "unread" {
		status = activities_model.NotificationStatusUnread
	}
	notification, err := activities_model.SetNotificationStatus(ctx.Req.Context(), ctx.ParamsInt64("id"), ctx.Doer, status)
	if err != nil {
		ctx.ServeError("SetNotificationStatus", err)
		return
	}
	ctx.JSON(http.StatusOK, notification)
}
