// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package user

import (
	"net/http"

	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/context"
	"code.questhq.io/quest/modules/log"
	"code.questhq.io/quest/modules/session"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"
)

// SignUp registers a new user and signs them in
func SignUp(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.SignUpOption)

	u := &user_model.User{
		Name:  form.Name,
		Email: form.Email,
	}
	if err := u.SetPassword(form.Password); err != nil {
		ctx.InternalServerError(err)
		return
	}
	if err := user_model.CreateUser(ctx.Req.Context(), u); err != nil {
		ctx.ServeError("CreateUser", err)
		return
	}

	if err := signIn(ctx, u); err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusCreated, u)
}

// SignIn authenticates by email and password
func SignIn(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.SignInOption)

	u, err := user_model.GetUserByEmail(ctx.Req.Context(), form.Email)
	if err != nil {
		if user_model.IsErrUserNotExist(err) {
			ctx.Error(http.StatusUnauthorized, "SignIn", "invalid email or password")
		} else {
			ctx.InternalServerError(err)
		}
		return
	}
	if !u.ValidatePassword(form.Password) {
		ctx.Error(http.StatusUnauthorized, "SignIn", "invalid email or password")
		return
	}

	if err := signIn(ctx, u); err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, u)
}

// signIn regenerates the session to prevent fixation, then stores the uid
func signIn(ctx *context.APIContext, u *user_model.User) error {
	store, err := session.RegenerateSession(ctx.Resp, ctx.Req)
	if err != nil {
		return err
	}
	ctx.Session = store
	return store.Set("uid", u.ID)
}

// SignOut drops the session's user
func SignOut(ctx *context.APIContext) {
	if err := ctx.Session.Delete("uid"); err != nil {
		log.Error("SignOut: %v", err)
	}
	ctx.Status(http.StatusNoContent)
}

// GetCurrent returns the signed-in user's profile
func GetCurrent(ctx *context.APIContext) {
	ctx.JSON(http.StatusOK, ctx.Doer)
}

// Edit updates the signed-in user's profile
func Edit(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditUserOption)

	cols := make([]string, 0, 2)
	if form.Name != nil {
		ctx.Doer.Name = *form.Name
		cols = append(cols, "name")
	}
	if form.Avatar != nil {
		ctx.Doer.Avatar = *form.Avatar
		cols = append(cols, "avatar")
	}
	if len(cols) > 0 {
		if err := user_model.UpdateUserCols(ctx.Req.Context(), ctx.Doer, cols...); err != nil {
			ctx.InternalServerError(err)
			return
		}
	}
	ctx.JSON(http.StatusOK, ctx.Doer)
}
