// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/json"
	"code.questhq.io/quest/modules/log"
	"code.questhq.io/quest/modules/session"
	"code.questhq.io/quest/modules/setting"
	"code.questhq.io/quest/modules/util"

	chi_session "gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
)

// APIContext is a specific context for API calls
type APIContext struct {
	Resp http.ResponseWriter
	Req  *http.Request

	Doer    *user_model.User
	Session session.Store

	// assigned by the route middlewares after the access check
	Workspace *workspace_model.Workspace
	Project   *project_model.Project
	Issue     *issues_model.Issue

	form    any
	written bool
}

// SetForm stores the validated request form
func (ctx *APIContext) SetForm(obj any) {
	ctx.form = obj
}

// GetForm returns the validated request form
func (ctx *APIContext) GetForm() any {
	return ctx.form
}

// APIError is the envelope of failed responses
type APIError struct {
	Message string `json:"error"`
}

// apiData is the envelope of successful responses
type apiData struct {
	Data any `json:"data"`
}

// Written returns true if there are something sent to web browser
func (ctx *APIContext) Written() bool {
	return ctx.written
}

// Status writes the status code without a body
func (ctx *APIContext) Status(status int) {
	ctx.written = true
	ctx.Resp.WriteHeader(status)
}

func (ctx *APIContext) render(status int, content any) {
	ctx.written = true
	ctx.Resp.Header().Set("Content-Type", "application/json;charset=utf-8")
	ctx.Resp.WriteHeader(status)
	if err := json.NewEncoder(ctx.Resp).Encode(content); err != nil {
		log.Error("Render JSON failed: %v", err)
	}
}

// JSON renders content as JSON inside the data envelope
func (ctx *APIContext) JSON(status int, content any) {
	ctx.render(status, apiData{Data: content})
}

// Error responds with an error message, status 500 messages are logged
// but not exposed.
func (ctx *APIContext) Error(status int, title string, obj any) {
	var message string
	if err, ok := obj.(error); ok {
		message = err.Error()
	} else {
		message = fmt.Sprintf("%s", obj)
	}

	if status == http.StatusInternalServerError {
		log.ErrorWithSkip(1, "%s: %s", title, message)
		if setting.IsProd() {
			message = "internal server error"
		}
	}

	ctx.render(status, APIError{Message: message})
}

// InternalServerError responds with an error message that is logged but
// not exposed in production.
func (ctx *APIContext) InternalServerError(err error) {
	ctx.Error(http.StatusInternalServerError, "internal server error", err)
}

// ServeError translates a model error into the http status its kind maps
// to: missing rows are 404, duplicates 409, denied access 403, rejected
// arguments 400, anything else 500.
func (ctx *APIContext) ServeError(title string, err error) {
	switch {
	case errors.Is(err, util.ErrNotExist):
		ctx.NotFound(err)
	case errors.Is(err, util.ErrAlreadyExist):
		ctx.Error(http.StatusConflict, title, err)
	case errors.Is(err, util.ErrPermissionDenied):
		ctx.Error(http.StatusForbidden, title, err)
	case errors.Is(err, util.ErrInvalidArgument):
		ctx.Error(http.StatusBadRequest, title, err)
	default:
		ctx.Error(http.StatusInternalServerError, title, err)
	}
}

// NotFound handles 404s for APIContext
func (ctx *APIContext) NotFound(objs ...any) {
	message := "not found"
	for _, obj := range objs {
		if err, ok := obj.(error); ok {
			message = err.Error()
		}
	}
	ctx.render(http.StatusNotFound, APIError{Message: message})
}

// ParamsInt64 returns the named route parameter as int64, 0 when absent
// or malformed.
func (ctx *APIContext) ParamsInt64(name string) int64 {
	v, _ := strconv.ParseInt(chi.URLParam(ctx.Req, name), 10, 64)
	return v
}

// Params returns the named route parameter
func (ctx *APIContext) Params(name string) string {
	return chi.URLParam(ctx.Req, name)
}

// FormInt returns the named query parameter as int, 0 when absent
func (ctx *APIContext) FormInt(name string) int {
	v, _ := strconv.Atoi(ctx.Req.URL.Query().Get(name))
	return v
}

// FormString returns the named query parameter
func (ctx *APIContext) FormString(name string) string {
	return ctx.Req.URL.Query().Get(name)
}

// IsSigned returns true when a user is attached to the request
func (ctx *APIContext) IsSigned() bool {
	return ctx.Doer != nil
}

type apiContextKeyType struct{}

var apiContextKey = apiContextKeyType{}

// GetAPIContext returns the APIContext stored in the request's context
func GetAPIContext(req *http.Request) *APIContext {
	ctx, _ := req.Context().Value(apiContextKey).(*APIContext)
	return ctx
}

// APIContexter returns an api context middleware. It attaches the session
// store and resolves the signed-in user from the "uid" session key; a
// stale uid is dropped instead of failing the request.
func APIContexter() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			ctx := &APIContext{
				Resp:    resp,
				Req:     req,
				Session: chi_session.GetSession(req),
			}

			if uid, ok := ctx.Session.Get("uid").(int64); ok && uid > 0 {
				doer, err := user_model.GetUserByID(req.Context(), uid)
				if err == nil {
					ctx.Doer = doer
				} else if !user_model.IsErrUserNotExist(err) {
					ctx.InternalServerError(err)
					return
				}
			}

			ctx.Req = req.WithContext(context.WithValue(req.Context(), apiContextKey, ctx))
			next.ServeHTTP(ctx.Resp, ctx.Req)
		})
	}
}
