// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web_test

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"code.questhq.io/quest/modules/context"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"

	"gitea.com/go-chi/binding"
	chi_session "gitea.com/go-chi/session"
	"github.com/stretchr/testify/assert"
)

func newTestRoute() *web.Route {
	r := web.NewRoute()
	r.Use(chi_session.Sessioner(chi_session.Options{Provider: "memory"}))
	r.Use(context.APIContexter())
	return r
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRouteGroupPrefixes(t *testing.T) {
	r := newTestRoute()

	var hits []string
	record := func(name string) func(ctx *context.APIContext) {
		return func(ctx *context.APIContext) {
			hits = append(hits, name)
			ctx.Status(http.StatusOK)
		}
	}

	r.Group("/projects", func() {
		r.Get("", record("list"))
		r.Group("/{id}", func() {
			r.Get("/board", record("board"))
		})
	})

	for target, want := range map[string]string{
		"/projects":         "list",
		"/projects/1/board": "board",
	} {
		hits = nil
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, http.StatusOK, resp.Code, target)
		assert.Equal(t, []string{want}, hits, target)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest("GET", "/missing", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRouteMiddlewareStopsChain(t *testing.T) {
	r := newTestRoute()

	reached := false
	reject := func(ctx *context.APIContext) {
		ctx.Error(http.StatusForbidden, "reject", "no access")
	}
	r.Get("/guarded", reject, func(ctx *context.APIContext) {
		reached = true
		ctx.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest("GET", "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.False(t, reached)
}

// bindForm mirrors the router's binding helper: reject the payload with
// 422 before the handler runs, stash the form otherwise.
func bindForm(obj any) http.HandlerFunc {
	tp := reflect.TypeOf(obj)
	return web.Wrap(func(ctx *context.APIContext) {
		theObj := reflect.New(tp).Interface()
		errs := binding.Bind(ctx.Req, theObj)
		if len(errs) > 0 {
			ctx.Error(http.StatusUnprocessableEntity, "validationError", errs[0].Error())
			return
		}
		web.SetForm(ctx, theObj)
	})
}

func TestRouteFormBindingStopsChain(t *testing.T) {
	r := newTestRoute()

	reached := false
	r.Post("/issues", bindForm(api.CreateIssueOption{}), func(ctx *context.APIContext) {
		reached = true
		form := web.GetForm(ctx).(*api.CreateIssueOption)
		ctx.JSON(http.StatusCreated, form)
	})

	// the binding failure writes the 422 and the handler must not run,
	// it would assert on a form that was never stashed
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, jsonRequest("POST", "/issues", `{}`))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), `"error"`)
	assert.False(t, reached)

	// a valid payload flows through and comes back in the data envelope
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, jsonRequest("POST", "/issues", `{"title":"Fix bug","type":"BUG"}`))
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"data"`)
	assert.True(t, reached)
}
