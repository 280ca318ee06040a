// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"fmt"
	"net/http"

	"code.questhq.io/quest/modules/context"
)

// Wrap converts all kinds of routes to a standard library handler. The
// handlers run in order; any handler that has written a response stops
// the chain.
func Wrap(handlers ...any) http.HandlerFunc {
	if len(handlers) == 0 {
		panic("No handlers found")
	}
	return func(resp http.ResponseWriter, req *http.Request) {
		for _, handler := range handlers {
			switch t := handler.(type) {
			case http.HandlerFunc:
				t(resp, req)
			case func(http.ResponseWriter, *http.Request):
				t(resp, req)
			case func(ctx *context.APIContext):
				t(context.GetAPIContext(req))
			default:
				panic(fmt.Sprintf("Unsupported handler type: %#v", t))
			}
			if ctx := context.GetAPIContext(req); ctx != nil && ctx.Written() {
				return
			}
		}
	}
}

func toMiddleware(handler any) func(http.Handler) http.Handler {
	switch t := handler.(type) {
	case func(http.Handler) http.Handler:
		return t
	case func(ctx *context.APIContext):
		return MiddleAPI(t)
	default:
		panic(fmt.Sprintf("Unsupported middleware type: %#v", t))
	}
}

// MiddleAPI wrap a context function as a chi middleware
func MiddleAPI(f func(ctx *context.APIContext)) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			ctx := context.GetAPIContext(req)
			f(ctx)
			if ctx.Written() {
				return
			}
			next.ServeHTTP(ctx.Resp, ctx.Req)
		})
	}
}

// SetForm set the form object
func SetForm(ctx *context.APIContext, obj any) {
	ctx.SetForm(obj)
}

// GetForm returns the validate form information
func GetForm(ctx *context.APIContext) any {
	return ctx.GetForm()
}
