// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package web wraps the chi router so route groups can share url
// prefixes and handler chains.
package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Route defines a route based on chi's router
type Route struct {
	R              chi.Router
	curGroupPrefix string
	curMiddlewares []any
}

// NewRoute creates a new route
func NewRoute() *Route {
	return &Route{R: chi.NewRouter()}
}

// Use supports two middlewares
func (r *Route) Use(middlewares ...any) {
	if r.curGroupPrefix != "" {
		r.curMiddlewares = append(r.curMiddlewares, middlewares...)
		return
	}
	for _, m := range middlewares {
		if m != nil {
			r.R.Use(toMiddleware(m))
		}
	}
}

// Group mounts a sub-Router along a `pattern` string
func (r *Route) Group(pattern string, fn func(), middlewares ...any) {
	previousGroupPrefix := r.curGroupPrefix
	previousMiddlewares := r.curMiddlewares
	r.curGroupPrefix += pattern
	r.curMiddlewares = append(r.curMiddlewares, middlewares...)

	fn()

	r.curGroupPrefix = previousGroupPrefix
	r.curMiddlewares = previousMiddlewares
}

func (r *Route) getPattern(pattern string) string {
	newPattern := r.curGroupPrefix + pattern
	if !strings.HasPrefix(newPattern, "/") {
		panic("Route pattern must start with '/': " + newPattern)
	}
	if newPattern == "/" {
		return newPattern
	}
	return strings.TrimSuffix(newPattern, "/")
}

// Methods adds the same handlers for multiple http "methods" (separated by ",").
func (r *Route) Methods(methods, pattern string, handlers ...any) {
	middlewares := make([]any, len(r.curMiddlewares), len(r.curMiddlewares)+len(handlers))
	copy(middlewares, r.curMiddlewares)
	handler := Wrap(append(middlewares, handlers...)...)
	fullPattern := r.getPattern(pattern)
	for _, method := range strings.Split(methods, ",") {
		r.R.MethodFunc(strings.TrimSpace(method), fullPattern, handler)
	}
}

// Get delegate get method
func (r *Route) Get(pattern string, handlers ...any) {
	r.Methods("GET", pattern, handlers...)
}

// Post delegate post method
func (r *Route) Post(pattern string, handlers ...any) {
	r.Methods("POST", pattern, handlers...)
}

// Put delegate put method
func (r *Route) Put(pattern string, handlers ...any) {
	r.Methods("PUT", pattern, handlers...)
}

// Patch delegate patch method
func (r *Route) Patch(pattern string, handlers ...any) {
	r.Methods("PATCH", pattern, handlers...)
}

// Delete delegate delete method
func (r *Route) Delete(pattern string, handlers ...any) {
	r.Methods("DELETE", pattern, handlers...)
}

// NotFound defines a handler to respond whenever a route could not be found
func (r *Route) NotFound(h http.HandlerFunc) {
	r.R.NotFound(h)
}

// ServeHTTP implements http.Handler
func (r *Route) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.R.ServeHTTP(w, req)
}
