// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import "xorm.io/xorm"

const (
	// DefaultMaxInSize represents default variables number on IN () in SQL
	DefaultMaxInSize = 50

	defaultPageSize = 25
	maxPageSize     = 100
)

// ListOptions options to paginate results
type ListOptions struct {
	PageSize int
	Page     int // start from 1
}

// GetSkipTake returns the skip and take values of the paginator
func (opts *ListOptions) GetSkipTake() (skip, take int) {
	opts.SetDefaultValues()
	return (opts.Page - 1) * opts.PageSize, opts.PageSize
}

// SetDefaultValues sets default values
func (opts *ListOptions) SetDefaultValues() {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.PageSize > maxPageSize {
		opts.PageSize = maxPageSize
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
}

// SetSessionPagination sets pagination for a database session
func SetSessionPagination(sess *xorm.Session, opts *ListOptions) *xorm.Session {
	skip, take := opts.GetSkipTake()
	return sess.Limit(take, skip)
}
