// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

// SearchOrderBy is an ORDER BY fragment used by Find-style operations
type SearchOrderBy string

func (s SearchOrderBy) String() string {
	return string(s)
}

// Common order-by fragments
const (
	SearchOrderByNewest        SearchOrderBy = "created_unix DESC"
	SearchOrderByOldest        SearchOrderBy = "created_unix ASC"
	SearchOrderByRecentUpdated SearchOrderBy = "updated_unix DESC"
	SearchOrderByLeastUpdated  SearchOrderBy = "updated_unix ASC"
	SearchOrderByID            SearchOrderBy = "id ASC"
)
