// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"errors"
)

// ErrAlreadyInTransaction is returned when a new transaction is opened
// from a context that already carries one.
var ErrAlreadyInTransaction = errors.New("database connection has already been in a transaction")
