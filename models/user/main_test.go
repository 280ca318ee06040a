// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package user_test

import (
	"testing"

	"code.questhq.io/quest/models/unittest"
)

func TestMain(m *testing.M) {
	unittest.MainTest(m)
}
