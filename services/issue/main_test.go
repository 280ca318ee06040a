// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issue_test

import (
	"testing"

	"code.questhq.io/quest/models/unittest"
	"code.questhq.io/quest/modules/notification"
)

func TestMain(m *testing.M) {
	// the real notifier stack runs so the fan-out side effects can be
	// asserted against the store
	notification.NewContext()
	unittest.MainTest(m)
}
