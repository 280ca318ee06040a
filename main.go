// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Quest is a multi-tenant issue tracker: workspaces holding projects,
// projects holding issues on a kanban board.
package main

import (
	"os"

	"code.questhq.io/quest/cmd"
	"code.questhq.io/quest/modules/log"
)

func main() {
	app := cmd.NewMainApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal("Failed to run with %s: %v", os.Args, err)
	}
}
