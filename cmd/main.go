// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/urfave/cli/v2"
)

// NewMainApp creates the main cli application
func NewMainApp() *cli.App {
	app := cli.NewApp()
	app.Name = "Quest"
	app.Usage = "A workspace based issue tracker"
	app.Description = "Quest serves workspaces, projects and issue boards over an HTTP API backed by a relational database."
	app.DefaultCommand = CmdWeb.Name
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "custom/conf/app.ini",
			Usage:   "Set custom config file",
		},
	}
	app.Commands = []*cli.Command{
		CmdWeb,
	}
	return app
}
