// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"net"
	"net/http"

	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/modules/log"
	"code.questhq.io/quest/modules/notification"
	"code.questhq.io/quest/modules/setting"
	v1 "code.questhq.io/quest/routers/api/v1"

	"github.com/urfave/cli/v2"
)

// CmdWeb represents the available web sub-command.
var CmdWeb = &cli.Command{
	Name:        "web",
	Usage:       "Start the Quest web server",
	Description: "The web server is the only thing needed to run Quest, it serves the whole API from one port.",
	Action:      runWeb,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Temporary port number to prevent conflict",
		},
	},
}

func runWeb(cliCtx *cli.Context) error {
	setting.LoadSettings(cliCtx.String("config"))
	log.Init(setting.LogLevel)

	log.Info("Quest starting, run mode: %s", setting.RunMode)

	ctx := context.Background()
	if err := db.InitEngine(ctx); err != nil {
		log.Fatal("Failed to initialize ORM engine: %v", err)
	}
	notification.NewContext()

	port := setting.HTTPPort
	if p := cliCtx.String("port"); p != "" {
		port = p
	}

	listenAddr := net.JoinHostPort(setting.HTTPAddr, port)
	log.Info("Listen: http://%s", listenAddr)
	return http.ListenAndServe(listenAddr, v1.Routes())
}
