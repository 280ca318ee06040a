// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package setting holds the application configuration, loaded once at
// startup from app.ini. Sections not present in the file keep their
// defaults so a bare binary still starts with sqlite and localhost.
package setting

import (
	"time"

	"code.questhq.io/quest/modules/log"

	"gopkg.in/ini.v1"
)

// settings from the [DEFAULT] and [server] sections
var (
	AppName = "Quest"
	AppURL  = "http://localhost:3000/"
	RunMode = "prod"

	HTTPAddr = "0.0.0.0"
	HTTPPort = "3000"

	LogLevel = "info"

	CustomConf = "custom/conf/app.ini"
)

// IsProd returns whether the application runs in production mode
func IsProd() bool {
	return RunMode != "dev"
}

// SessionConfig holds the [session] section
var SessionConfig = struct {
	Provider       string
	ProviderConfig string
	CookieName     string
	CookiePath     string
	Secret         string
	Gclifetime     int64
	Maxlifetime    int64
	Secure         bool
}{
	Provider:    "memory",
	CookieName:  "quest_session",
	CookiePath:  "/",
	Secret:      "quest",
	Gclifetime:  86400,
	Maxlifetime: 86400 * 30,
}

// CORSConfig holds the [cors] section
var CORSConfig = struct {
	Enabled          bool
	AllowDomain      []string
	Methods          []string
	AllowCredentials bool
	MaxAge           time.Duration
}{
	AllowDomain: []string{"*"},
	Methods:     []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	MaxAge:      10 * time.Minute,
}

// LoadSettings reads the configuration file. A missing file is not an
// error: defaults above apply.
func LoadSettings(customConf string) {
	if customConf != "" {
		CustomConf = customConf
	}

	cfg, err := ini.LooseLoad(CustomConf)
	if err != nil {
		log.Fatal("Failed to load configuration %q: %v", CustomConf, err)
	}
	def := cfg.Section("")
	AppName = def.Key("APP_NAME").MustString(AppName)
	RunMode = def.Key("RUN_MODE").MustString(RunMode)
	LogLevel = def.Key("LOG_LEVEL").MustString(LogLevel)

	server := cfg.Section("server")
	AppURL = server.Key("ROOT_URL").MustString(AppURL)
	HTTPAddr = server.Key("HTTP_ADDR").MustString(HTTPAddr)
	HTTPPort = server.Key("HTTP_PORT").MustString(HTTPPort)

	sess := cfg.Section("session")
	SessionConfig.Provider = sess.Key("PROVIDER").MustString(SessionConfig.Provider)
	SessionConfig.ProviderConfig = sess.Key("PROVIDER_CONFIG").MustString(SessionConfig.ProviderConfig)
	SessionConfig.CookieName = sess.Key("COOKIE_NAME").MustString(SessionConfig.CookieName)
	SessionConfig.Secret = sess.Key("SECRET").MustString(SessionConfig.Secret)
	SessionConfig.Gclifetime = sess.Key("GC_INTERVAL_TIME").MustInt64(SessionConfig.Gclifetime)
	SessionConfig.Maxlifetime = sess.Key("SESSION_LIFE_TIME").MustInt64(SessionConfig.Maxlifetime)
	SessionConfig.Secure = sess.Key("COOKIE_SECURE").MustBool(SessionConfig.Secure)

	cors := cfg.Section("cors")
	CORSConfig.Enabled = cors.Key("ENABLED").MustBool(false)
	CORSConfig.AllowDomain = cors.Key("ALLOW_DOMAIN").Strings(",")
	if len(CORSConfig.AllowDomain) == 0 {
		CORSConfig.AllowDomain = []string{"*"}
	}
	CORSConfig.AllowCredentials = cors.Key("ALLOW_CREDENTIALS").MustBool(false)
	CORSConfig.MaxAge = cors.Key("MAX_AGE").MustDuration(CORSConfig.MaxAge)

	loadDatabaseFrom(cfg)
}
