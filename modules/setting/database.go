// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"net/url"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// DatabaseType represents the configured database dialect
type DatabaseType string

// IsSQLite3 returns true if the type is sqlite3
func (t DatabaseType) IsSQLite3() bool { return t == "sqlite3" }

// IsMySQL returns true if the type is mysql
func (t DatabaseType) IsMySQL() bool { return t == "mysql" }

// IsPostgreSQL returns true if the type is postgres
func (t DatabaseType) IsPostgreSQL() bool { return t == "postgres" }

// Database holds the [database] section
var Database = struct {
	Type    DatabaseType
	Host    string
	Name    string
	User    string
	Passwd  string
	SSLMode string
	Path    string
	LogSQL  bool
}{
	Type:    "sqlite3",
	Path:    "data/quest.db",
	SSLMode: "disable",
}

func loadDatabaseFrom(cfg *ini.File) {
	sec := cfg.Section("database")
	Database.Type = DatabaseType(sec.Key("DB_TYPE").MustString(string(Database.Type)))
	Database.Host = sec.Key("HOST").String()
	Database.Name = sec.Key("NAME").String()
	Database.User = sec.Key("USER").String()
	Database.Passwd = sec.Key("PASSWD").String()
	Database.SSLMode = sec.Key("SSL_MODE").MustString(Database.SSLMode)
	Database.Path = sec.Key("PATH").MustString(Database.Path)
	Database.LogSQL = sec.Key("LOG_SQL").MustBool(false)
}

// DBConnStr returns the driver name and the data source name for the
// configured database.
func DBConnStr() (driver, connStr string, err error) {
	switch Database.Type {
	case "mysql":
		driver = "mysql"
		connStr = fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true",
			Database.User, Database.Passwd, Database.Host, Database.Name)
	case "postgres":
		driver = "postgres"
		connStr = fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
			url.QueryEscape(Database.User), url.QueryEscape(Database.Passwd),
			Database.Host, Database.Name, Database.SSLMode)
	case "sqlite3":
		driver = "sqlite3"
		connStr = fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=500&_txlock=immediate",
			filepath.ToSlash(Database.Path))
	default:
		return "", "", fmt.Errorf("unknown database type: %s", Database.Type)
	}
	return driver, connStr, nil
}
