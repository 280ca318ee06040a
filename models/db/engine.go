// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package db holds the xorm engine shared by all model packages. Model
// beans register themselves in init() via RegisterModel; InitEngine
// connects and syncs the schema.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"code.questhq.io/quest/modules/setting"

	// database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"xorm.io/xorm"
	"xorm.io/xorm/names"
)

var (
	x      *xorm.Engine
	tables []any
)

// Engine represents a xorm engine or session
type Engine interface {
	Table(tableNameOrBean any) *xorm.Session
	Count(...any) (int64, error)
	Decr(column string, arg ...any) *xorm.Session
	Delete(...any) (int64, error)
	Exec(...any) (sql.Result, error)
	Find(any, ...any) error
	Get(beans ...any) (bool, error)
	ID(any) *xorm.Session
	In(string, ...any) *xorm.Session
	Incr(column string, arg ...any) *xorm.Session
	Insert(...any) (int64, error)
	Iterate(any, xorm.IterFunc) error
	IsTableExist(any) (bool, error)
	Join(joinOperator string, tablename, condition any, args ...any) *xorm.Session
	SQL(any, ...any) *xorm.Session
	Where(any, ...any) *xorm.Session
	Asc(colNames ...string) *xorm.Session
	Desc(colNames ...string) *xorm.Session
	Limit(limit int, start ...int) *xorm.Session
	NoAutoTime() *xorm.Session
	SumInt(bean any, columnName string) (res int64, err error)
	Sync(...any) error
	Select(string) *xorm.Session
	NotIn(string, ...any) *xorm.Session
	OrderBy(any, ...any) *xorm.Session
	Exist(...any) (bool, error)
	Distinct(columns ...string) *xorm.Session
	Query(...any) ([]map[string][]byte, error)
	Cols(...string) *xorm.Session
	Context(ctx context.Context) *xorm.Session
	Ping() error
}

// RegisterModel registers a model bean, the schema of registered models is
// synced when the engine initializes
func RegisterModel(bean any) {
	tables = append(tables, bean)
}

// InitEngine creates the xorm engine from settings and syncs the schema
// of all registered models.
func InitEngine(ctx context.Context) error {
	driver, connStr, err := setting.DBConnStr()
	if err != nil {
		return err
	}

	engine, err := xorm.NewEngine(driver, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	engine.SetMapper(names.GonicMapper{})
	engine.SetLogger(NewXORMLogger(setting.Database.LogSQL))
	engine.ShowSQL(setting.Database.LogSQL)
	if setting.Database.Type.IsSQLite3() {
		engine.SetMaxOpenConns(1)
	}

	SetDefaultEngine(ctx, engine)
	return SyncAllTables()
}

// SetDefaultEngine sets the default engine for db
func SetDefaultEngine(ctx context.Context, engine *xorm.Engine) {
	x = engine
	DefaultContext = &Context{Context: ctx, e: x}
}

// GetMasterEngine returns the raw master engine, tests and maintenance
// commands only
func GetMasterEngine() *xorm.Engine {
	return x
}

// SyncAllTables sync the schemas of all registered models
func SyncAllTables() error {
	return x.Sync(tables...)
}

// TableName returns the table name according a bean object
func TableName(bean any) string {
	return x.TableName(bean)
}
