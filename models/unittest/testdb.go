// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package unittest provides an in-memory database and a fixed fixture
// set for model and service tests. Every test calls
// PrepareTestDatabase to start from the same state.
package unittest

import (
	"context"
	"os"
	"testing"

	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/modules/log"

	_ "github.com/mattn/go-sqlite3"

	"xorm.io/xorm"
	"xorm.io/xorm/names"
)

// MainTest creates the test engine and runs the package's tests. Call it
// from TestMain after registering all needed models via imports.
func MainTest(m *testing.M) {
	log.Init("error")

	engine, err := xorm.NewEngine("sqlite3", "file::memory:?cache=shared&_busy_timeout=500")
	if err != nil {
		log.Fatal("Failed to create test engine: %v", err)
	}
	engine.SetMapper(names.GonicMapper{})
	engine.SetMaxOpenConns(1)

	db.SetDefaultEngine(context.Background(), engine)
	if err := db.SyncAllTables(); err != nil {
		log.Fatal("Failed to sync test tables: %v", err)
	}

	os.Exit(m.Run())
}

// PrepareTestDatabase empties every table and loads the fixtures
func PrepareTestDatabase() error {
	e := db.GetMasterEngine()
	tables, err := e.DBMetas()
	if err != nil {
		return err
	}
	for _, table := range tables {
		if _, err := e.Exec("DELETE FROM `" + table.Name + "`"); err != nil {
			return err
		}
	}
	return loadFixtures(e)
}

// AssertCount fails the test when the number of rows matching the bean
// differs from expected.
func AssertCount(t *testing.T, bean any, expected int64) {
	t.Helper()
	count, err := db.GetMasterEngine().Count(bean)
	if err != nil {
		t.Fatalf("count %T: %v", bean, err)
	}
	if count != expected {
		t.Errorf("expected %d rows of %T, found %d", expected, bean, count)
	}
}
