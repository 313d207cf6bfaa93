// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gelo7212/express-ts-backend-generator/internal/db"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedRun inserts a test run through the repository.
func seedRun(t *testing.T, repo secondary.GenerationRunRepository, run *secondary.GenerationRunRecord) {
	t.Helper()
	if run.Command == "" {
		run.Command = "generate:" + run.Generator
	}
	if run.ProjectPath == "" {
		run.ProjectPath = "/work/app"
	}
	if err := repo.Create(context.Background(), run); err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
}
