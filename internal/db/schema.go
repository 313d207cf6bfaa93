package db

import "database/sql"

// SchemaSQL is the complete schema for a fresh history database.
// This schema reflects the current state after all migrations.
//
// Tests use this schema via GetSchemaSQL() so repository code referencing a column
// that does not exist fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Generation runs (one row per generator invocation)
CREATE TABLE IF NOT EXISTS generation_runs (
	id TEXT PRIMARY KEY,
	command TEXT NOT NULL,
	generator TEXT NOT NULL,
	name TEXT,
	project_path TEXT NOT NULL,
	success INTEGER NOT NULL DEFAULT 0,
	files_written INTEGER NOT NULL DEFAULT 0,
	files_skipped INTEGER NOT NULL DEFAULT 0,
	error_count INTEGER NOT NULL DEFAULT 0,
	errors TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_generation_runs_generator ON generation_runs(generator);
CREATE INDEX IF NOT EXISTS idx_generation_runs_project ON generation_runs(project_path);
CREATE INDEX IF NOT EXISTS idx_generation_runs_created ON generation_runs(created_at);
`

// InitSchema creates the database schema
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(db)
	}

	// Fresh install - create the current schema directly and mark every
	// migration as applied
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
