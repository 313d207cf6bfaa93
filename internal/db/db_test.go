package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestOpen_FreshInstall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	v, err := CurrentVersion(conn)
	if err != nil {
		t.Fatalf("CurrentVersion() error = %v", err)
	}
	if v != len(migrations) {
		t.Errorf("CurrentVersion() = %d, want %d", v, len(migrations))
	}

	if _, err := conn.Exec("INSERT INTO generation_runs (id, command, generator, project_path) VALUES ('r1', 'g:d order', 'domain', '/p')"); err != nil {
		t.Errorf("generation_runs not usable: %v", err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	conn.Close()

	conn, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != len(migrations) {
		t.Errorf("schema_version rows = %d, want %d", count, len(migrations))
	}
}

func TestRunMigrations_FromScratch(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	conn.SetMaxOpenConns(1)
	defer conn.Close()

	if err := RunMigrations(conn); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	var indexes int
	err = conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name LIKE 'idx_generation_runs_%'").Scan(&indexes)
	if err != nil {
		t.Fatal(err)
	}
	if indexes != 3 {
		t.Errorf("indexes = %d, want 3", indexes)
	}

	// Running again is a no-op
	if err := RunMigrations(conn); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}
}

func TestGetDBPath_Override(t *testing.T) {
	defer SetPath("")
	SetPath("/tmp/custom.db")

	got, err := GetDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/custom.db" {
		t.Errorf("GetDBPath() = %q", got)
	}
}
