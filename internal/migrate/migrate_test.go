package migrate

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRun_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, table := range []string{"air_quality_readings", "users"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := Run(db); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Errorf("schema_migrations rows = %d; want 1", n)
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename string
		version  string
		name     string
		ok       bool
	}{
		{"0001_schema.sql", "0001", "schema", true},
		{"0002_add_index.sql", "0002", "add_index", true},
		{"schema.sql", "", "", false},
		{"01_schema.sql", "", "", false},
		{"0001_schema.txt", "", "", false},
	}
	for _, tt := range tests {
		version, name, ok := parseMigrationFilename(tt.filename)
		if version != tt.version || name != tt.name || ok != tt.ok {
			t.Errorf("parseMigrationFilename(%q) = (%q, %q, %v); want (%q, %q, %v)",
				tt.filename, version, name, ok, tt.version, tt.name, tt.ok)
		}
	}
}
