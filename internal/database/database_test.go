package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationsCreateSchema(t *testing.T) {
	db := newTestDB(t)

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	tables := []string{"users", "sessions", "posts", "comments", "files", "migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing after migrations: %v", table, err)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("first RunMigrations() error = %v", err)
	}
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count == 0 {
		t.Error("no migrations recorded")
	}
}

func TestExecReturningID(t *testing.T) {
	db := newTestDB(t)
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	id1, err := db.ExecReturningID("INSERT INTO users (username, password_hash) VALUES (?, ?)", "alice", "x")
	if err != nil {
		t.Fatalf("ExecReturningID() error = %v", err)
	}
	id2, err := db.ExecReturningID("INSERT INTO users (username, password_hash) VALUES (?, ?)", "bob", "x")
	if err != nil {
		t.Fatalf("ExecReturningID() error = %v", err)
	}
	if id1 == 0 || id2 <= id1 {
		t.Errorf("ids = %d, %d; want increasing non-zero ids", id1, id2)
	}
}

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT id FROM users",
			want:  "SELECT id FROM users",
		},
		{
			name:  "single placeholder",
			query: "SELECT id FROM users WHERE username = ?",
			want:  "SELECT id FROM users WHERE username = $1",
		},
		{
			name:  "multiple placeholders numbered in order",
			query: "INSERT INTO posts (user_id, title, content) VALUES (?, ?, ?)",
			want:  "INSERT INTO posts (user_id, title, content) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.want {
				t.Errorf("rewritePlaceholdersToNumbered(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestSQLiteDialectPassesQueriesThrough(t *testing.T) {
	d := NewSQLiteDialect()
	query := "SELECT id FROM users WHERE username = ?"
	if got := d.RewriteQuery(query); got != query {
		t.Errorf("RewriteQuery(%q) = %q, want unchanged", query, got)
	}
	if !d.SupportsLastInsertId() {
		t.Error("sqlite dialect should support LastInsertId")
	}
}

func TestPostgresDialectRewritesQueries(t *testing.T) {
	d := NewPostgresDialect()
	got := d.RewriteQuery("SELECT id FROM users WHERE username = ? AND id = ?")
	want := "SELECT id FROM users WHERE username = $1 AND id = $2"
	if got != want {
		t.Errorf("RewriteQuery() = %q, want %q", got, want)
	}
	if d.SupportsLastInsertId() {
		t.Error("postgres dialect should not report LastInsertId support")
	}
}
