package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE test_table (id INTEGER PRIMARY KEY, value TEXT)`)
	if err != nil {
		db.Close()
		t.Fatalf("failed to create table: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM test_table`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count
}

func insert(tx *sql.Tx, values ...string) error {
	for _, v := range values {
		if _, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, v); err != nil {
			return err
		}
	}
	return nil
}

func TestWithTx(t *testing.T) {
	errAbort := errors.New("abort")

	tests := []struct {
		name      string
		fn        func(tx *sql.Tx) error
		wantErr   error
		wantCount int
	}{
		{
			name:      "commit single insert",
			fn:        func(tx *sql.Tx) error { return insert(tx, "test") },
			wantCount: 1,
		},
		{
			name:      "commit multiple inserts",
			fn:        func(tx *sql.Tx) error { return insert(tx, "first", "second", "third") },
			wantCount: 3,
		},
		{
			name: "error rolls back everything",
			fn: func(tx *sql.Tx) error {
				if err := insert(tx, "first", "second"); err != nil {
					return err
				}
				return errAbort
			},
			wantErr:   errAbort,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)

			err := WithTx(context.Background(), db, tt.fn)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("WithTx() error = %v, want %v", err, tt.wantErr)
			}
			if got := countRows(t, db); got != tt.wantCount {
				t.Errorf("count = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestWithTx_CanceledContext(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithTx(ctx, db, func(*sql.Tx) error {
		called = true
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("WithTx() error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("fn should not run when the transaction cannot begin")
	}
}

func TestNullString(t *testing.T) {
	if ns := NullString(""); ns.Valid {
		t.Errorf("NullString(\"\") = %+v, want invalid", ns)
	}
	if ns := NullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("NullString(\"x\") = %+v, want valid x", ns)
	}
}

func TestNullInt64Value(t *testing.T) {
	tests := []struct {
		name string
		in   sql.NullInt64
		want int64
	}{
		{"valid", sql.NullInt64{Int64: 42, Valid: true}, 42},
		{"invalid", sql.NullInt64{Int64: 42, Valid: false}, 0},
		{"negative", sql.NullInt64{Int64: -7, Valid: true}, -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NullInt64Value(tt.in); got != tt.want {
				t.Errorf("NullInt64Value() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNullStringValue(t *testing.T) {
	tests := []struct {
		name string
		in   sql.NullString
		want string
	}{
		{"valid", sql.NullString{String: "hello", Valid: true}, "hello"},
		{"invalid", sql.NullString{String: "hello", Valid: false}, ""},
		{"empty", sql.NullString{String: "", Valid: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NullStringValue(tt.in); got != tt.want {
				t.Errorf("NullStringValue() = %q, want %q", got, tt.want)
			}
		})
	}
}
