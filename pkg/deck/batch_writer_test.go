package deck

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestTable(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY, val TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return db
}

func insertVal(v string) WriteFunc {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO test (val) VALUES (?)", v)
		return err
	}
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM test").Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count
}

func TestBatchWriterTransactions(t *testing.T) {
	db := openTestTable(t)
	defer db.Close()
	ctx := context.Background()

	bw := NewBatchWriter(db, 2)
	var commits []int
	bw.OnCommit = func(n int) { commits = append(commits, n) }

	for _, v := range []string{"A", "B", "C"} {
		if err := bw.Submit(ctx, insertVal(v)); err != nil {
			t.Fatalf("submit %s: %v", v, err)
		}
	}
	// A and B are committed once the buffer fills; C waits for Close.
	if got := countRows(t, db); got != 2 {
		t.Fatalf("expected 2 rows before close, got %d", got)
	}
	if err := bw.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got := countRows(t, db); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if len(commits) != 2 || commits[0] != 2 || commits[1] != 1 {
		t.Fatalf("unexpected commit sizes %v", commits)
	}
}

func TestBatchWriterRollback(t *testing.T) {
	db := openTestTable(t)
	defer db.Close()
	ctx := context.Background()

	bw := NewBatchWriter(db, 2)
	boom := errors.New("boom")
	if err := bw.Submit(ctx, insertVal("A")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	err := bw.Submit(ctx, func(ctx context.Context, tx *sql.Tx) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	// A shared the failed transaction and must be rolled back.
	if got := countRows(t, db); got != 0 {
		t.Fatalf("expected 0 rows after rollback, got %d", got)
	}
}

func TestBatchWriterClosed(t *testing.T) {
	db := openTestTable(t)
	defer db.Close()
	ctx := context.Background()

	bw := NewBatchWriter(db, 0)
	if err := bw.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := bw.Submit(ctx, insertVal("A")); !errors.Is(err, ErrBatchWriterClosed) {
		t.Fatalf("expected ErrBatchWriterClosed, got %v", err)
	}
	if err := bw.Close(ctx); !errors.Is(err, ErrBatchWriterClosed) {
		t.Fatalf("expected ErrBatchWriterClosed on second close, got %v", err)
	}
}
