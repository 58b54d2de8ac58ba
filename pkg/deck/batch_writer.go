package deck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WriteFunc is a callback that performs database writes inside a transaction.
type WriteFunc func(ctx context.Context, tx *sql.Tx) error

// ErrBatchWriterClosed is returned by Submit and Close after Close.
var ErrBatchWriterClosed = errors.New("batch writer closed")

// BatchWriter buffers write operations and commits them in batches, one transaction per batch.
// It is not safe for concurrent use.
type BatchWriter struct {
	db     *sql.DB
	buf    []WriteFunc
	cap    int
	closed bool

	// OnCommit is called after each successful commit with the batch size.
	OnCommit func(n int)
}

// NewBatchWriter creates a new BatchWriter that flushes every bufferSize writes.
func NewBatchWriter(db *sql.DB, bufferSize int) *BatchWriter {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	return &BatchWriter{
		db:  db,
		buf: make([]WriteFunc, 0, bufferSize),
		cap: bufferSize,
	}
}

// Submit enqueues a write and commits the buffer once it is full.
func (bw *BatchWriter) Submit(ctx context.Context, w WriteFunc) error {
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.buf = append(bw.buf, w)
	if len(bw.buf) >= bw.cap {
		return bw.Flush(ctx)
	}
	return nil
}

// Flush commits whatever is buffered. A failing write rolls back the whole batch.
func (bw *BatchWriter) Flush(ctx context.Context) error {
	if len(bw.buf) == 0 {
		return nil
	}
	batch := bw.buf
	bw.buf = make([]WriteFunc, 0, bw.cap)

	tx, err := bw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	for _, w := range batch {
		if err := w(ctx, tx); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch (%d items): %w", len(batch), err)
	}
	if bw.OnCommit != nil {
		bw.OnCommit(len(batch))
	}
	return nil
}

// Close flushes pending writes and stops accepting new ones.
func (bw *BatchWriter) Close(ctx context.Context) error {
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.closed = true
	return bw.Flush(ctx)
}
