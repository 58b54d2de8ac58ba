package deck

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/japaniel/vocabdrill/pkg/db"
)

// Importer writes parsed deck words into the record store.
type Importer struct {
	DB        *sql.DB
	BatchSize int
	// Logger receives a record per skipped line and a summary. nil means no logging.
	Logger *slog.Logger
	// OnProgress is called after each committed batch with words written so far and the total.
	OnProgress func(current, total int)
}

// NewImporter creates an Importer with the default batch size.
func NewImporter(conn *sql.DB) *Importer {
	return &Importer{
		DB:        conn,
		BatchSize: 200,
	}
}

// Import upserts every word in res and returns how many were written.
// Words are keyed by id, so importing the same deck twice leaves one row per word.
func (im *Importer) Import(ctx context.Context, res *LoadResult) (int, error) {
	if im.Logger != nil {
		for _, m := range res.Skipped {
			im.Logger.Warn("skipping malformed deck line", "line", m.Line, "reason", m.Reason)
		}
	}

	total := len(res.Words)
	written := 0
	bw := NewBatchWriter(im.DB, im.BatchSize)
	bw.OnCommit = func(n int) {
		written += n
		if im.OnProgress != nil {
			im.OnProgress(written, total)
		}
	}

	for _, w := range res.Words {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		word := w
		err := bw.Submit(ctx, func(ctx context.Context, tx *sql.Tx) error {
			return db.UpsertWord(tx, word)
		})
		if err != nil {
			return written, fmt.Errorf("import: %w", err)
		}
	}
	if err := bw.Close(ctx); err != nil {
		return written, fmt.Errorf("import: %w", err)
	}

	if im.Logger != nil {
		im.Logger.Info("deck imported", "words", written, "skipped", res.SkippedCount())
	}
	return written, nil
}
