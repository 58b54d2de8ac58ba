package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// ErrWordNotFound is returned by GetWord when no row has the given id.
var ErrWordNotFound = errors.New("word not found")

var wordColumns = []string{"id", "level", "pos", "korean", "english", "seen", "score", "last_reviewed"}

const lastReviewedLayout = "2006-01-02"

// UpsertWord inserts a word or replaces the deck fields of an existing row with the same id.
// Review columns on an existing row are left alone.
func UpsertWord(db DBExecutor, w Word) error {
	if w.ID <= 0 {
		return fmt.Errorf("word id must be positive, got %d", w.ID)
	}
	if w.Level < MinLevel || w.Level > MaxLevel {
		return fmt.Errorf("word %d: level %d out of range", w.ID, w.Level)
	}
	if strings.TrimSpace(w.Headword) == "" {
		return fmt.Errorf("word %d: headword must be non-empty", w.ID)
	}

	query, args, err := sq.Insert("words").
		Columns("id", "level", "pos", "korean", "english").
		Values(w.ID, w.Level, w.PartOfSpeech, w.Headword, w.Gloss).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			level = excluded.level,
			pos = excluded.pos,
			korean = excluded.korean,
			english = excluded.english`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("upsert word %d: %w", w.ID, err)
	}
	return nil
}

// GetWord returns the word with the given id.
func GetWord(db DBExecutor, id int64) (Word, error) {
	query, args, err := sq.Select(wordColumns...).From("words").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Word{}, err
	}
	w, err := scanWord(db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return Word{}, fmt.Errorf("%w: %d", ErrWordNotFound, id)
	}
	return w, err
}

// WordsUpToLevel returns every word with level <= maxLevel ordered by id.
func WordsUpToLevel(db DBExecutor, maxLevel int) ([]Word, error) {
	query, args, err := sq.Select(wordColumns...).
		From("words").
		Where(sq.LtOrEq{"level": maxLevel}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()
	return scanWords(rows)
}

// AllWords returns the whole deck ordered by id.
func AllWords(db DBExecutor) ([]Word, error) {
	return WordsUpToLevel(db, MaxLevel)
}

// CountWords returns the number of stored words.
func CountWords(db DBExecutor) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

// CountByLevel returns word counts for every level, including empty ones.
func CountByLevel(db DBExecutor) ([]LevelCount, error) {
	query, args, err := sq.Select("level", "COUNT(*)").From("words").GroupBy("level").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by level: %w", err)
	}
	defer rows.Close()

	counts := make([]LevelCount, MaxLevel-MinLevel+1)
	for i := range counts {
		counts[i].Level = MinLevel + i
	}
	for rows.Next() {
		var level, n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, err
		}
		if level < MinLevel || level > MaxLevel {
			continue
		}
		counts[level-MinLevel].Count = n
	}
	return counts, rows.Err()
}

// Store is the read side used during a drill session.
type Store struct {
	DB *sql.DB
}

// NewStore wraps an open connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{DB: conn}
}

// WordsUpToLevel returns every word with level <= maxLevel.
func (s *Store) WordsUpToLevel(ctx context.Context, maxLevel int) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return WordsUpToLevel(s.DB, maxLevel)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWord(row rowScanner) (Word, error) {
	var w Word
	var pos, last sql.NullString
	if err := row.Scan(&w.ID, &w.Level, &pos, &w.Headword, &w.Gloss, &w.SeenCount, &w.Score, &last); err != nil {
		return Word{}, err
	}
	if pos.Valid {
		w.PartOfSpeech = pos.String
	}
	if last.Valid && last.String != "" {
		if t, err := time.Parse(lastReviewedLayout, last.String); err == nil {
			w.LastReviewed = &t
		}
	}
	return w, nil
}

func scanWords(rows *sql.Rows) ([]Word, error) {
	var out []Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
