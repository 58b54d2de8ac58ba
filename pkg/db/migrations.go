package db

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS words (
	id            INTEGER PRIMARY KEY,
	level         INTEGER NOT NULL CHECK (level BETWEEN 0 AND 3),
	pos           TEXT NOT NULL DEFAULT '',
	korean        TEXT NOT NULL,
	english       TEXT NOT NULL,
	seen          INTEGER NOT NULL DEFAULT 0,
	score         INTEGER NOT NULL DEFAULT 0,
	last_reviewed TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_words_level ON words(level);
`
