package db

import "time"

// Levels run from 0 (easiest) to MaxLevel.
const (
	MinLevel = 0
	MaxLevel = 3
)

// Word is one vocabulary entry in the deck.
type Word struct {
	ID           int64
	Level        int
	PartOfSpeech string
	Headword     string // target language
	Gloss        string // reference translations, comma or " or " separated

	// Reserved for review scheduling; nothing reads them yet.
	SeenCount    int
	Score        int
	LastReviewed *time.Time
}

// LevelCount is the number of words stored at a level.
type LevelCount struct {
	Level int
	Count int
}
