package selector

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/japaniel/vocabdrill/pkg/db"
)

// ErrNoEligibleEntries is returned when no word is at or below the requested level.
var ErrNoEligibleEntries = errors.New("no eligible entries")

// Source provides the words a Selector draws from.
type Source interface {
	WordsUpToLevel(ctx context.Context, maxLevel int) ([]db.Word, error)
}

// Selector draws words uniformly at random from the eligible part of a deck.
// The eligible set is fixed when the Selector is built.
type Selector struct {
	eligible []db.Word
	maxLevel int
	rng      *rand.Rand
}

// New loads the words at or below maxLevel from src.
// A nil rng uses the package-level random source.
func New(ctx context.Context, src Source, maxLevel int, rng *rand.Rand) (*Selector, error) {
	words, err := src.WordsUpToLevel(ctx, maxLevel)
	if err != nil {
		return nil, fmt.Errorf("load eligible words: %w", err)
	}
	return FromWords(words, maxLevel, rng)
}

// FromWords builds a Selector over the words at or below maxLevel.
func FromWords(words []db.Word, maxLevel int, rng *rand.Rand) (*Selector, error) {
	var eligible []db.Word
	for _, w := range words {
		if w.Level <= maxLevel {
			eligible = append(eligible, w)
		}
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w at level %d", ErrNoEligibleEntries, maxLevel)
	}
	return &Selector{eligible: eligible, maxLevel: maxLevel, rng: rng}, nil
}

// Next returns a uniformly chosen eligible word.
func (s *Selector) Next() db.Word {
	return s.eligible[s.intN(len(s.eligible))]
}

// Len is the number of eligible words.
func (s *Selector) Len() int { return len(s.eligible) }

// Eligible returns a copy of the words the Selector draws from.
func (s *Selector) Eligible() []db.Word {
	return append([]db.Word(nil), s.eligible...)
}

// MaxLevel is the level bound the Selector was built with.
func (s *Selector) MaxLevel() int { return s.maxLevel }

func (s *Selector) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

// SelectCard draws one word at or below maxLevel from src.
func SelectCard(ctx context.Context, maxLevel int, src Source, rng *rand.Rand) (db.Word, error) {
	s, err := New(ctx, src, maxLevel, rng)
	if err != nil {
		return db.Word{}, err
	}
	return s.Next(), nil
}
