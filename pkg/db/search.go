package db

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchResult is a word matched by Search together with how far the query was from it.
type SearchResult struct {
	Word     Word
	Distance int
}

// Search fuzzy-matches query against headwords and glosses.
// Results are ordered best first and capped at limit (0 means no cap).
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	words, err := s.WordsUpToLevel(ctx, MaxLevel)
	if err != nil {
		return nil, err
	}
	return SearchWords(words, query, limit), nil
}

// SearchWords is the in-memory part of Search.
func SearchWords(words []Word, query string, limit int) []SearchResult {
	targets := make([]string, 0, len(words)*2)
	owners := make([]int, 0, len(words)*2)
	for i, w := range words {
		targets = append(targets, w.Headword, w.Gloss)
		owners = append(owners, i, i)
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.Stable(ranks)

	// A word may match on both headword and gloss; keep the closer one.
	seen := make(map[int]bool, len(ranks))
	var out []SearchResult
	for _, r := range ranks {
		idx := owners[r.OriginalIndex]
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, SearchResult{Word: words[idx], Distance: r.Distance})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
