package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchWords(t *testing.T) {
	words := []Word{
		{ID: 1, Headword: "집", Gloss: "house, home"},
		{ID: 2, Headword: "학교", Gloss: "school"},
		{ID: 3, Headword: "집안", Gloss: "family, household"},
	}

	t.Run("matches gloss case-insensitively", func(t *testing.T) {
		got := SearchWords(words, "HOUSE", 0)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].Word.ID, "exact word should rank first")
		assert.Equal(t, int64(3), got[1].Word.ID)
	})

	t.Run("matches headword", func(t *testing.T) {
		got := SearchWords(words, "학교", 0)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].Word.ID)
	})

	t.Run("each word once", func(t *testing.T) {
		got := SearchWords(words, "집", 0)
		ids := map[int64]int{}
		for _, r := range got {
			ids[r.Word.ID]++
		}
		for id, n := range ids {
			assert.Equal(t, 1, n, "word %d listed more than once", id)
		}
	})

	t.Run("limit", func(t *testing.T) {
		got := SearchWords(words, "h", 1)
		assert.Len(t, got, 1)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, SearchWords(words, "zebra", 0))
	})
}

func TestStoreSearch(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()
	seedWords(t, conn,
		Word{ID: 1, Level: 0, Headword: "물", Gloss: "water"},
		Word{ID: 2, Level: 3, Headword: "불", Gloss: "fire"},
	)

	store := NewStore(conn)
	got, err := store.Search(context.Background(), "fire", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "불", got[0].Word.Headword)

	empty, err := store.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
