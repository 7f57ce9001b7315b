package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harivittal/bgai/models"
)

func scored(content string, similarity float64) models.ScoredVerse {
	return models.ScoredVerse{
		Verse:      models.Verse{Content: content},
		Similarity: similarity,
	}
}

func TestRankVersesFiltersBelowThreshold(t *testing.T) {
	candidates := []models.ScoredVerse{
		scored("a", 0.9),
		scored("b", 0.29),
		scored("c", 0.3),
	}

	ranked := rankVerses(candidates, 0.3, 3)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Content)
	assert.Equal(t, "c", ranked[1].Content)
}

func TestRankVersesImpossibleThresholdYieldsEmpty(t *testing.T) {
	candidates := []models.ScoredVerse{
		scored("a", 1.0),
		scored("b", 0.99),
	}

	ranked := rankVerses(candidates, 1.1, 3)
	assert.Empty(t, ranked)
}

func TestRankVersesTruncatesToTopK(t *testing.T) {
	candidates := []models.ScoredVerse{
		scored("a", 0.5),
		scored("b", 0.6),
		scored("c", 0.7),
		scored("d", 0.8),
		scored("e", 0.9),
	}

	ranked := rankVerses(candidates, 0.0, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "e", ranked[0].Content)
	assert.Equal(t, "d", ranked[1].Content)
	assert.Equal(t, "c", ranked[2].Content)
}

func TestRankVersesOrderIsNonIncreasing(t *testing.T) {
	candidates := []models.ScoredVerse{
		scored("a", 0.4),
		scored("b", 0.9),
		scored("c", 0.4),
		scored("d", 0.7),
	}

	ranked := rankVerses(candidates, 0.0, 10)
	require.Len(t, ranked, 4)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Similarity, ranked[i].Similarity)
	}
}

func TestRankVersesEmptyInput(t *testing.T) {
	ranked := rankVerses(nil, 0.3, 3)
	assert.Empty(t, ranked)
}
