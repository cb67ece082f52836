package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

func petSections() []types.Section {
	return []types.Section{
		{Index: 0, Title: "Intro", PageNumber: 1, Content: "cats and dogs"},
		{Index: 1, Title: "Pets", PageNumber: 2, Content: "dogs are pets"},
		{Index: 2, Title: "Math", PageNumber: 3, Content: "numbers and algebra"},
	}
}

func TestRankPrefersSharedVocabulary(t *testing.T) {
	s := NewSimilarityService()

	recommendations := s.Rank(petSections(), 0, 2)

	require.Len(t, recommendations, 2)
	assert.Equal(t, 1, recommendations[0].SourceIndex, "section sharing 'dogs' should rank first")
	assert.Equal(t, "Pets", recommendations[0].SectionTitle)
	assert.Equal(t, 2, recommendations[0].PageNumber)
	assert.Equal(t, 2, recommendations[1].SourceIndex)
}

func TestRankDeterministic(t *testing.T) {
	s := NewSimilarityService()
	sections := make([]types.Section, 0, 8)
	contents := []string{
		"storage engines and write ahead logs",
		"btree indexes speed up reads",
		"write ahead logs make crashes recoverable",
		"query planners choose indexes",
		"cats are unrelated to databases",
		"replication copies the write ahead log",
		"reads hit the cache first",
		"the planner estimates costs",
	}
	for i, content := range contents {
		sections = append(sections, types.Section{Index: i, Title: fmt.Sprintf("S%d", i), PageNumber: i + 1, Content: content})
	}

	first := s.Rank(sections, 2, 5)
	second := s.Rank(sections, 2, 5)

	assert.Equal(t, first, second)
}

func TestRankExcludesFocusSection(t *testing.T) {
	s := NewSimilarityService()
	sections := petSections()

	for focus := range sections {
		for _, rec := range s.Rank(sections, focus, 10) {
			assert.NotEqual(t, focus, rec.SourceIndex)
		}
	}
}

func TestRankBoundedSize(t *testing.T) {
	s := NewSimilarityService()

	assert.LessOrEqual(t, len(s.Rank(petSections(), 0, 1)), 1)
	assert.Empty(t, s.Rank([]types.Section{{Index: 0, Title: "Only", PageNumber: 1, Content: "alone"}}, 0, 5))
	assert.Empty(t, s.Rank(nil, 0, 5))
}

func TestRankFocusOutOfRange(t *testing.T) {
	s := NewSimilarityService()

	assert.Empty(t, s.Rank(petSections(), -1, 5))
	assert.Empty(t, s.Rank(petSections(), 3, 5))
}

func TestRankOrdering(t *testing.T) {
	s := NewSimilarityService()

	// Identical sections force score ties, so ordering falls back to
	// ascending distance from the focus, then ascending index.
	sections := make([]types.Section, 5)
	for i := range sections {
		sections[i] = types.Section{Index: i, Title: fmt.Sprintf("S%d", i), PageNumber: i + 1, Content: "alpha beta gamma"}
	}

	recommendations := s.Rank(sections, 2, 5)

	require.Len(t, recommendations, 4)
	order := make([]int, len(recommendations))
	for i, rec := range recommendations {
		order[i] = rec.SourceIndex
	}
	assert.Equal(t, []int{1, 3, 0, 4}, order)

	for i := 1; i < len(recommendations); i++ {
		assert.GreaterOrEqual(t, recommendations[i-1].Score, recommendations[i].Score)
	}
}

func TestRankScoresNonIncreasing(t *testing.T) {
	s := NewSimilarityService()
	sections := []types.Section{
		{Index: 0, Title: "A", PageNumber: 1, Content: "compilers translate source code"},
		{Index: 1, Title: "B", PageNumber: 2, Content: "parsers read source code tokens"},
		{Index: 2, Title: "C", PageNumber: 3, Content: "gardening tips for spring"},
		{Index: 3, Title: "D", PageNumber: 4, Content: "optimizers rewrite code"},
	}

	recommendations := s.Rank(sections, 0, 5)

	require.NotEmpty(t, recommendations)
	for i := 1; i < len(recommendations); i++ {
		assert.GreaterOrEqual(t, recommendations[i-1].Score, recommendations[i].Score)
	}
}
