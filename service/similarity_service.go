package service

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

// DefaultRecommendationLimit is the number of related sections returned
// when the caller does not ask for a specific limit.
const DefaultRecommendationLimit = 5

// SimilarityService ranks the sections of a document by textual
// relatedness to a focus section, using TF-IDF vectors and cosine
// similarity. Document frequencies are computed over the sections of the
// given document only, so ranking needs no global corpus state and the
// same input always yields the same output.
type SimilarityService struct {
	tokenPattern *regexp.Regexp
}

func NewSimilarityService() *SimilarityService {
	return &SimilarityService{
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+`),
	}
}

// Rank scores every section other than sections[focusIndex] against the
// focus section and returns at most limit recommendations, ordered by
// descending score. Ties are broken by ascending index distance from the
// focus, then by ascending index. Documents with at most one section
// yield no recommendations.
func (s *SimilarityService) Rank(sections []types.Section, focusIndex, limit int) []types.Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if len(sections) <= 1 || focusIndex < 0 || focusIndex >= len(sections) {
		return nil
	}

	tokens := make([][]string, len(sections))
	df := make(map[string]int)
	for i, section := range sections {
		tokens[i] = s.tokenize(section.Content)
		seen := make(map[string]struct{}, len(tokens[i]))
		for _, tok := range tokens[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable vocabulary ordering keeps vector layout deterministic.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(sections))
	for i, term := range terms {
		vocabulary[term] = i
		// Smoothed IDF, so a term present in every section still scores.
		idf[i] = math.Log((n+1)/(float64(df[term])+1)) + 1.0
	}

	vectors := make([][]float64, len(sections))
	for i := range sections {
		vectors[i] = vectorize(tokens[i], vocabulary, idf)
	}

	type candidate struct {
		index int
		score float64
	}
	candidates := make([]candidate, 0, len(sections)-1)
	for i := range sections {
		if i == focusIndex {
			continue
		}
		candidates = append(candidates, candidate{
			index: i,
			score: dot(vectors[focusIndex], vectors[i]),
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		distA := abs(candidates[a].index - focusIndex)
		distB := abs(candidates[b].index - focusIndex)
		if distA != distB {
			return distA < distB
		}
		return candidates[a].index < candidates[b].index
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}
	recommendations := make([]types.Recommendation, 0, limit)
	for _, c := range candidates[:limit] {
		recommendations = append(recommendations, types.Recommendation{
			SectionTitle: sections[c.index].Title,
			PageNumber:   sections[c.index].PageNumber,
			SourceIndex:  sections[c.index].Index,
			Score:        c.score,
		})
	}
	return recommendations
}

func (s *SimilarityService) tokenize(text string) []string {
	return s.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// vectorize builds an L2-normalized TF-IDF vector, with term frequency
// as the raw token count within the section.
func vectorize(tokens []string, vocabulary map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(idf))
	for _, tok := range tokens {
		if idx, ok := vocabulary[tok]; ok {
			vec[idx] += idf[idx]
		}
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
