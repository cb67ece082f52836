package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

// Recommender produces related sections for a reading position. It never
// fails: recommendation absence is an empty slice, not an error.
type Recommender interface {
	GetRecommendations(ctx context.Context, documentID string, focusIndex int) []types.Recommendation
}

// RecommendationService coordinates the two recommendation paths: the
// remote service is tried first and its result is authoritative; on any
// remote failure a single local fallback runs in the background
// processor. No retries beyond that one attempt per path, and no error
// ever propagates to the caller.
type RecommendationService struct {
	remote       *RemoteRecommender
	processor    *ProcessorService
	defaultLimit int
}

// NewRecommendationService wires the coordinator. remote may be nil when
// no remote endpoint is configured; recommendations then always come
// from the local path.
func NewRecommendationService(remote *RemoteRecommender, processor *ProcessorService, defaultLimit int) *RecommendationService {
	if defaultLimit <= 0 {
		defaultLimit = DefaultRecommendationLimit
	}
	return &RecommendationService{
		remote:       remote,
		processor:    processor,
		defaultLimit: defaultLimit,
	}
}

func (s *RecommendationService) GetRecommendations(ctx context.Context, documentID string, focusIndex int) []types.Recommendation {
	return s.GetRecommendationsLimit(ctx, documentID, focusIndex, s.defaultLimit)
}

// GetRecommendationsLimit is GetRecommendations with an explicit result
// cap. The remote contract has no limit parameter, so remote results are
// truncated client-side.
func (s *RecommendationService) GetRecommendationsLimit(ctx context.Context, documentID string, focusIndex, limit int) []types.Recommendation {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	if s.remote != nil {
		recommendations, err := s.remote.Recommend(ctx, documentID, focusIndex)
		if err == nil {
			if len(recommendations) > limit {
				recommendations = recommendations[:limit]
			}
			return recommendations
		}
		log.Warn().Err(err).Str("document_id", documentID).Int("focus_index", focusIndex).
			Msg("remote recommendations failed, falling back to local computation")
	}

	recommendations, err := s.processor.LocalRecommendations(ctx, documentID, focusIndex, limit)
	if err != nil {
		log.Warn().Err(err).Str("document_id", documentID).Int("focus_index", focusIndex).
			Msg("local recommendations failed, returning empty set")
		return []types.Recommendation{}
	}
	if recommendations == nil {
		recommendations = []types.Recommendation{}
	}
	return recommendations
}
