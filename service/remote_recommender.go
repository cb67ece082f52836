package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

// RemoteRecommender calls the remote recommendation service. The wire
// contract: POST {base}/recommendations with the document id and current
// section index, answered by an ordered list of related sections.
type RemoteRecommender struct {
	baseURL string
	client  *http.Client
}

type remoteRecommendationRequest struct {
	DocID               string `json:"doc_id"`
	CurrentSectionIndex int    `json:"current_section_index"`
}

type remoteRecommendationItem struct {
	SectionTitle string `json:"section_title"`
	PageNumber   int    `json:"page_number"`
}

// NewRemoteRecommender creates a client with a bounded per-request
// timeout so a slow remote can never stall a recommendation request.
func NewRemoteRecommender(baseURL string, timeout time.Duration) *RemoteRecommender {
	return &RemoteRecommender{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Recommend returns the remote service's related sections for the given
// reading position. Any transport failure, non-2xx status or malformed
// body comes back as types.ErrRemoteUnavailable.
func (r *RemoteRecommender) Recommend(ctx context.Context, documentID string, focusIndex int) ([]types.Recommendation, error) {
	body, err := json.Marshal(remoteRecommendationRequest{
		DocID:               documentID,
		CurrentSectionIndex: focusIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", types.ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/recommendations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", types.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", types.ErrRemoteUnavailable, resp.StatusCode)
	}

	var items []remoteRecommendationItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", types.ErrRemoteUnavailable, err)
	}

	// The remote response carries no source index or score; its ordering
	// is trusted verbatim.
	recommendations := make([]types.Recommendation, 0, len(items))
	for _, item := range items {
		recommendations = append(recommendations, types.Recommendation{
			SectionTitle: item.SectionTitle,
			PageNumber:   item.PageNumber,
			SourceIndex:  -1,
		})
	}
	return recommendations, nil
}
