package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

// stubRecommender resolves with a configurable delay per focus index, so
// tests can interleave in-flight requests deterministically.
type stubRecommender struct {
	mu     sync.Mutex
	delays map[int]time.Duration
	calls  []int
}

func (s *stubRecommender) GetRecommendations(ctx context.Context, documentID string, focusIndex int) []types.Recommendation {
	s.mu.Lock()
	delay := s.delays[focusIndex]
	s.calls = append(s.calls, focusIndex)
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return []types.Recommendation{
		{SectionTitle: fmt.Sprintf("for-focus-%d", focusIndex), PageNumber: 1, SourceIndex: focusIndex},
	}
}

func newTestSession(t *testing.T, recommender Recommender) (*SessionService, *ProcessorService) {
	t.Helper()
	processor := newTestProcessor(t)
	if recommender == nil {
		recommender = NewRecommendationService(nil, processor, 5)
	}
	return NewSessionService(processor, recommender), processor
}

func TestSessionStartsEmpty(t *testing.T) {
	session, _ := newTestSession(t, nil)

	snapshot := session.Snapshot()
	assert.Equal(t, SessionEmpty, snapshot.State)
	assert.Equal(t, -1, snapshot.FocusSectionIndex)
	assert.False(t, snapshot.Loading)
}

func TestIngestMovesToReadyAndPersists(t *testing.T) {
	session, processor := newTestSession(t, nil)

	session.IngestDocument(testDocument())

	snapshot := session.Snapshot()
	assert.Equal(t, SessionReady, snapshot.State)
	assert.Equal(t, "doc-1", snapshot.ActiveDocumentID)
	assert.Equal(t, -1, snapshot.FocusSectionIndex)

	// Persistence is fire-and-forget; the store catches up shortly after.
	require.Eventually(t, func() bool {
		_, err := processor.GetDocument(context.Background(), "doc-1")
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestChangeFocusWithoutDocument(t *testing.T) {
	session, _ := newTestSession(t, nil)

	assert.Error(t, session.ChangeFocus(0))
}

func TestChangeFocusOutOfRange(t *testing.T) {
	session, _ := newTestSession(t, nil)
	session.IngestDocument(testDocument())

	assert.Error(t, session.ChangeFocus(-1))
	assert.Error(t, session.ChangeFocus(3))
}

func TestChangeFocusResolvesRecommendations(t *testing.T) {
	session, _ := newTestSession(t, nil)
	session.IngestDocument(testDocument())

	require.NoError(t, session.ChangeFocus(0))
	snapshot := session.Snapshot()
	assert.Equal(t, SessionFocused, snapshot.State)
	assert.Equal(t, 0, snapshot.FocusSectionIndex)

	require.Eventually(t, func() bool {
		return !session.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	snapshot = session.Snapshot()
	require.NotEmpty(t, snapshot.Recommendations)
	assert.Equal(t, 1, snapshot.Recommendations[0].SourceIndex)
}

func TestStaleFocusResultIsDiscarded(t *testing.T) {
	recommender := &stubRecommender{delays: map[int]time.Duration{
		1: 150 * time.Millisecond,
		2: 10 * time.Millisecond,
	}}
	session, _ := newTestSession(t, recommender)
	session.IngestDocument(testDocument())

	require.NoError(t, session.ChangeFocus(1))
	require.NoError(t, session.ChangeFocus(2))

	require.Eventually(t, func() bool {
		return !session.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	snapshot := session.Snapshot()
	assert.Equal(t, 2, snapshot.FocusSectionIndex)
	require.NotEmpty(t, snapshot.Recommendations)
	assert.Equal(t, "for-focus-2", snapshot.Recommendations[0].SectionTitle)

	// The slow focus-1 result resolves later and must not win.
	time.Sleep(200 * time.Millisecond)
	snapshot = session.Snapshot()
	assert.Equal(t, 2, snapshot.FocusSectionIndex)
	assert.Equal(t, "for-focus-2", snapshot.Recommendations[0].SectionTitle)
}

func TestIngestDiscardsPriorRecommendations(t *testing.T) {
	session, _ := newTestSession(t, nil)
	session.IngestDocument(testDocument())
	require.NoError(t, session.ChangeFocus(0))
	require.Eventually(t, func() bool {
		return !session.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	next := testDocument()
	next.ID = "doc-2"
	session.IngestDocument(next)

	snapshot := session.Snapshot()
	assert.Equal(t, SessionReady, snapshot.State)
	assert.Equal(t, "doc-2", snapshot.ActiveDocumentID)
	assert.Equal(t, -1, snapshot.FocusSectionIndex)
	assert.Empty(t, snapshot.Recommendations)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	session, _ := newTestSession(t, nil)
	updates, cancel := session.Subscribe()
	defer cancel()

	session.IngestDocument(testDocument())

	select {
	case snapshot := <-updates:
		assert.Equal(t, SessionReady, snapshot.State)
	case <-time.After(time.Second):
		t.Fatal("expected a session snapshot after ingestion")
	}
}
