package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

const (
	SessionEmpty   = "empty"
	SessionReady   = "ready"
	SessionFocused = "focused"
)

// SessionService tracks the reading session: the active document, the
// focus section and the current recommendation set. State moves
// Empty -> Ready on ingestion and Ready/Focused -> Focused on focus
// changes. Each focus change is tagged so that the result of a
// superseded request never overwrites state belonging to a newer one.
type SessionService struct {
	processor   *ProcessorService
	recommender Recommender

	mu              sync.Mutex
	state           string
	document        *types.Document
	focusIndex      int
	recommendations []types.Recommendation
	loading         bool
	requestID       uint64

	subscribers map[chan types.SessionSnapshot]struct{}
}

func NewSessionService(processor *ProcessorService, recommender Recommender) *SessionService {
	return &SessionService{
		processor:   processor,
		recommender: recommender,
		state:       SessionEmpty,
		focusIndex:  -1,
		subscribers: make(map[chan types.SessionSnapshot]struct{}),
	}
}

// IngestDocument starts a new reading session around doc, discarding any
// prior focus and recommendations, and hands the document to the
// background processor for persistence. Persistence is fire-and-forget:
// the session is usable immediately, and a recommendation request that
// races the write may simply fall back to an empty result.
func (s *SessionService) IngestDocument(doc types.Document) {
	s.mu.Lock()
	s.state = SessionReady
	s.document = doc.Clone()
	s.focusIndex = -1
	s.recommendations = nil
	s.loading = false
	s.requestID++
	s.mu.Unlock()

	s.processor.StoreDocument(doc)
	log.Info().Str("document_id", doc.ID).Int("sections", len(doc.Sections)).Msg("document ingested")
	s.notify()
}

// ChangeFocus records the new reading position and resolves
// recommendations for it asynchronously. A focus change issued while a
// previous one is pending supersedes it.
func (s *SessionService) ChangeFocus(index int) error {
	s.mu.Lock()
	if s.state == SessionEmpty {
		s.mu.Unlock()
		return fmt.Errorf("no document loaded")
	}
	if index < 0 || index >= len(s.document.Sections) {
		s.mu.Unlock()
		return fmt.Errorf("section index %d out of range", index)
	}
	s.state = SessionFocused
	s.focusIndex = index
	s.loading = true
	s.requestID++
	requestID := s.requestID
	documentID := s.document.ID
	s.mu.Unlock()
	s.notify()

	go func() {
		recommendations := s.recommender.GetRecommendations(context.Background(), documentID, index)

		s.mu.Lock()
		if s.requestID != requestID {
			// Superseded while in flight; drop the stale result.
			s.mu.Unlock()
			return
		}
		s.recommendations = recommendations
		s.loading = false
		s.mu.Unlock()
		s.notify()
	}()
	return nil
}

// Snapshot returns a copy of the current session state for rendering.
func (s *SessionService) Snapshot() types.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionService) snapshotLocked() types.SessionSnapshot {
	snapshot := types.SessionSnapshot{
		State:             s.state,
		FocusSectionIndex: s.focusIndex,
		Recommendations:   make([]types.Recommendation, len(s.recommendations)),
		Loading:           s.loading,
	}
	if s.document != nil {
		snapshot.ActiveDocumentID = s.document.ID
	}
	copy(snapshot.Recommendations, s.recommendations)
	return snapshot
}

// Subscribe registers a listener for session snapshots. The returned
// cancel function must be called when the listener goes away. Snapshots
// are dropped, not queued, for slow consumers.
func (s *SessionService) Subscribe() (<-chan types.SessionSnapshot, func()) {
	updates := make(chan types.SessionSnapshot, 8)
	s.mu.Lock()
	s.subscribers[updates] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers, updates)
		s.mu.Unlock()
	}
	return updates, cancel
}

func (s *SessionService) notify() {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	for subscriber := range s.subscribers {
		select {
		case subscriber <- snapshot:
		default:
		}
	}
	s.mu.Unlock()
}
