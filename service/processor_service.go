package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/developer4fun/Knowledge-Explorer/database"
	"github.com/developer4fun/Knowledge-Explorer/types"
)

// Message types exchanged with the processor. Payloads are plain values;
// no live references cross the processor boundary.

type StoreDocumentRequest struct {
	Document types.Document
	Done     chan<- error
}

type DeleteDocumentRequest struct {
	DocumentID string
	Done       chan<- error
}

type GetDocumentRequest struct {
	DocumentID string
	Result     chan<- GetDocumentResult
}

type GetDocumentResult struct {
	Document *types.Document
	Err      error
}

type LocalRecommendationsRequest struct {
	DocumentID string
	FocusIndex int
	Limit      int
	Result     chan<- LocalRecommendationsResult
}

type LocalRecommendationsResult struct {
	Recommendations []types.Recommendation
	Err             error
}

// ProcessorService hosts the document store and the similarity engine in
// a dedicated goroutine, reachable only through typed request messages.
// Requests from a single caller are processed in send order, so a
// document stored before a recommendation request for the same id is
// durably written by the time that request runs.
type ProcessorService struct {
	store      database.DocumentStore
	similarity *SimilarityService
	requests   chan interface{}
	quit       chan struct{}
	stopped    chan struct{}
}

func NewProcessorService(store database.DocumentStore, similarity *SimilarityService) *ProcessorService {
	return &ProcessorService{
		store:      store,
		similarity: similarity,
		requests:   make(chan interface{}, 64),
		quit:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Start launches the processing loop. The processor runs for the
// lifetime of the application, independent of any single session.
func (p *ProcessorService) Start() {
	go p.run()
}

// Stop shuts the processing loop down and waits for it to drain the
// request it is currently handling.
func (p *ProcessorService) Stop() {
	close(p.quit)
	<-p.stopped
}

func (p *ProcessorService) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.quit:
			p.drain()
			return
		case req := <-p.requests:
			p.dispatch(req)
		}
	}
}

// drain answers every request already queued at shutdown so no caller
// is left blocked waiting for a reply that would never come.
func (p *ProcessorService) drain() {
	for {
		select {
		case req := <-p.requests:
			p.dispatch(req)
		default:
			return
		}
	}
}

func (p *ProcessorService) dispatch(req interface{}) {
	switch m := req.(type) {
	case StoreDocumentRequest:
		p.handleStore(m)
	case DeleteDocumentRequest:
		p.handleDelete(m)
	case GetDocumentRequest:
		p.handleGet(m)
	case LocalRecommendationsRequest:
		p.handleRecommendations(m)
	default:
		log.Error().Interface("request", req).Msg("processor received unknown request type")
	}
}

// StoreDocument sends the document to the processor for persistence and
// returns a buffered channel carrying the outcome. Callers that ingest
// fire-and-forget simply never read it; persistence failures are logged
// inside the processor either way. A full request queue rejects the
// document instead of blocking the caller.
func (p *ProcessorService) StoreDocument(doc types.Document) <-chan error {
	done := make(chan error, 1)
	select {
	case p.requests <- StoreDocumentRequest{Document: doc, Done: done}:
	default:
		log.Warn().Str("document_id", doc.ID).Msg("processor queue full, persistence request rejected")
		done <- fmt.Errorf("%w: processor queue full", types.ErrStorageUnavailable)
	}
	return done
}

// DeleteDocument removes a document from the store. Missing ids are a
// no-op.
func (p *ProcessorService) DeleteDocument(ctx context.Context, id string) error {
	done := make(chan error, 1)
	select {
	case p.requests <- DeleteDocumentRequest{DocumentID: id, Done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetDocument loads a stored document.
func (p *ProcessorService) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	result := make(chan GetDocumentResult, 1)
	select {
	case p.requests <- GetDocumentRequest{DocumentID: id, Result: result}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-result:
		return r.Document, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LocalRecommendations loads the document from the local store and runs
// the similarity engine against the given focus section.
func (p *ProcessorService) LocalRecommendations(ctx context.Context, id string, focusIndex, limit int) ([]types.Recommendation, error) {
	result := make(chan LocalRecommendationsResult, 1)
	select {
	case p.requests <- LocalRecommendationsRequest{DocumentID: id, FocusIndex: focusIndex, Limit: limit, Result: result}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-result:
		return r.Recommendations, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *ProcessorService) handleStore(m StoreDocumentRequest) {
	err := p.store.Put(context.Background(), &m.Document)
	if err != nil {
		log.Error().Err(err).Str("document_id", m.Document.ID).Msg("failed to persist document")
	} else {
		log.Debug().Str("document_id", m.Document.ID).Int("sections", len(m.Document.Sections)).Msg("document persisted")
	}
	m.Done <- err
}

func (p *ProcessorService) handleDelete(m DeleteDocumentRequest) {
	err := p.store.Delete(context.Background(), m.DocumentID)
	if err != nil {
		log.Error().Err(err).Str("document_id", m.DocumentID).Msg("failed to delete document")
	}
	m.Done <- err
}

func (p *ProcessorService) handleGet(m GetDocumentRequest) {
	doc, err := p.store.Get(context.Background(), m.DocumentID)
	m.Result <- GetDocumentResult{Document: doc, Err: err}
}

func (p *ProcessorService) handleRecommendations(m LocalRecommendationsRequest) {
	doc, err := p.store.Get(context.Background(), m.DocumentID)
	if err != nil {
		log.Debug().Err(err).Str("document_id", m.DocumentID).Msg("local recommendations unavailable")
		m.Result <- LocalRecommendationsResult{Err: err}
		return
	}
	recommendations := p.similarity.Rank(doc.Sections, m.FocusIndex, m.Limit)
	m.Result <- LocalRecommendationsResult{Recommendations: recommendations}
}
