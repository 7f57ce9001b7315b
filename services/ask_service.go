package services

import (
	"context"
	"fmt"
	"log"

	"github.com/harivittal/bgai/models"
)

// AskService answers questions grounded in the stored verses.
type AskService interface {
	Ask(c context.Context, question string) (*models.AskResponse, error)
}

// askServiceImpl holds the dependencies it needs to do its job. Each request
// is stateless; the struct carries no mutable state, so one instance serves
// concurrent requests without locking.
type askServiceImpl struct {
	embedder  Embedder
	store     VectorStore
	generator Generator
	threshold float64
	topK      int
}

// NewAskService creates an AskService with explicitly injected dependencies.
func NewAskService(embedder Embedder, store VectorStore, generator Generator, threshold float64, topK int) AskService {
	return &askServiceImpl{
		embedder:  embedder,
		store:     store,
		generator: generator,
		threshold: threshold,
		topK:      topK,
	}
}

// Ask implements AskService. Every step is terminal on first failure: an
// upstream error aborts the whole request, never a partial answer. The one
// non-error early exit is the zero-match fallback.
func (s *askServiceImpl) Ask(c context.Context, question string) (*models.AskResponse, error) {
	log.Printf("SERVICE: Answering question: '%s'", question)

	queryEmbedding, err := s.embedder.EmbedQuery(c, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embed question: %v", ErrEmbedding, err)
	}

	verses, err := s.store.Search(c, queryEmbedding, s.threshold, s.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: search verses: %v", ErrStore, err)
	}

	if len(verses) == 0 {
		log.Printf("SERVICE: No verse cleared the similarity threshold; returning fallback answer")
		return &models.AskResponse{
			Answer: FallbackAnswer,
			Verses: []models.ScoredVerse{},
		}, nil
	}
	log.Printf("SERVICE: Retrieved %d verses for grounding", len(verses))

	prompt, err := buildPrompt(verses, question)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.Generate(c, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return &models.AskResponse{
		Answer: answer,
		Verses: verses,
	}, nil
}
