package services

import (
	"context"
	"math"

	"github.com/harivittal/bgai/models"
)

// fakeEmbedder records every call and returns a canned vector or error.
type fakeEmbedder struct {
	passageCalls []string
	queryCalls   []string
	vector       []float32
	err          error
}

func (f *fakeEmbedder) EmbedPassage(_ context.Context, text string) ([]float32, error) {
	f.passageCalls = append(f.passageCalls, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.queryCalls = append(f.queryCalls, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

// fakeStore returns canned search results and records inserts.
type fakeStore struct {
	inserted      []models.Verse
	insertErr     error
	results       []models.ScoredVerse
	searchErr     error
	searchCalls   int
	lastThreshold float64
	lastTopK      int
}

func (f *fakeStore) Insert(_ context.Context, verse models.Verse, _ []float32) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, verse)
	return nil
}

func (f *fakeStore) Search(_ context.Context, _ []float32, threshold float64, topK int) ([]models.ScoredVerse, error) {
	f.searchCalls++
	f.lastThreshold = threshold
	f.lastTopK = topK
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

// fakeGenerator counts calls and captures each prompt.
type fakeGenerator struct {
	prompts []string
	answer  string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// memoryStore is a real cosine-similarity store over a slice, for end-to-end
// pipeline tests without a ChromaDB instance.
type memoryStore struct {
	verses     []models.Verse
	embeddings [][]float32
}

func (m *memoryStore) Insert(_ context.Context, verse models.Verse, embedding []float32) error {
	m.verses = append(m.verses, verse)
	m.embeddings = append(m.embeddings, embedding)
	return nil
}

func (m *memoryStore) Search(_ context.Context, embedding []float32, threshold float64, topK int) ([]models.ScoredVerse, error) {
	candidates := make([]models.ScoredVerse, 0, len(m.verses))
	for i, verse := range m.verses {
		candidates = append(candidates, models.ScoredVerse{
			Verse:      verse,
			Similarity: cosineSimilarity(embedding, m.embeddings[i]),
		})
	}
	return rankVerses(candidates, threshold, topK), nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
