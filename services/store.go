package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/google/uuid"

	"github.com/harivittal/bgai/models"
)

// VectorStore wraps the two operations the pipelines need from the vector
// database. Insert appends one row; there is no update or delete, and a batch
// of inserts is not transactional. Search returns entries whose cosine
// similarity to the query embedding is at least threshold, best match first,
// at most topK of them. An empty result is a valid outcome, not an error.
type VectorStore interface {
	Insert(ctx context.Context, verse models.Verse, embedding []float32) error
	Search(ctx context.Context, embedding []float32, threshold float64, topK int) ([]models.ScoredVerse, error)
}

// ChromaStore implements VectorStore against a ChromaDB collection using the
// v2 API. The collection must use cosine distance, matching the normalized
// embeddings the model produces.
type ChromaStore struct {
	collection chromago.Collection
}

// NewChromaStore wraps an existing collection.
func NewChromaStore(collection chromago.Collection) *ChromaStore {
	return &ChromaStore{collection: collection}
}

// GetOrCreateCollection fetches or creates the verse collection, configured
// for cosine distance.
func GetOrCreateCollection(client chromago.Client, collectionName string) (chromago.Collection, error) {
	ctx := context.Background()

	log.Printf("Getting or creating collection '%s'...", collectionName)

	// hnsw:space must be cosine so search distances line up with the
	// normalized embeddings the model produces.
	collection, err := client.GetOrCreateCollection(
		ctx,
		collectionName,
		chromago.WithCollectionMetadataCreate(
			chromago.NewMetadata(
				chromago.NewStringAttribute("hnsw:space", "cosine"),
				chromago.NewStringAttribute("description", "Bhagavad Gita verse store"),
				chromago.NewStringAttribute("created_by", "bgai"),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully got/created collection '%s'", collectionName)
	return collection, nil
}

// Insert implements VectorStore.
func (s *ChromaStore) Insert(ctx context.Context, verse models.Verse, embedding []float32) error {
	err := s.collection.Add(ctx,
		chromago.WithIDs(chromago.DocumentID(uuid.New().String())),
		chromago.WithTexts(verse.Content),
		chromago.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(embedding)),
		chromago.WithMetadatas(documentMetadataFromMap(verse.Metadata)),
	)
	if err != nil {
		return fmt.Errorf("failed to add record to chromadb: %w", err)
	}
	return nil
}

// Search implements VectorStore. Chroma returns cosine distances in ascending
// order; similarity is 1 - distance, so the converted list is already best
// match first.
func (s *ChromaStore) Search(ctx context.Context, embedding []float32, threshold float64, topK int) ([]models.ScoredVerse, error) {
	results, err := s.collection.Query(ctx,
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(embedding)),
		chromago.WithNResults(topK),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chromadb: %w", err)
	}

	var candidates []models.ScoredVerse
	documentGroups := results.GetDocumentsGroups()
	metadataGroups := results.GetMetadatasGroups()
	distanceGroups := results.GetDistancesGroups()

	if len(documentGroups) > 0 {
		for i, doc := range documentGroups[0] {
			if doc.ContentString() == "" {
				continue
			}
			var metadataMap map[string]interface{}
			if len(metadataGroups) > 0 && i < len(metadataGroups[0]) {
				metadataMap = metadataToMap(metadataGroups[0][i])
			}
			similarity := 0.0
			if len(distanceGroups) > 0 && i < len(distanceGroups[0]) {
				similarity = 1 - float64(distanceGroups[0][i])
			}
			candidates = append(candidates, models.ScoredVerse{
				Verse: models.Verse{
					Content:  doc.ContentString(),
					Metadata: metadataMap,
				},
				Similarity: similarity,
			})
		}
	}
	return rankVerses(candidates, threshold, topK), nil
}

// rankVerses enforces the search contract: results at least as similar as
// threshold, in non-increasing similarity order, never more than topK.
func rankVerses(candidates []models.ScoredVerse, threshold float64, topK int) []models.ScoredVerse {
	ranked := make([]models.ScoredVerse, 0, len(candidates))
	for _, c := range candidates {
		if c.Similarity >= threshold {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
	if topK >= 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// documentMetadataFromMap converts free-form record metadata into chroma
// attributes. JSON decoding only ever yields strings, float64s and bools for
// scalar values; anything else is stored as its string form.
func documentMetadataFromMap(m map[string]interface{}) chromago.DocumentMetadata {
	attributes := make([]*chromago.MetaAttribute, 0, len(m))
	for key, value := range m {
		switch v := value.(type) {
		case string:
			attributes = append(attributes, chromago.NewStringAttribute(key, v))
		case float64:
			attributes = append(attributes, chromago.NewFloatAttribute(key, v))
		case int:
			attributes = append(attributes, chromago.NewIntAttribute(key, int64(v)))
		case int64:
			attributes = append(attributes, chromago.NewIntAttribute(key, v))
		case bool:
			attributes = append(attributes, chromago.NewBoolAttribute(key, v))
		default:
			attributes = append(attributes, chromago.NewStringAttribute(key, fmt.Sprintf("%v", v)))
		}
	}
	return chromago.NewDocumentMetadata(attributes...)
}

// metadataToMap converts chroma DocumentMetadata back to a plain map. The
// DocumentMetadata type has no public accessor for all values, so the
// conversion goes through JSON.
func metadataToMap(metadata chromago.DocumentMetadata) map[string]interface{} {
	if metadata == nil {
		return map[string]interface{}{}
	}
	jsonBytes, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("WARN: could not marshal document metadata: %v", err)
		return map[string]interface{}{}
	}
	var metadataMap map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &metadataMap); err != nil {
		log.Printf("WARN: could not unmarshal document metadata: %v", err)
		return map[string]interface{}{}
	}
	return metadataMap
}
