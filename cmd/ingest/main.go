package main

import (
	"context"
	"log"
	"net/http"
	"time"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"

	"github.com/harivittal/bgai/config"
	"github.com/harivittal/bgai/services"
)

// One-shot batch loader: reads every verse record under the corpus directory
// and inserts it into the vector store. Bad records are skipped and reported;
// the batch itself only fails when its dependencies cannot be constructed.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Invalid configuration: %v", err)
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
	}

	chromaClient, err := chromago.NewHTTPClient()
	if err != nil {
		log.Fatalf("FATAL: Failed to create chroma client: %v", err)
	}
	defer func() {
		if closeErr := chromaClient.Close(); closeErr != nil {
			log.Printf("Warning: Failed to close chroma client: %v", closeErr)
		}
	}()

	collection, err := services.GetOrCreateCollection(chromaClient, cfg.Collection)
	if err != nil {
		log.Fatalf("FATAL: Failed to get or create collection: %v", err)
	}

	embedder := services.NewOllamaEmbedder(httpClient, cfg.OllamaURL, cfg.EmbedModel)
	store := services.NewChromaStore(collection)
	ingestService := services.NewIngestService(embedder, store)

	report, err := ingestService.IngestDirectory(context.Background(), cfg.CorpusDir)
	if err != nil {
		log.Fatalf("FATAL: Ingestion could not run: %v", err)
	}

	for _, failure := range report.Failures {
		log.Printf("SKIPPED: %s: %s", failure.File, failure.Reason)
	}
	log.Printf("Ingestion complete: %d indexed, %d skipped", report.Indexed, report.Skipped)
}
