package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/harivittal/bgai/models"
)

// IngestService loads a directory of verse record files into the vector
// store. One bad document never stops the batch: each failure is logged,
// counted in the report, and processing moves on to the next file.
type IngestService struct {
	embedder Embedder
	store    VectorStore
}

// NewIngestService creates an ingestion service.
func NewIngestService(embedder Embedder, store VectorStore) *IngestService {
	return &IngestService{
		embedder: embedder,
		store:    store,
	}
}

// IngestDirectory processes every *.json file under dir, in filesystem
// enumeration order. It returns an error only when the directory itself
// cannot be read; per-document outcomes are reported in the IngestReport.
func (s *IngestService) IngestDirectory(ctx context.Context, dir string) (*models.IngestReport, error) {
	log.Printf("INGEST: Starting ingestion from: %s", dir)

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("corpus directory %s is not readable: %w", dir, err)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus directory %s: %w", dir, err)
	}

	report := &models.IngestReport{}
	for _, path := range paths {
		if err := s.ingestFile(ctx, path); err != nil {
			log.Printf("INGEST WARN: Skipping %s: %v", filepath.Base(path), err)
			report.Skipped++
			report.Failures = append(report.Failures, models.IngestFailure{
				File:   filepath.Base(path),
				Reason: err.Error(),
			})
			continue
		}
		report.Indexed++
	}

	log.Printf("INGEST: Finished: %d indexed, %d skipped", report.Indexed, report.Skipped)
	return report, nil
}

// ingestFile runs one record through normalize, embed, insert. Any error
// means the file is skipped, never that the batch aborts.
func (s *IngestService) ingestFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: empty file", ErrMalformedRecord)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	verse, err := NormalizeRecord(data)
	if err != nil {
		return err
	}

	embedding, err := s.embedder.EmbedPassage(ctx, verse.Content)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	if err := s.store.Insert(ctx, verse, embedding); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	log.Printf("INGEST: Stored %s", describeRecord(verse, path))
	return nil
}

// describeRecord labels a stored verse by its source page when the record
// carries one, falling back to the file name.
func describeRecord(verse models.Verse, path string) string {
	if page, ok := verse.Metadata["source_page"]; ok {
		return fmt.Sprintf("page %v", page)
	}
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
