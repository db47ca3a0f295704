package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driving"
	"github.com/inkwell-labs/bookdrip/internal/logger"
	"github.com/inkwell-labs/bookdrip/internal/naming"
	"github.com/inkwell-labs/bookdrip/internal/segment"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService converts source documents into published artifacts.
type IngestService struct {
	extractors map[domain.Format]driven.Extractor
	segmenter  *segment.Segmenter
	artifacts  driven.ArtifactStore
	library    driven.LibraryStore
}

// NewIngestService creates an ingest service dispatching over the given
// extractors.
func NewIngestService(
	extractors []driven.Extractor,
	segmenter *segment.Segmenter,
	artifacts driven.ArtifactStore,
	library driven.LibraryStore,
) *IngestService {
	byFormat := make(map[domain.Format]driven.Extractor, len(extractors))
	for _, e := range extractors {
		byFormat[e.Format()] = e
	}
	return &IngestService{
		extractors: byFormat,
		segmenter:  segmenter,
		artifacts:  artifacts,
		library:    library,
	}
}

// Ingest extracts the document at path, segments it under the given
// policy, writes the artifact and registers it as the owner's current
// book. Returns the artifact id.
func (s *IngestService) Ingest(ctx context.Context, ownerID, path string, policy domain.SegmentationPolicy) (string, error) {
	format, err := domain.ParseFormat(path)
	if err != nil {
		return "", err
	}

	extractor, ok := s.extractors[format]
	if !ok {
		return "", fmt.Errorf("%w: no extractor for %s", domain.ErrUnsupportedFormat, format)
	}

	logger.Debug("extracting %s document: %s", format, path)
	extraction, err := extractor.Extract(ctx, path)
	if err != nil {
		return "", err
	}

	artifactID := naming.ArtifactID(ownerID, extraction.Title)
	logger.Debug("writing artifact %s (%d blocks, policy %s)", artifactID, len(extraction.Blocks), policy)

	if err := s.writeArtifact(ctx, artifactID, extraction.Blocks, policy); err != nil {
		return "", err
	}

	book := domain.Book{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		ArtifactID: artifactID,
		Title:      extraction.Title,
		Position:   0,
		Current:    true,
	}
	if err := s.library.SaveBook(ctx, book); err != nil {
		return "", fmt.Errorf("registering book: %w", err)
	}

	logger.Info("ingested %q as %s", extraction.Title, artifactID)
	return artifactID, nil
}

// writeArtifact segments every block and streams the units into a new
// artifact. The writer is discarded on any failure so no partial file
// is published.
func (s *IngestService) writeArtifact(ctx context.Context, artifactID string, blocks []domain.Block, policy domain.SegmentationPolicy) error {
	writer, err := s.artifacts.Create(ctx, artifactID)
	if err != nil {
		return fmt.Errorf("creating artifact: %w", err)
	}

	for _, block := range blocks {
		for _, unit := range s.segmenter.Segment(block.Text, policy) {
			if err := writer.WriteLine(unit); err != nil {
				_ = writer.Discard()
				return fmt.Errorf("writing artifact line: %w", err)
			}
		}
	}

	if err := writer.Finalize(); err != nil {
		return fmt.Errorf("finalizing artifact: %w", err)
	}
	return nil
}
