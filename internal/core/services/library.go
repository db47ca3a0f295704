package services

import (
	"context"
	"fmt"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driving"
	"github.com/inkwell-labs/bookdrip/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages an owner's ingested books.
type LibraryService struct {
	artifacts driven.ArtifactStore
	library   driven.LibraryStore
}

// NewLibraryService creates a library service.
func NewLibraryService(artifacts driven.ArtifactStore, library driven.LibraryStore) *LibraryService {
	return &LibraryService{
		artifacts: artifacts,
		library:   library,
	}
}

// List returns the owner's books, newest first.
func (s *LibraryService) List(ctx context.Context, ownerID string) ([]domain.Book, error) {
	return s.library.ListBooks(ctx, ownerID)
}

// Select makes the given artifact the owner's current book.
func (s *LibraryService) Select(ctx context.Context, ownerID, artifactID string) error {
	return s.library.SetCurrent(ctx, ownerID, artifactID)
}

// Info summarises a book's artifact and the owner's progress in it.
func (s *LibraryService) Info(ctx context.Context, ownerID, artifactID string) (*domain.BookInfo, error) {
	// The record must belong to the owner; artifact ids embed the owner
	// prefix but the check keeps lookups honest.
	book, err := s.library.GetBook(ctx, ownerID, artifactID)
	if err != nil {
		return nil, err
	}

	info, err := s.artifacts.Info(ctx, artifactID)
	if err != nil {
		return nil, err
	}

	info.Position = book.Position
	if info.Lines > 0 {
		info.PercentRead = book.Position * 100 / info.Lines
		if info.PercentRead > 100 {
			info.PercentRead = 100
		}
	}
	return info, nil
}

// Remove deletes the book record and its artifact file.
func (s *LibraryService) Remove(ctx context.Context, ownerID, artifactID string) error {
	if _, err := s.library.GetBook(ctx, ownerID, artifactID); err != nil {
		return err
	}

	if err := s.artifacts.Remove(ctx, artifactID); err != nil {
		return fmt.Errorf("removing artifact: %w", err)
	}
	if err := s.library.DeleteBook(ctx, ownerID, artifactID); err != nil {
		return fmt.Errorf("removing book record: %w", err)
	}

	logger.Debug("removed %s from library of %s", artifactID, ownerID)
	return nil
}
