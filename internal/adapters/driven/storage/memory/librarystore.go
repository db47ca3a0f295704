// Package memory provides in-memory store implementations used by
// tests and as lightweight defaults when persistence is not needed.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is an in-memory implementation of driven.LibraryStore.
type LibraryStore struct {
	mu    sync.RWMutex
	books map[string]map[string]domain.Book // ownerID -> artifactID -> book
}

// NewLibraryStore creates a new in-memory library store.
func NewLibraryStore() *LibraryStore {
	return &LibraryStore{
		books: make(map[string]map[string]domain.Book),
	}
}

// SaveBook stores or updates a book, keyed by (owner, artifact).
func (s *LibraryStore) SaveBook(_ context.Context, book domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	shelf, ok := s.books[book.OwnerID]
	if !ok {
		shelf = make(map[string]domain.Book)
		s.books[book.OwnerID] = shelf
	}
	if existing, ok := shelf[book.ArtifactID]; ok && book.CreatedAt.IsZero() {
		book.CreatedAt = existing.CreatedAt
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now
	shelf[book.ArtifactID] = book

	if book.Current {
		s.clearOtherCurrentLocked(book.OwnerID, book.ArtifactID)
	}
	return nil
}

// GetBook retrieves a book by owner and artifact ID.
func (s *LibraryStore) GetBook(_ context.Context, ownerID, artifactID string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[ownerID][artifactID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &book, nil
}

// ListBooks returns all books for an owner, newest first.
func (s *LibraryStore) ListBooks(_ context.Context, ownerID string) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Book
	for _, book := range s.books[ownerID] {
		result = append(result, book)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ArtifactID < result[j].ArtifactID
	})
	return result, nil
}

// CurrentBook returns the owner's active book.
func (s *LibraryStore) CurrentBook(_ context.Context, ownerID string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, book := range s.books[ownerID] {
		if book.Current {
			return &book, nil
		}
	}
	return nil, domain.ErrNoCurrentBook
}

// SetCurrent marks one book active and clears the flag on the rest.
func (s *LibraryStore) SetCurrent(_ context.Context, ownerID, artifactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[ownerID][artifactID]
	if !ok {
		return domain.ErrNotFound
	}
	book.Current = true
	book.UpdatedAt = time.Now().UTC()
	s.books[ownerID][artifactID] = book
	s.clearOtherCurrentLocked(ownerID, artifactID)
	return nil
}

// SetPosition stores the owner's read cursor for a book.
func (s *LibraryStore) SetPosition(_ context.Context, ownerID, artifactID string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[ownerID][artifactID]
	if !ok {
		return domain.ErrNotFound
	}
	book.Position = position
	book.UpdatedAt = time.Now().UTC()
	s.books[ownerID][artifactID] = book
	return nil
}

// Position reads the owner's cursor for a book.
func (s *LibraryStore) Position(_ context.Context, ownerID, artifactID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[ownerID][artifactID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return book.Position, nil
}

// DeleteBook removes a book record.
func (s *LibraryStore) DeleteBook(_ context.Context, ownerID, artifactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books[ownerID], artifactID)
	return nil
}

func (s *LibraryStore) clearOtherCurrentLocked(ownerID, artifactID string) {
	for id, book := range s.books[ownerID] {
		if id != artifactID && book.Current {
			book.Current = false
			s.books[ownerID][id] = book
		}
	}
}
