package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/inkwell-labs/bookdrip/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
)

// Store is a SQLite-backed metadata store for the book library.
// Artifact bodies live on disk; this store holds the records and
// read cursors.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.bookdrip/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".bookdrip", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// LibraryStore returns a LibraryStore interface backed by this store.
func (s *Store) LibraryStore() driven.LibraryStore {
	return &libraryStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Library Store ====================

// libraryStore implements driven.LibraryStore.
type libraryStore struct {
	store *Store
}

var _ driven.LibraryStore = (*libraryStore)(nil)

// SaveBook inserts or updates a book, keyed by (owner, artifact).
func (l *libraryStore) SaveBook(ctx context.Context, book domain.Book) error {
	now := time.Now().UTC()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO books (id, owner_id, artifact_id, title, position, is_current, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, artifact_id) DO UPDATE SET
			title = excluded.title,
			position = excluded.position,
			is_current = excluded.is_current,
			updated_at = excluded.updated_at
	`, book.ID, book.OwnerID, book.ArtifactID, book.Title, book.Position,
		boolToInt(book.Current), book.CreatedAt, book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving book: %w", err)
	}

	if book.Current {
		return l.clearOtherCurrent(ctx, book.OwnerID, book.ArtifactID)
	}
	return nil
}

// GetBook retrieves one book.
func (l *libraryStore) GetBook(ctx context.Context, ownerID, artifactID string) (*domain.Book, error) {
	row := l.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, artifact_id, title, position, is_current, created_at, updated_at
		FROM books WHERE owner_id = ? AND artifact_id = ?
	`, ownerID, artifactID)
	return scanBook(row)
}

// ListBooks returns all books for an owner, newest first.
func (l *libraryStore) ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT id, owner_id, artifact_id, title, position, is_current, created_at, updated_at
		FROM books WHERE owner_id = ?
		ORDER BY created_at DESC, artifact_id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		book, err := scanBookRow(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return books, nil
}

// CurrentBook returns the owner's active book.
func (l *libraryStore) CurrentBook(ctx context.Context, ownerID string) (*domain.Book, error) {
	row := l.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, artifact_id, title, position, is_current, created_at, updated_at
		FROM books WHERE owner_id = ? AND is_current = 1
	`, ownerID)
	book, err := scanBook(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoCurrentBook
	}
	return book, err
}

// SetCurrent marks one book active and clears the flag on the rest.
func (l *libraryStore) SetCurrent(ctx context.Context, ownerID, artifactID string) error {
	result, err := l.store.db.ExecContext(ctx, `
		UPDATE books SET is_current = 1, updated_at = ?
		WHERE owner_id = ? AND artifact_id = ?
	`, time.Now().UTC(), ownerID, artifactID)
	if err != nil {
		return fmt.Errorf("setting current book: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting current book: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return l.clearOtherCurrent(ctx, ownerID, artifactID)
}

// SetPosition stores the owner's read cursor for a book.
func (l *libraryStore) SetPosition(ctx context.Context, ownerID, artifactID string, position int) error {
	result, err := l.store.db.ExecContext(ctx, `
		UPDATE books SET position = ?, updated_at = ?
		WHERE owner_id = ? AND artifact_id = ?
	`, position, time.Now().UTC(), ownerID, artifactID)
	if err != nil {
		return fmt.Errorf("setting position: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting position: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Position reads the owner's cursor for a book.
func (l *libraryStore) Position(ctx context.Context, ownerID, artifactID string) (int, error) {
	row := l.store.db.QueryRowContext(ctx, `
		SELECT position FROM books WHERE owner_id = ? AND artifact_id = ?
	`, ownerID, artifactID)

	var position int
	if err := row.Scan(&position); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("reading position: %w", err)
	}
	return position, nil
}

// DeleteBook removes a book record.
func (l *libraryStore) DeleteBook(ctx context.Context, ownerID, artifactID string) error {
	_, err := l.store.db.ExecContext(ctx, `
		DELETE FROM books WHERE owner_id = ? AND artifact_id = ?
	`, ownerID, artifactID)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}

// clearOtherCurrent drops the current flag from every other book of the
// owner.
func (l *libraryStore) clearOtherCurrent(ctx context.Context, ownerID, artifactID string) error {
	_, err := l.store.db.ExecContext(ctx, `
		UPDATE books SET is_current = 0
		WHERE owner_id = ? AND artifact_id != ? AND is_current = 1
	`, ownerID, artifactID)
	if err != nil {
		return fmt.Errorf("clearing current flag: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row *sql.Row) (*domain.Book, error) {
	book, err := scanBookFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

func scanBookRow(rows *sql.Rows) (*domain.Book, error) {
	return scanBookFrom(rows)
}

func scanBookFrom(s scanner) (*domain.Book, error) {
	var book domain.Book
	var current int
	var createdAt, updatedAt sql.NullTime
	if err := s.Scan(&book.ID, &book.OwnerID, &book.ArtifactID, &book.Title,
		&book.Position, &current, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning book: %w", err)
	}

	book.Current = current != 0
	if createdAt.Valid {
		book.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		book.UpdatedAt = updatedAt.Time
	}
	return &book, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
