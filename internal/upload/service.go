package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fileport/service/internal/storage"
)

// ErrRecordsDisabled is returned by List when no record store is wired.
var ErrRecordsDisabled = errors.New("upload records are not enabled")

// Records persists and lists upload metadata. *Repository implements it.
type Records interface {
	Create(ctx context.Context, rec *Record) error
	List(ctx context.Context, limit int) ([]Record, error)
}

// File describes an incoming upload.
type File struct {
	Name        string // client-supplied, untrusted
	Size        int64
	ContentType string
	Content     io.Reader
}

// Service contains the upload business logic.
type Service struct {
	store   storage.Storage
	namer   *Namer
	records Records
}

// NewService creates an upload Service. records may be nil.
func NewService(store storage.Storage, namer *Namer, records Records) *Service {
	return &Service{store: store, namer: namer, records: records}
}

// HasRecords reports whether upload metadata is being persisted.
func (s *Service) HasRecords() bool {
	return s.records != nil
}

// Store writes f under a generated name and returns its record. The
// record's ID and CreatedAt are only set when a record store is wired.
func (s *Service) Store(ctx context.Context, f File) (*Record, error) {
	name := s.namer.Name(f.Name)

	if err := s.store.Upload(ctx, name, f.Content, f.Size, f.ContentType); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	rec := &Record{
		StoredName:   name,
		OriginalName: f.Name,
		ContentType:  f.ContentType,
		Size:         f.Size,
		URL:          s.store.PublicURL(name),
	}

	if s.records != nil {
		// The object is already stored and addressable, so a metadata
		// failure is reported but does not fail the upload.
		if err := s.records.Create(ctx, rec); err != nil {
			slog.ErrorContext(ctx, "record upload failed", "stored_name", name, "error", err)
		}
	}

	return rec, nil
}

// List returns the most recent upload records.
func (s *Service) List(ctx context.Context, limit int) ([]Record, error) {
	if s.records == nil {
		return nil, ErrRecordsDisabled
	}
	return s.records.List(ctx, limit)
}
