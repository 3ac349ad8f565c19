package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"talentcrm/internal/platform/metrics"
)

// Backend persists the encoded document. Read returns an error matching
// fs.ErrNotExist when nothing has been written yet.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Store loads and saves the document through a Backend. It holds no state
// between calls: every Load reads the backend again.
//
// Store does not lock. Two processes updating the same backend can lose
// each other's writes.
type Store struct {
	backend Backend
	logger  *slog.Logger
	metrics *metrics.Collector
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Store) {
		s.metrics = collector
	}
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current document. An absent document is initialized and
// saved. An undecodable one yields a fresh default document together with an
// error wrapping ErrUnreadable; the stored bytes are left untouched.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.backend.Read(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		doc := NewDocument()
		s.logger.InfoContext(ctx, "no document found, initializing empty store")
		if err := s.Save(ctx, doc); err != nil {
			s.logger.WarnContext(ctx, "initial document save failed", "error", err)
		}
		s.metrics.RecordLoad(nil)
		return doc, nil
	}
	if err != nil {
		return s.unreadable(ctx, err)
	}

	doc := &Document{}
	if err := doc.UnmarshalJSON(data); err != nil {
		return s.unreadable(ctx, err)
	}
	s.metrics.RecordLoad(nil)
	return doc, nil
}

func (s *Store) unreadable(ctx context.Context, cause error) (*Document, error) {
	err := fmt.Errorf("%w: %w", ErrUnreadable, cause)
	s.logger.ErrorContext(ctx, "document could not be read, using empty default", "error", cause)
	s.metrics.RecordLoad(err)
	return NewDocument(), err
}

// Snapshot is Load for readers: an unreadable document is already reported
// by Load, so the default document is returned without the error.
func (s *Store) Snapshot(ctx context.Context) (*Document, error) {
	doc, err := s.Load(ctx)
	if errors.Is(err, ErrUnreadable) {
		return doc, nil
	}
	return doc, err
}

// Save encodes and writes the whole document.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := doc.Encode()
	if err != nil {
		s.metrics.RecordSave(err)
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		s.metrics.RecordSave(err)
		s.logger.ErrorContext(ctx, "document save failed", "error", err)
		return fmt.Errorf("write document: %w", err)
	}
	s.metrics.RecordSave(nil)
	s.metrics.RecordIDs(doc.takeAllocated())
	return nil
}

// Update loads the document, applies fn and saves when fn reports a change.
// An unreadable document aborts the update so the stored bytes are never
// replaced by a default.
func (s *Store) Update(ctx context.Context, fn func(doc *Document) (bool, error)) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.Save(ctx, doc)
}
