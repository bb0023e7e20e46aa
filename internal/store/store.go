package store

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"turismocombita/internal/content"
)

// DocumentName is the name the content document is saved under.
const DocumentName = "guia-turistica-combita"

var ErrDocumentExists = errors.New("document already exists")

// Store is the content datastore seen by handlers.
type Store interface {
	Read(ctx context.Context) (*content.Document, error)
	// Update runs fn on a fresh copy of the document. When fn returns an
	// error nothing is written and that error is returned unchanged.
	Update(ctx context.Context, fn func(doc *content.Document) error) (*content.Document, error)
}

// DocumentStore serializes every read-modify-write through one mutex, so
// concurrent updates apply one after another instead of overwriting each
// other.
type DocumentStore struct {
	backend Backend
	name    string
	now     func() time.Time

	mu       sync.Mutex
	lastSave atomic.Pointer[[sha256.Size]byte]
}

func NewDocumentStore(b Backend, name string) *DocumentStore {
	return &DocumentStore{backend: b, name: name, now: time.Now}
}

func (s *DocumentStore) Read(ctx context.Context) (*content.Document, error) {
	data, err := s.backend.Load(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.name, err)
	}
	return decode(data)
}

func (s *DocumentStore) Update(ctx context.Context, fn func(doc *content.Document) error) (*content.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	data, err := s.save(ctx, doc)
	if err != nil {
		return nil, err
	}
	// Callers get the document as saved, the same value a later Read yields.
	return decode(data)
}

// Init saves doc only when no document exists yet.
func (s *DocumentStore) Init(ctx context.Context, doc *content.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.backend.Load(ctx, s.name)
	switch {
	case err == nil:
		return ErrDocumentExists
	case !errors.Is(err, ErrDocumentNotFound):
		return err
	}
	_, err = s.save(ctx, doc)
	return err
}

func (s *DocumentStore) save(ctx context.Context, doc *content.Document) ([]byte, error) {
	doc.Estadisticas = content.RecomputeStats(doc)
	doc.Touch(s.now())

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.name, err)
	}
	sum := sha256.Sum256(data)
	s.lastSave.Store(&sum)

	if err := s.backend.Save(ctx, s.name, data); err != nil {
		return nil, fmt.Errorf("save %s: %w", s.name, err)
	}
	return data, nil
}

// ownWrite reports whether data is exactly what this store last saved.
func (s *DocumentStore) ownWrite(data []byte) bool {
	last := s.lastSave.Load()
	if last == nil {
		return false
	}
	return sha256.Sum256(data) == *last
}

func decode(data []byte) (*content.Document, error) {
	var doc content.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
