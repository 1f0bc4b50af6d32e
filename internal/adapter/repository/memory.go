package repository

import (
	"context"
	"encoding/json"
	"sync"

	"resume-builder/internal/model"
)

// MemoryRepo keeps documents in-process. Blobs are stored as JSON so the
// memory backend round-trips documents exactly like the others.
type MemoryRepo struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{blobs: map[string][]byte{}}
}

func (r *MemoryRepo) Load(_ context.Context, id string) (*model.Document, error) {
	r.mu.RLock()
	raw, ok := r.blobs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

func (r *MemoryRepo) Save(_ context.Context, id string, doc *model.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.blobs[id] = raw
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.blobs, id)
	r.mu.Unlock()
	return nil
}
