// Package repository persists resume documents as opaque JSON blobs keyed
// by document id. Backends are pluggable: in-memory for tests, Redis for
// session-style storage, Postgres for durable storage.
package repository

import (
	"context"
	"errors"

	"resume-builder/internal/model"
)

// ErrNotFound is returned when no document exists under the given id.
var ErrNotFound = errors.New("document not found")

type DocumentRepo interface {
	Load(ctx context.Context, id string) (*model.Document, error)
	Save(ctx context.Context, id string, doc *model.Document) error
	Delete(ctx context.Context, id string) error
}
