package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resume-builder/internal/model"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresRepo stores each document as a jsonb blob in the documents table.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

func (r *PostgresRepo) Load(ctx context.Context, id string) (*model.Document, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM documents WHERE id=$1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

func (r *PostgresRepo) Save(ctx context.Context, id string, doc *model.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = r.pool.Exec(ctx, `INSERT INTO documents (id, data, created_at, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		id, raw, now, now)
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	return err
}
