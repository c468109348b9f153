// Package upload accepts single-file uploads, stores them under generated
// names and optionally records their metadata.
package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is the persisted metadata of one stored upload.
type Record struct {
	ID           string    `json:"id"`
	StoredName   string    `json:"storedName"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository handles upload record persistence in PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts rec and fills in its generated ID and CreatedAt.
func (r *Repository) Create(ctx context.Context, rec *Record) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO uploads (stored_name, original_name, content_type, size, url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		rec.StoredName, rec.OriginalName, rec.ContentType, rec.Size, rec.URL,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert upload record: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, stored_name, original_name, content_type, size, url, created_at
		 FROM uploads
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list upload records: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		var rec Record
		err := row.Scan(&rec.ID, &rec.StoredName, &rec.OriginalName, &rec.ContentType, &rec.Size, &rec.URL, &rec.CreatedAt)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan upload records: %w", err)
	}
	return records, nil
}
