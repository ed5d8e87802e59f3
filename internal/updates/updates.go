// Package updates serves the medical news items shown on the site.
package updates

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Update is one published medical news item.
type Update struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// DB is the subset of pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository reads medical updates from Postgres.
type Repository struct {
	db DB
}

// NewRepository initializes a repo backed by a pgx pool (or mock).
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("updates: database required")
	}
	return &Repository{db: db}
}

// List returns updates newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Update, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, title, summary, source, source_url, published_at, category, image_url
		FROM medical_updates
		ORDER BY published_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("updates: list: %w", err)
	}
	defer rows.Close()

	var items []Update
	for rows.Next() {
		var u Update
		var sourceURL, category, imageURL *string
		if err := rows.Scan(&u.ID, &u.Title, &u.Summary, &u.Source, &sourceURL, &u.PublishedAt, &category, &imageURL); err != nil {
			return nil, fmt.Errorf("updates: scan: %w", err)
		}
		if sourceURL != nil {
			u.SourceURL = *sourceURL
		}
		if category != nil {
			u.Category = *category
		}
		if imageURL != nil {
			u.ImageURL = *imageURL
		}
		items = append(items, u)
	}
	return items, rows.Err()
}
