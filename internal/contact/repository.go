package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository stores contact submissions in Postgres.
type Repository struct {
	db DB
}

// NewRepository initializes a repo backed by a pgx pool (or mock).
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("contact: database required")
	}
	return &Repository{db: db}
}

// Create inserts a submission and returns the stored row.
func (r *Repository) Create(ctx context.Context, req *SubmitRequest) (*Submission, error) {
	id := uuid.New()
	query := `
		INSERT INTO contact_submissions (id, full_name, phone, email, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var message *string
	if req.Message != "" {
		message = &req.Message
	}
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.FullName,
		req.Phone,
		req.Email,
		req.Subject,
		message,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("contact: insert submission: %w", err)
	}

	return &Submission{
		ID:        id.String(),
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: createdAt,
	}, nil
}

// List returns submissions newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, full_name, phone, email, subject, message, is_read, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("contact: list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var s Submission
		var message *string
		if err := rows.Scan(&s.ID, &s.FullName, &s.Phone, &s.Email, &s.Subject, &message, &s.IsRead, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("contact: scan submission: %w", err)
		}
		if message != nil {
			s.Message = *message
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// MarkRead flags a submission as handled.
func (r *Repository) MarkRead(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_submissions SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("contact: mark read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact: submission %s not found", id)
	}
	return nil
}
