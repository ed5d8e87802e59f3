// Package analytics records site conversion and engagement events.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInvalidEvent marks an event payload that failed validation.
var ErrInvalidEvent = errors.New("analytics: invalid event")

// Event is a recorded site interaction.
type Event struct {
	ID            string    `json:"id"`
	EventType     string    `json:"eventType"`
	EventCategory string    `json:"eventCategory"`
	EventData     string    `json:"eventData,omitempty"` // JSON string from the client
	SessionID     string    `json:"sessionId,omitempty"`
	UserAgent     string    `json:"userAgent,omitempty"`
	Referrer      string    `json:"referrer,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TrackRequest is the client payload. User agent and referrer come off the
// request headers, not the body.
type TrackRequest struct {
	EventType     string `json:"eventType"`
	EventCategory string `json:"eventCategory"`
	EventData     string `json:"eventData,omitempty"`
	SessionID     string `json:"sessionId,omitempty"`
}

// Validate checks the required event fields.
func (r *TrackRequest) Validate() error {
	if r.EventType == "" {
		return fmt.Errorf("%w: event type required", ErrInvalidEvent)
	}
	if r.EventCategory == "" {
		return fmt.Errorf("%w: event category required", ErrInvalidEvent)
	}
	return nil
}

// DB is the subset of pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository stores analytics events in Postgres.
type Repository struct {
	db DB
}

// NewRepository initializes a repo backed by a pgx pool (or mock).
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("analytics: database required")
	}
	return &Repository{db: db}
}

// Track inserts one event and returns it with its generated identifiers.
func (r *Repository) Track(ctx context.Context, req *TrackRequest, userAgent, referrer string) (*Event, error) {
	id := uuid.New()
	query := `
		INSERT INTO analytics_events (id, event_type, event_category, event_data, session_id, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.EventType,
		req.EventCategory,
		nullable(req.EventData),
		nullable(req.SessionID),
		nullable(userAgent),
		nullable(referrer),
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("analytics: insert event: %w", err)
	}

	return &Event{
		ID:            id.String(),
		EventType:     req.EventType,
		EventCategory: req.EventCategory,
		EventData:     req.EventData,
		SessionID:     req.SessionID,
		UserAgent:     userAgent,
		Referrer:      referrer,
		CreatedAt:     createdAt,
	}, nil
}

// List returns events newest first, for reporting.
func (r *Repository) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, event_type, event_category, event_data, session_id, user_agent, referrer, created_at
		FROM analytics_events
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var data, session, agent, referrer *string
		if err := rows.Scan(&e.ID, &e.EventType, &e.EventCategory, &data, &session, &agent, &referrer, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("analytics: scan event: %w", err)
		}
		e.EventData = deref(data)
		e.SessionID = deref(session)
		e.UserAgent = deref(agent)
		e.Referrer = deref(referrer)
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
