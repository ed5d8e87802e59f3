package scheduling

import (
	"context"
	"errors"
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

// Repository stores appointments in Postgres.
type Repository struct {
	db DB
}

// NewRepository initializes a repo backed by a pgx pool (or mock).
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("scheduling: database required")
	}
	return &Repository{db: db}
}

const uniqueViolation = "23505"

// Create inserts a pending appointment. A partial unique index on
// appointment_date for non-cancelled rows makes double booking a constraint
// violation, surfaced as ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, req *CreateAppointmentRequest, when time.Time) (*Appointment, error) {
	id := uuid.New()
	query := `
		INSERT INTO appointments (id, patient_name, patient_phone, patient_email, appointment_date, appointment_type, notes, medical_files, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.PatientName,
		req.PatientPhone,
		req.PatientEmail,
		when,
		req.AppointmentType,
		req.Notes,
		req.MedicalFiles,
		StatusPending,
	).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("scheduling: insert appointment: %w", err)
	}

	return &Appointment{
		ID:              id.String(),
		PatientName:     req.PatientName,
		PatientPhone:    req.PatientPhone,
		PatientEmail:    req.PatientEmail,
		AppointmentDate: when,
		AppointmentType: req.AppointmentType,
		Notes:           req.Notes,
		MedicalFiles:    req.MedicalFiles,
		Status:          StatusPending,
		CreatedAt:       createdAt,
	}, nil
}

// ListBetween returns appointments with appointment_date in [from, to],
// cancelled rows included; the calendar filters them.
func (r *Repository) ListBetween(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	query := `
		SELECT id, patient_name, patient_phone, patient_email, appointment_date, appointment_type, notes, medical_files, status, created_at
		FROM appointments
		WHERE appointment_date >= $1 AND appointment_date <= $2
		ORDER BY appointment_date
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list appointments: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var a Appointment
		var notes *string
		if err := rows.Scan(
			&a.ID,
			&a.PatientName,
			&a.PatientPhone,
			&a.PatientEmail,
			&a.AppointmentDate,
			&a.AppointmentType,
			&notes,
			&a.MedicalFiles,
			&a.Status,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scheduling: scan appointment: %w", err)
		}
		if notes != nil {
			a.Notes = *notes
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scheduling: iterate appointments: %w", err)
	}
	return out, nil
}

// UpdateStatus moves an appointment through its lifecycle.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status AppointmentStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE appointments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("scheduling: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
