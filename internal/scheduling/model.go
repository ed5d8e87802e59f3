// Package scheduling computes slot availability for the clinic's single
// physician and persists appointment bookings.
package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus tracks the booking lifecycle.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentType is the fixed set of visit types offered on the site.
type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFoodAllergy  AppointmentType = "food-allergy"
	TypeSkinTest     AppointmentType = "skin-test"
	TypeAsthma       AppointmentType = "asthma"
	TypeDrugAllergy  AppointmentType = "drug-allergy"
	TypeFollowUp     AppointmentType = "followup"
)

var appointmentTypes = map[AppointmentType]struct{}{
	TypeConsultation: {},
	TypeFoodAllergy:  {},
	TypeSkinTest:     {},
	TypeAsthma:       {},
	TypeDrugAllergy:  {},
	TypeFollowUp:     {},
}

var typeLabels = map[AppointmentType]string{
	TypeConsultation: "ייעוץ ראשוני",
	TypeFoodAllergy:  "בדיקת אלרגיה למזון",
	TypeSkinTest:     "בדיקת עור",
	TypeAsthma:       "בדיקת אסתמה",
	TypeDrugAllergy:  "בדיקת אלרגיה לתרופות",
	TypeFollowUp:     "ביקור מעקב",
}

// Label returns the Hebrew display name for the visit type.
func (t AppointmentType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Appointment is a persisted booking.
type Appointment struct {
	ID              string            `json:"id"`
	PatientName     string            `json:"patientName"`
	PatientPhone    string            `json:"patientPhone"`
	PatientEmail    string            `json:"patientEmail"`
	AppointmentDate time.Time         `json:"appointmentDate"`
	AppointmentType AppointmentType   `json:"appointmentType"`
	Notes           string            `json:"notes,omitempty"`
	MedicalFiles    []string          `json:"medicalFiles,omitempty"`
	Status          AppointmentStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// CreateAppointmentRequest carries the booking form payload.
type CreateAppointmentRequest struct {
	PatientName     string          `json:"patientName"`
	PatientPhone    string          `json:"patientPhone"`
	PatientEmail    string          `json:"patientEmail"`
	AppointmentDate string          `json:"appointmentDate"` // ISO-8601
	AppointmentType AppointmentType `json:"appointmentType"`
	Notes           string          `json:"notes,omitempty"`
	MedicalFiles    []string        `json:"medicalFiles,omitempty"`
}

// Validate checks required fields and returns the parsed appointment time.
func (r *CreateAppointmentRequest) Validate() (time.Time, error) {
	if len(strings.TrimSpace(r.PatientName)) < 2 {
		return time.Time{}, fmt.Errorf("%w: patient name required", ErrInvalidRequest)
	}
	if len(strings.TrimSpace(r.PatientPhone)) < 9 {
		return time.Time{}, fmt.Errorf("%w: valid phone required", ErrInvalidRequest)
	}
	if !strings.Contains(r.PatientEmail, "@") {
		return time.Time{}, fmt.Errorf("%w: valid email required", ErrInvalidRequest)
	}
	if _, ok := appointmentTypes[r.AppointmentType]; !ok {
		return time.Time{}, fmt.Errorf("%w: unknown appointment type %q", ErrInvalidRequest, r.AppointmentType)
	}
	when, err := time.Parse(time.RFC3339, r.AppointmentDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parse appointment date: %v", ErrInvalidRequest, err)
	}
	return when, nil
}

// Sentinel errors surfaced to handlers.
var (
	ErrSlotTaken      = errors.New("scheduling: slot already booked")
	ErrInvalidSlot    = errors.New("scheduling: time is not a bookable slot")
	ErrInvalidRequest = errors.New("scheduling: invalid booking request")
	ErrNotFound       = errors.New("scheduling: appointment not found")
)
