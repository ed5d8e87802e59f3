// Package contact handles the site's contact form: persisting submissions
// and notifying the clinic by email.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSubmission marks a submission that failed validation.
var ErrInvalidSubmission = errors.New("contact: invalid submission")

// Submission is a persisted contact-form entry.
type Submission struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmitRequest carries the contact form payload.
type SubmitRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message,omitempty"`
}

// Validate checks the required form fields.
func (r *SubmitRequest) Validate() error {
	if len(strings.TrimSpace(r.FullName)) < 2 {
		return fmt.Errorf("%w: full name too short", ErrInvalidSubmission)
	}
	if len(strings.TrimSpace(r.Phone)) < 9 {
		return fmt.Errorf("%w: phone too short", ErrInvalidSubmission)
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: bad email", ErrInvalidSubmission)
	}
	if strings.TrimSpace(r.Subject) == "" {
		return fmt.Errorf("%w: subject required", ErrInvalidSubmission)
	}
	return nil
}
