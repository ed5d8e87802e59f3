package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/bramliclinic/clinic-platform/internal/contact"
	"github.com/bramliclinic/clinic-platform/internal/scheduling"
	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Service composes clinic notification emails. It implements
// scheduling.BookingNotifier and contact.Notifier.
type Service struct {
	sender      EmailSender
	clinicEmail string
	loc         *time.Location
	logger      *logging.Logger
}

// NewService creates the notification service. loc controls how dates are
// rendered in email bodies.
func NewService(sender EmailSender, clinicEmail string, loc *time.Location, logger *logging.Logger) *Service {
	if sender == nil {
		panic("notify: email sender is required")
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{sender: sender, clinicEmail: clinicEmail, loc: loc, logger: logger}
}

// NotifyAppointmentBooked emails the clinic about a new booking.
func (s *Service) NotifyAppointmentBooked(ctx context.Context, appt *scheduling.Appointment) error {
	when := appt.AppointmentDate.In(s.loc)
	fields := []bodyField{
		{"שם מלא", appt.PatientName},
		{"טלפון", appt.PatientPhone},
		{"אימייל", appt.PatientEmail},
		{"סוג ביקור", appt.AppointmentType.Label()},
		{"מועד", when.Format("02/01/2006 15:04")},
	}
	if appt.Notes != "" {
		fields = append(fields, bodyField{"הערות", appt.Notes})
	}
	if len(appt.MedicalFiles) > 0 {
		fields = append(fields, bodyField{"מסמכים רפואיים", strings.Join(appt.MedicalFiles, ", ")})
	}

	msg := EmailMessage{
		To:      s.clinicEmail,
		Subject: fmt.Sprintf("תור חדש: %s - %s", appt.AppointmentType.Label(), when.Format("02/01/2006 15:04")),
		Body:    plainBody(fields),
		HTML:    htmlBody("תור חדש נקבע באתר", fields),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: booking notification: %w", err)
	}
	return nil
}

// NotifyContactSubmitted emails the clinic about a contact-form submission.
func (s *Service) NotifyContactSubmitted(ctx context.Context, sub *contact.Submission) error {
	fields := []bodyField{
		{"שם מלא", sub.FullName},
		{"טלפון", sub.Phone},
		{"אימייל", sub.Email},
		{"נושא", sub.Subject},
	}
	if sub.Message != "" {
		fields = append(fields, bodyField{"הודעה", sub.Message})
	}
	fields = append(fields, bodyField{"תאריך", sub.CreatedAt.In(s.loc).Format("02/01/2006 15:04")})

	msg := EmailMessage{
		To:      s.clinicEmail,
		Subject: fmt.Sprintf("פנייה חדשה מהאתר: %s", sub.Subject),
		Body:    plainBody(fields),
		HTML:    htmlBody("פנייה חדשה מהאתר", fields),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: contact notification: %w", err)
	}
	return nil
}

type bodyField struct {
	Label string
	Value string
}

func plainBody(fields []bodyField) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	return b.String()
}

// htmlBody renders the clinic's RTL notification template.
func htmlBody(title string, fields []bodyField) string {
	var rows strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&rows, `
            <div class="field">
              <div class="label">%s:</div>
              <div class="value">%s</div>
            </div>`, html.EscapeString(f.Label), html.EscapeString(f.Value))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
      <html dir="rtl" lang="he">
      <head>
        <meta charset="UTF-8">
        <style>
          body { font-family: Arial, sans-serif; line-height: 1.6; direction: rtl; }
          .container { max-width: 600px; margin: 0 auto; padding: 20px; }
          .header { background-color: #0d9488; color: white; padding: 20px; text-align: center; }
          .content { padding: 20px; background-color: #f9fafb; }
          .field { margin-bottom: 15px; }
          .label { font-weight: bold; color: #374151; }
          .value { color: #1f2937; margin-top: 5px; }
          .footer { padding: 15px; text-align: center; color: #6b7280; font-size: 12px; }
        </style>
      </head>
      <body>
        <div class="container">
          <div class="header">
            <h1>%s</h1>
          </div>
          <div class="content">%s
          </div>
          <div class="footer">
            פנייה זו התקבלה דרך אתר ד״ר אנה ברמלי
          </div>
        </div>
      </body>
      </html>`, html.EscapeString(title), rows.String())
}
