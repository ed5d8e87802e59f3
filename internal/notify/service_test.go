package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bramliclinic/clinic-platform/internal/contact"
	"github.com/bramliclinic/clinic-platform/internal/scheduling"
)

type capturingSender struct {
	sent []EmailMessage
	err  error
}

func (c *capturingSender) Send(_ context.Context, msg EmailMessage) error {
	c.sent = append(c.sent, msg)
	return c.err
}

func jerusalem(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	return loc
}

func TestNotifyAppointmentBooked(t *testing.T) {
	sender := &capturingSender{}
	svc := NewService(sender, "clinic@example.com", jerusalem(t), nil)

	appt := &scheduling.Appointment{
		ID:              "a1",
		PatientName:     "ישראל ישראלי",
		PatientPhone:    "050-1234567",
		PatientEmail:    "israel@example.com",
		AppointmentDate: time.Date(2026, 8, 31, 10, 0, 0, 0, jerusalem(t)),
		AppointmentType: scheduling.TypeSkinTest,
		Notes:           "אלרגיה ידועה לבוטנים",
	}
	require.NoError(t, svc.NotifyAppointmentBooked(context.Background(), appt))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "clinic@example.com", msg.To)
	assert.Contains(t, msg.Subject, "בדיקת עור")
	assert.Contains(t, msg.Subject, "31/08/2026 10:00")
	assert.Contains(t, msg.Body, "ישראל ישראלי")
	assert.Contains(t, msg.HTML, `dir="rtl"`)
	assert.Contains(t, msg.HTML, "אלרגיה ידועה לבוטנים")
}

func TestNotifyContactSubmitted(t *testing.T) {
	sender := &capturingSender{}
	svc := NewService(sender, "clinic@example.com", jerusalem(t), nil)

	sub := &contact.Submission{
		ID:        "c1",
		FullName:  "דנה כהן",
		Phone:     "052-7654321",
		Email:     "dana@example.com",
		Subject:   "שאלה על תבחיני עור",
		CreatedAt: time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, svc.NotifyContactSubmitted(context.Background(), sub))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "פנייה חדשה מהאתר: שאלה על תבחיני עור", msg.Subject)
	assert.Contains(t, msg.HTML, "דנה כהן")
	// Optional message omitted: the HTML has no empty message block.
	assert.NotContains(t, msg.HTML, "הודעה:")
}

func TestNotifyEscapesHTMLInUserInput(t *testing.T) {
	sender := &capturingSender{}
	svc := NewService(sender, "clinic@example.com", jerusalem(t), nil)

	sub := &contact.Submission{
		FullName:  "<script>alert(1)</script>",
		Phone:     "0501234567",
		Email:     "x@example.com",
		Subject:   "בדיקה",
		CreatedAt: time.Now(),
	}
	require.NoError(t, svc.NotifyContactSubmitted(context.Background(), sub))

	require.Len(t, sender.sent, 1)
	assert.NotContains(t, sender.sent[0].HTML, "<script>")
}

func TestNotifyPropagatesSendError(t *testing.T) {
	sender := &capturingSender{err: assert.AnError}
	svc := NewService(sender, "clinic@example.com", jerusalem(t), nil)

	err := svc.NotifyContactSubmitted(context.Background(), &contact.Submission{
		FullName: "א", Phone: "0", Email: "e", Subject: "s", CreatedAt: time.Now(),
	})
	assert.Error(t, err)
}

func TestStubSenderNeverFails(t *testing.T) {
	stub := NewStubEmailSender(nil)
	assert.NoError(t, stub.Send(context.Background(), EmailMessage{To: "a@b.c", Subject: "x"}))
}
