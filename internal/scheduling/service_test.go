package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

type fakeCreator struct {
	err  error
	last *CreateAppointmentRequest
}

func (f *fakeCreator) Create(_ context.Context, req *CreateAppointmentRequest, when time.Time) (*Appointment, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &Appointment{
		ID:              "appt-1",
		PatientName:     req.PatientName,
		AppointmentDate: when,
		AppointmentType: req.AppointmentType,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	booked []string
	done   chan struct{}
}

func (n *recordingNotifier) NotifyAppointmentBooked(_ context.Context, appt *Appointment) error {
	n.mu.Lock()
	n.booked = append(n.booked, appt.ID)
	n.mu.Unlock()
	if n.done != nil {
		close(n.done)
	}
	return nil
}

func newTestService(t *testing.T, creator AppointmentCreator, notifier BookingNotifier) *Service {
	t.Helper()
	loc := clinicTZ(t)
	cal := NewCalendar(&stubSource{}, loc)
	return NewService(creator, cal, notifier, loc, logging.New("error"), nil)
}

func TestCreateAppointmentHappyPath(t *testing.T) {
	creator := &fakeCreator{}
	notifier := &recordingNotifier{done: make(chan struct{})}
	svc := newTestService(t, creator, notifier)

	req := validRequest()
	appt, err := svc.CreateAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "appt-1", appt.ID)

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never sent")
	}
}

func TestCreateAppointmentRejectsClosedDay(t *testing.T) {
	svc := newTestService(t, &fakeCreator{}, nil)

	req := validRequest()
	req.AppointmentDate = "2026-09-05T10:00:00+03:00" // Saturday
	_, err := svc.CreateAppointment(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCreateAppointmentRejectsOffTemplateTime(t *testing.T) {
	svc := newTestService(t, &fakeCreator{}, nil)

	req := validRequest()
	req.AppointmentDate = "2026-08-31T13:00:00+03:00" // lunch gap
	_, err := svc.CreateAppointment(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc := newTestService(t, &fakeCreator{}, nil)

	tests := []func(*CreateAppointmentRequest){
		func(r *CreateAppointmentRequest) { r.PatientName = "א" },
		func(r *CreateAppointmentRequest) { r.PatientPhone = "123" },
		func(r *CreateAppointmentRequest) { r.PatientEmail = "not-an-email" },
		func(r *CreateAppointmentRequest) { r.AppointmentType = "massage" },
		func(r *CreateAppointmentRequest) { r.AppointmentDate = "tomorrow at noon" },
	}
	for i, mutate := range tests {
		req := validRequest()
		mutate(req)
		_, err := svc.CreateAppointment(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRequest, "case %d", i)
	}
}

func TestCreateAppointmentPropagatesConflict(t *testing.T) {
	svc := newTestService(t, &fakeCreator{err: ErrSlotTaken}, nil)

	_, err := svc.CreateAppointment(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateAppointmentPropagatesStorageError(t *testing.T) {
	svc := newTestService(t, &fakeCreator{err: errors.New("db down")}, nil)

	_, err := svc.CreateAppointment(context.Background(), validRequest())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrSlotTaken)
}

// timestampKeyedCreator conflicts only when two bookings carry the exact
// same timestamp, the way the database unique index does.
type timestampKeyedCreator struct {
	taken map[int64]bool
}

func (c *timestampKeyedCreator) Create(_ context.Context, req *CreateAppointmentRequest, when time.Time) (*Appointment, error) {
	if c.taken == nil {
		c.taken = make(map[int64]bool)
	}
	if c.taken[when.Unix()] {
		return nil, ErrSlotTaken
	}
	c.taken[when.Unix()] = true
	return &Appointment{
		ID:              "appt-ts",
		PatientName:     req.PatientName,
		AppointmentDate: when,
		AppointmentType: req.AppointmentType,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

func TestCreateAppointmentTruncatesSeconds(t *testing.T) {
	creator := &timestampKeyedCreator{}
	svc := newTestService(t, creator, nil)

	first := validRequest()
	first.AppointmentDate = "2026-08-31T10:00:00+03:00"
	appt, err := svc.CreateAppointment(context.Background(), first)
	require.NoError(t, err)
	assert.Zero(t, appt.AppointmentDate.Second())

	// Same slot with stray seconds must still collide with the first booking.
	second := validRequest()
	second.AppointmentDate = "2026-08-31T10:00:30+03:00"
	_, err = svc.CreateAppointment(context.Background(), second)
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateAppointmentTruncatesNanoseconds(t *testing.T) {
	creator := &timestampKeyedCreator{}
	svc := newTestService(t, creator, nil)

	req := validRequest()
	req.AppointmentDate = "2026-08-31T10:00:00.250+03:00"
	appt, err := svc.CreateAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, appt.AppointmentDate.Nanosecond())
}
