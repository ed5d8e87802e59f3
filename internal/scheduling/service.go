package scheduling

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bramliclinic/clinic-platform/internal/observability/metrics"
	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

var schedulingTracer = otel.Tracer("clinic.internal.scheduling")

// AppointmentCreator persists a validated booking.
type AppointmentCreator interface {
	Create(ctx context.Context, req *CreateAppointmentRequest, when time.Time) (*Appointment, error)
}

// BookingNotifier sends the clinic a notification about a new booking.
type BookingNotifier interface {
	NotifyAppointmentBooked(ctx context.Context, appt *Appointment) error
}

// Service orchestrates booking creation: validation, slot rules, persistence
// and the async confirmation email.
type Service struct {
	creator  AppointmentCreator
	calendar *Calendar
	notifier BookingNotifier
	loc      *time.Location
	logger   *logging.Logger
	metrics  *metrics.SchedulingMetrics
}

// NewService constructs a scheduling service.
func NewService(creator AppointmentCreator, calendar *Calendar, notifier BookingNotifier, loc *time.Location, logger *logging.Logger, m *metrics.SchedulingMetrics) *Service {
	if creator == nil {
		panic("scheduling: appointment creator required")
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		creator:  creator,
		calendar: calendar,
		notifier: notifier,
		loc:      loc,
		logger:   logger,
		metrics:  m,
	}
}

// AvailableSlots exposes the calendar computation with latency metrics.
func (s *Service) AvailableSlots(ctx context.Context, date time.Time) ([]string, error) {
	ctx, span := schedulingTracer.Start(ctx, "scheduling.available_slots")
	defer span.End()

	start := time.Now()
	slots, err := s.calendar.AvailableSlots(ctx, date)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
	}
	s.metrics.ObserveSlotQuery(outcome, time.Since(start).Seconds())
	return slots, err
}

// CreateAppointment validates the request against the slot rules and inserts
// the booking. The clinic notification is sent on a detached context so a
// slow mailer never blocks the response.
func (s *Service) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	ctx, span := schedulingTracer.Start(ctx, "scheduling.create_appointment")
	defer span.End()
	span.SetAttributes(attribute.String("clinic.appointment_type", string(req.AppointmentType)))

	when, err := req.Validate()
	if err != nil {
		return nil, err
	}
	// Slots are minute-aligned; stray seconds would slip past the unique
	// index and double-book the slot.
	when = when.Truncate(time.Minute)

	local := when.In(s.loc)
	if isClosedDay(local.Weekday()) || !isTemplateSlot(local.Format("15:04")) {
		return nil, ErrInvalidSlot
	}

	appt, err := s.creator.Create(ctx, req, when)
	if err != nil {
		status := "error"
		if err == ErrSlotTaken {
			status = "conflict"
		}
		s.metrics.ObserveBooking(string(req.AppointmentType), status)
		span.RecordError(err)
		return nil, err
	}

	s.metrics.ObserveBooking(string(req.AppointmentType), "created")
	s.logger.Info("appointment booked",
		"id", appt.ID,
		"type", appt.AppointmentType,
		"date", appt.AppointmentDate.In(s.loc).Format(time.RFC3339),
	)

	if s.notifier != nil {
		go func(a Appointment) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.notifier.NotifyAppointmentBooked(notifyCtx, &a); err != nil {
				s.logger.Error("scheduling: booking notification failed", "error", err, "id", a.ID)
			}
		}(*appt)
	}

	return appt, nil
}
