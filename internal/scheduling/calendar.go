package scheduling

import (
	"context"
	"fmt"
	"time"
)

// AppointmentSource lists appointments for availability computation.
type AppointmentSource interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]Appointment, error)
}

// Calendar computes bookable slots for a calendar date.
type Calendar struct {
	source AppointmentSource
	loc    *time.Location
}

// NewCalendar creates a calendar over the given appointment source. A nil
// location falls back to the clinic default.
func NewCalendar(source AppointmentSource, loc *time.Location) *Calendar {
	if source == nil {
		panic("scheduling: appointment source required")
	}
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{source: source, loc: loc}
}

// AvailableSlots returns the bookable HH:MM strings for date's calendar day,
// in ascending template order. Closed days return an empty list without
// consulting storage. An empty list is a meaningful result; fetch failures
// return an error instead.
func (c *Calendar) AvailableSlots(ctx context.Context, date time.Time) ([]string, error) {
	local := date.In(c.loc)
	if isClosedDay(local.Weekday()) {
		return []string{}, nil
	}

	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	endOfDay := startOfDay.Add(24*time.Hour - time.Nanosecond)

	appointments, err := c.source.ListBetween(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list appointments for %s: %w", startOfDay.Format("2006-01-02"), err)
	}

	booked := make(map[string]struct{}, len(appointments))
	for _, appt := range appointments {
		if appt.Status == StatusCancelled {
			continue
		}
		booked[appt.AppointmentDate.In(c.loc).Format("15:04")] = struct{}{}
	}

	slots := make([]string, 0, len(dailySlots))
	for _, slot := range dailySlots {
		if _, taken := booked[slot]; !taken {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}
