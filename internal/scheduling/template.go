package scheduling

import "time"

// dailySlots is the fixed weekday template: 30-minute slots from 09:00 to
// 16:30 with a lunch gap between 12:00 and 14:00. Identical every open day.
var dailySlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// SlotTemplate returns a copy of the daily slot template in ascending order.
func SlotTemplate() []string {
	out := make([]string, len(dailySlots))
	copy(out, dailySlots)
	return out
}

// isClosedDay reports whether the clinic is closed on the given weekday.
// Friday and Saturday are the clinic's weekend.
func isClosedDay(day time.Weekday) bool {
	return day == time.Friday || day == time.Saturday
}

// isTemplateSlot reports whether an HH:MM string is one of the bookable slots.
func isTemplateSlot(hhmm string) bool {
	for _, s := range dailySlots {
		if s == hhmm {
			return true
		}
	}
	return false
}
