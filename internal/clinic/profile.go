// Package clinic holds the clinic's public profile and opening hours.
package clinic

import "time"

// DayHours is the opening window for one day. Nil means closed.
type DayHours struct {
	Open  string `json:"open"`  // "09:00" in 24-hour format
	Close string `json:"close"` // "17:00" in 24-hour format
}

// WeeklyHours maps weekdays to opening windows. The clinic week runs
// Sunday through Thursday; Friday and Saturday stay nil.
type WeeklyHours struct {
	Sunday    *DayHours `json:"sunday,omitempty"`
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
}

// ForDay returns the opening window for a weekday.
func (w *WeeklyHours) ForDay(weekday time.Weekday) *DayHours {
	switch weekday {
	case time.Sunday:
		return w.Sunday
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return nil
	}
}

// Profile is the clinic's public information served to the site.
type Profile struct {
	Name        string      `json:"name"`
	Doctor      string      `json:"doctor"`
	Specialty   string      `json:"specialty"`
	Phone       string      `json:"phone,omitempty"`
	WhatsApp    string      `json:"whatsapp,omitempty"`
	Email       string      `json:"email,omitempty"`
	Address     string      `json:"address,omitempty"`
	Timezone    string      `json:"timezone"`
	Hours       WeeklyHours `json:"hours"`
	Emergency   string      `json:"emergency"`
}

// DefaultProfile returns the clinic profile used until one is saved.
func DefaultProfile() *Profile {
	weekday := &DayHours{Open: "09:00", Close: "17:00"}
	return &Profile{
		Name:      "מרפאת אלרגיה - ד״ר אנה ברמלי",
		Doctor:    "ד״ר אנה ברמלי",
		Specialty: "אלרגיה ואימונולוגיה קלינית",
		Timezone:  "Asia/Jerusalem",
		Hours: WeeklyHours{
			Sunday:    weekday,
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
		},
		Emergency: "במקרה חירום יש לחייג 101",
	}
}

// IsOpenAt reports whether the clinic is open at the given time, in the
// profile's timezone.
func (p *Profile) IsOpenAt(t time.Time) bool {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		loc = time.UTC
	}
	local := t.In(loc)

	hours := p.Hours.ForDay(local.Weekday())
	if hours == nil {
		return false
	}

	openTime, err := time.Parse("15:04", hours.Open)
	if err != nil {
		return false
	}
	closeTime, err := time.Parse("15:04", hours.Close)
	if err != nil {
		return false
	}

	minutes := local.Hour()*60 + local.Minute()
	return minutes >= openTime.Hour()*60+openTime.Minute() && minutes < closeTime.Hour()*60+closeTime.Minute()
}
