package availability

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay is the exclusive upper bound for a minutes-of-day value.
const MinutesPerDay = 1440

var (
	ErrInvalidWindow      = errors.New("window start must be before window end")
	ErrInvalidGranularity = errors.New("granularity must be positive")
)

// Weekday numbering follows calendar convention: Sunday=1 .. Saturday=7.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdayOf maps a calendar date to its Weekday.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(int(date.Weekday()) + 1)
}

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Active reports whether an appointment with this status occupies the calendar.
// Cancelled and completed appointments stay on record but never block a slot.
func (s AppointmentStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo enforces the appointment lifecycle:
// pending -> confirmed|cancelled, confirmed -> cancelled|completed.
// Cancelled and completed are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	}
	return false
}

type DayAvailability struct {
	IsOpen       bool
	StartMinutes int
	EndMinutes   int
}

// WeeklyAvailability holds exactly one DayAvailability per weekday,
// indexed by Weekday. The zero value is a fully closed week.
type WeeklyAvailability [7]DayAvailability

func (w WeeklyAvailability) Day(d Weekday) DayAvailability {
	if d < Sunday || d > Saturday {
		return DayAvailability{}
	}
	return w[d-1]
}

func (w *WeeklyAvailability) SetDay(d Weekday, day DayAvailability) {
	if d < Sunday || d > Saturday {
		return
	}
	w[d-1] = day
}

type BookedInterval struct {
	StartMinutes  int
	EndMinutes    int
	AppointmentID string
	Status        AppointmentStatus
}

// TimeSlot is derived per query and never persisted.
type TimeSlot struct {
	StartMinutes int    `json:"start_minutes"`
	Label        string `json:"label"`
	Offered      bool   `json:"is_offered"`
}

// GenerateSlots enumerates candidate start times at the given granularity
// over [windowStart, windowEnd) and marks each as offered or not against
// the day's open hours and the active booked intervals.
//
// duration is the requested service duration in minutes. When it is known
// (> 0) the whole duration must fit inside the open window and the slot
// must not overlap any active interval. When it is unknown (0) the checks
// degrade to "start lies within open hours" and exact-start collision.
//
// An empty offered set is a valid result, not an error.
func GenerateSlots(day DayAvailability, booked []BookedInterval, windowStart, windowEnd, granularity, duration int) ([]TimeSlot, error) {
	if windowStart >= windowEnd {
		return nil, ErrInvalidWindow
	}
	if granularity <= 0 {
		return nil, ErrInvalidGranularity
	}

	slots := make([]TimeSlot, 0, (windowEnd-windowStart)/granularity)
	for t := windowStart; t < windowEnd; t += granularity {
		slots = append(slots, TimeSlot{
			StartMinutes: t,
			Label:        FormatMinutes(t),
			Offered:      isOffered(day, booked, t, duration),
		})
	}

	return slots, nil
}

func isOffered(day DayAvailability, booked []BookedInterval, t, duration int) bool {
	if !day.IsOpen {
		return false
	}

	if t < day.StartMinutes {
		return false
	}
	if duration > 0 {
		if t+duration > day.EndMinutes {
			return false
		}
	} else if t >= day.EndMinutes {
		return false
	}

	for _, b := range booked {
		if !b.Status.Active() {
			continue
		}
		if duration > 0 {
			if t < b.EndMinutes && t+duration > b.StartMinutes {
				return false
			}
		} else if t == b.StartMinutes {
			return false
		}
	}

	return true
}

// IsDateOpen resolves the date's weekday against the weekly configuration.
// Used to disable calendar dates before any slot enumeration is attempted.
func IsDateOpen(weekly WeeklyAvailability, date time.Time) bool {
	return weekly.Day(WeekdayOf(date)).IsOpen
}

// HasConflict reports whether any active interval overlaps the half-open
// candidate window [candidateStart, candidateEnd). Callers creating an
// appointment must run this immediately before the write.
func HasConflict(existing []BookedInterval, candidateStart, candidateEnd int) bool {
	for _, b := range existing {
		if !b.Status.Active() {
			continue
		}
		if candidateStart < b.EndMinutes && candidateEnd > b.StartMinutes {
			return true
		}
	}
	return false
}

// FindOverlaps returns every pair of active intervals that overlap each
// other. A non-empty result is a data-consistency anomaly: two active
// appointments competing for the same time on one calendar.
func FindOverlaps(existing []BookedInterval) [][2]BookedInterval {
	var pairs [][2]BookedInterval

	for i := 0; i < len(existing); i++ {
		if !existing[i].Status.Active() {
			continue
		}
		for j := i + 1; j < len(existing); j++ {
			if !existing[j].Status.Active() {
				continue
			}
			if existing[i].StartMinutes < existing[j].EndMinutes &&
				existing[i].EndMinutes > existing[j].StartMinutes {
				pairs = append(pairs, [2]BookedInterval{existing[i], existing[j]})
			}
		}
	}

	return pairs
}

// MinutesOfDay converts an hour/minute pair to minutes-of-day.
func MinutesOfDay(hour, minute int) int {
	return hour*60 + minute
}

// FormatMinutes renders a minutes-of-day value as a 12-hour clock label,
// e.g. "9:00 AM", "1:15 PM". Display only, never used for comparisons.
func FormatMinutes(m int) string {
	hour := m / 60
	minute := m % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHour, minute, suffix)
}
