package models

import (
	"time"

	"glowbook-service/internal/availability"
)

// Default open hours applied when a day is marked open but has no bounds.
const (
	DefaultStartMinutes = 9 * 60
	DefaultEndMinutes   = 17 * 60
)

type Artist struct {
	ID          string    `db:"artist_id"`
	DisplayName string    `db:"display_name"`
	Specialty   string    `db:"specialty"`
	Bio         string    `db:"bio"`
	CreatedAt   time.Time `db:"created_at"`
}

// DayHours is the persisted hour/minute-pair form of one weekday's
// availability. The engine never sees this shape; it is normalized to
// minutes-of-day first.
type DayHours struct {
	ArtistID    string `db:"artist_id"`
	Weekday     int    `db:"weekday"`
	IsOpen      bool   `db:"is_open"`
	StartHour   int    `db:"start_hour"`
	StartMinute int    `db:"start_minute"`
	EndHour     int    `db:"end_hour"`
	EndMinute   int    `db:"end_minute"`
}

// Normalize converts the stored row to the engine's representation.
// A malformed row degrades to closed, never to permissive.
func (d DayHours) Normalize() availability.DayAvailability {
	if !d.IsOpen {
		return availability.DayAvailability{}
	}

	start := availability.MinutesOfDay(d.StartHour, d.StartMinute)
	end := availability.MinutesOfDay(d.EndHour, d.EndMinute)

	if start == 0 && end == 0 {
		start = DefaultStartMinutes
		end = DefaultEndMinutes
	}

	if start < 0 || end > availability.MinutesPerDay || start >= end {
		return availability.DayAvailability{}
	}

	return availability.DayAvailability{
		IsOpen:       true,
		StartMinutes: start,
		EndMinutes:   end,
	}
}

// NormalizeWeek builds the fixed seven-day structure from whatever rows
// are present. Missing weekdays default to closed.
func NormalizeWeek(rows []DayHours) availability.WeeklyAvailability {
	var weekly availability.WeeklyAvailability
	for _, row := range rows {
		weekly.SetDay(availability.Weekday(row.Weekday), row.Normalize())
	}
	return weekly
}

type Appointment struct {
	ID              string                         `db:"appointment_id"`
	ArtistID        string                         `db:"artist_id"`
	ClientID        string                         `db:"client_id"`
	ServiceName     string                         `db:"service_name"`
	Date            time.Time                      `db:"appointment_date"`
	StartMinutes    int                            `db:"start_minutes"`
	DurationMinutes int                            `db:"duration_minutes"`
	Status          availability.AppointmentStatus `db:"status"`
	CancelReason    *string                        `db:"cancel_reason"`
	CreatedAt       time.Time                      `db:"created_at"`
	UpdatedAt       time.Time                      `db:"updated_at"`
}

func (a Appointment) EndMinutes() int {
	return a.StartMinutes + a.DurationMinutes
}

// Interval is the appointment's read-only projection fed to the engine.
func (a Appointment) Interval() availability.BookedInterval {
	return availability.BookedInterval{
		StartMinutes:  a.StartMinutes,
		EndMinutes:    a.EndMinutes(),
		AppointmentID: a.ID,
		Status:        a.Status,
	}
}

type Review struct {
	ID        string    `db:"review_id"`
	ArtistID  string    `db:"artist_id"`
	ClientID  string    `db:"client_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}
