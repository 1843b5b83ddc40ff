package api

import "time"

type ArtistRequest struct {
	DisplayName string `json:"display_name"`
	Specialty   string `json:"specialty"`
	Bio         string `json:"bio"`
}

type ArtistResponse struct {
	ID          string   `json:"artist_id"`
	DisplayName string   `json:"display_name"`
	Specialty   string   `json:"specialty"`
	Bio         string   `json:"bio"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount int      `json:"review_count"`
}

// DayHours carries one weekday's hours in hour/minute pair form, the
// on-the-wire representation of availability.
type DayHours struct {
	Weekday     int  `json:"weekday"`
	IsOpen      bool `json:"is_open"`
	StartHour   int  `json:"start_hour"`
	StartMinute int  `json:"start_minute"`
	EndHour     int  `json:"end_hour"`
	EndMinute   int  `json:"end_minute"`
}

type WeeklyAvailabilityRequest struct {
	Days []DayHours `json:"days"`
}

type WeeklyAvailabilityResponse struct {
	ArtistID string     `json:"artist_id"`
	Days     []DayHours `json:"days"`
}

type SlotResponse struct {
	StartMinutes int    `json:"start_minutes"`
	Label        string `json:"label"`
	IsOffered    bool   `json:"is_offered"`
}

// SlotQuery carries the slot-grid parameters. Window and granularity
// are optional; the service falls back to the day's open hours and the
// configured granularity. DurationMinutes of zero means the service
// duration is not yet known.
type SlotQuery struct {
	Date            string
	WindowStart     *int
	WindowEnd       *int
	Granularity     *int
	DurationMinutes int
}

type DaySlotsResponse struct {
	ArtistID string         `json:"artist_id"`
	Date     string         `json:"date"`
	IsOpen   bool           `json:"is_open"`
	Slots    []SlotResponse `json:"slots"`
}

type AppointmentRequest struct {
	ArtistID        string `json:"artist_id"`
	ClientID        string `json:"client_id"`
	ServiceName     string `json:"service_name"`
	Date            string `json:"date"`
	StartMinutes    int    `json:"start_minutes"`
	DurationMinutes int    `json:"duration_minutes"`
}

type AppointmentResponse struct {
	ID              string  `json:"appointment_id"`
	ArtistID        string  `json:"artist_id"`
	ClientID        string  `json:"client_id"`
	ServiceName     string  `json:"service_name"`
	Date            string  `json:"date"`
	StartMinutes    int     `json:"start_minutes"`
	DurationMinutes int     `json:"duration_minutes"`
	StartLabel      string  `json:"start_label"`
	Status          string  `json:"status"`
	CancelReason    *string `json:"cancel_reason,omitempty"`
}

type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type AnomalyResponse struct {
	ArtistID       string   `json:"artist_id"`
	Date           string   `json:"date"`
	AppointmentIDs []string `json:"appointment_ids"`
	OverlapStart   int      `json:"overlap_start_minutes"`
	OverlapEnd     int      `json:"overlap_end_minutes"`
}

type ReviewRequest struct {
	ArtistID string `json:"artist_id"`
	ClientID string `json:"client_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type ReviewResponse struct {
	ID        string    `json:"review_id"`
	ArtistID  string    `json:"artist_id"`
	ClientID  string    `json:"client_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
