package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowbook-service/api"
	"glowbook-service/internal/availability"
	"glowbook-service/internal/lock"
	"glowbook-service/internal/models"
	"glowbook-service/pkg/response"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type Service struct {
	store              Store
	locker             lock.Locker
	granularityMinutes int
}

func NewService(store Store, locker lock.Locker, granularityMinutes int) *Service {
	if granularityMinutes <= 0 {
		granularityMinutes = 15
	}
	return &Service{store: store, locker: locker, granularityMinutes: granularityMinutes}
}

type Store interface {
	// Artists
	CreateArtist(ctx context.Context, artist *models.Artist) error
	GetArtist(ctx context.Context, artistID string) (*models.Artist, error)

	// Weekly availability
	UpsertWeeklyAvailability(ctx context.Context, artistID string, days []models.DayHours) error
	GetWeeklyAvailability(ctx context.Context, artistID string) ([]models.DayHours, error)

	// Appointments
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, artistID, clientID *string, date *time.Time, status *string) ([]*models.Appointment, error)
	ListDayAppointments(ctx context.Context, artistID string, date time.Time) ([]*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, status string, reason *string) error

	// Reviews
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, reviewID string) (*models.Review, error)
	ListReviews(ctx context.Context, artistID string) ([]*models.Review, error)
	GetArtistRating(ctx context.Context, artistID string) (*float64, int, error)
}

// Artists

func (s *Service) CreateArtist(ctx context.Context, req *api.ArtistRequest) (*api.ArtistResponse, error) {
	const op = "service.CreateArtist"

	if req.DisplayName == "" {
		return nil, fmt.Errorf("%s: display_name is required: %w", op, response.ErrBadRequest)
	}

	artist := &models.Artist{
		ID:          uuid.NewString(),
		DisplayName: req.DisplayName,
		Specialty:   req.Specialty,
		Bio:         req.Bio,
	}

	if err := s.store.CreateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetArtist(ctx, artist.ID)
}

func (s *Service) GetArtist(ctx context.Context, artistID string) (*api.ArtistResponse, error) {
	const op = "service.GetArtist"

	artist, err := s.store.GetArtist(ctx, artistID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rating, count, err := s.store.GetArtistRating(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.ArtistResponse{
		ID:          artist.ID,
		DisplayName: artist.DisplayName,
		Specialty:   artist.Specialty,
		Bio:         artist.Bio,
		Rating:      rating,
		ReviewCount: count,
	}, nil
}

// Weekly availability

func (s *Service) SetWeeklyAvailability(ctx context.Context, artistID string, req *api.WeeklyAvailabilityRequest) (*api.WeeklyAvailabilityResponse, error) {
	const op = "service.SetWeeklyAvailability"

	if _, err := s.store.GetArtist(ctx, artistID); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[int]bool, 7)
	rows := make([]models.DayHours, 0, 7)

	for _, day := range req.Days {
		if day.Weekday < int(availability.Sunday) || day.Weekday > int(availability.Saturday) {
			return nil, fmt.Errorf("%s: weekday %d out of range: %w", op, day.Weekday, response.ErrBadRequest)
		}
		if seen[day.Weekday] {
			return nil, fmt.Errorf("%s: duplicate weekday %d: %w", op, day.Weekday, response.ErrBadRequest)
		}
		seen[day.Weekday] = true

		if day.IsOpen {
			start := availability.MinutesOfDay(day.StartHour, day.StartMinute)
			end := availability.MinutesOfDay(day.EndHour, day.EndMinute)
			unspecified := start == 0 && end == 0
			if !unspecified && (start < 0 || end > availability.MinutesPerDay || start >= end) {
				return nil, fmt.Errorf("%s: invalid hours for weekday %d: %w", op, day.Weekday, response.ErrBadRequest)
			}
		}

		rows = append(rows, models.DayHours{
			ArtistID:    artistID,
			Weekday:     day.Weekday,
			IsOpen:      day.IsOpen,
			StartHour:   day.StartHour,
			StartMinute: day.StartMinute,
			EndHour:     day.EndHour,
			EndMinute:   day.EndMinute,
		})
	}

	// Unmentioned weekdays persist as closed so the stored week is
	// always exactly seven rows.
	for wd := int(availability.Sunday); wd <= int(availability.Saturday); wd++ {
		if !seen[wd] {
			rows = append(rows, models.DayHours{ArtistID: artistID, Weekday: wd})
		}
	}

	if err := s.store.UpsertWeeklyAvailability(ctx, artistID, rows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetWeeklyAvailability(ctx, artistID)
}

func (s *Service) GetWeeklyAvailability(ctx context.Context, artistID string) (*api.WeeklyAvailabilityResponse, error) {
	const op = "service.GetWeeklyAvailability"

	if _, err := s.store.GetArtist(ctx, artistID); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.store.GetWeeklyAvailability(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byWeekday := make(map[int]models.DayHours, len(stored))
	for _, day := range stored {
		byWeekday[day.Weekday] = day
	}

	days := make([]api.DayHours, 0, 7)
	for wd := int(availability.Sunday); wd <= int(availability.Saturday); wd++ {
		day, ok := byWeekday[wd]
		if !ok {
			days = append(days, api.DayHours{Weekday: wd})
			continue
		}
		days = append(days, api.DayHours{
			Weekday:     day.Weekday,
			IsOpen:      day.IsOpen,
			StartHour:   day.StartHour,
			StartMinute: day.StartMinute,
			EndHour:     day.EndHour,
			EndMinute:   day.EndMinute,
		})
	}

	return &api.WeeklyAvailabilityResponse{
		ArtistID: artistID,
		Days:     days,
	}, nil
}

// Slots

func (s *Service) GetDaySlots(ctx context.Context, artistID string, query *api.SlotQuery) (*api.DaySlotsResponse, error) {
	const op = "service.GetDaySlots"

	date, err := time.Parse(dateLayout, query.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrBadRequest)
	}

	weekly, err := s.weeklyForArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	day := weekly.Day(availability.WeekdayOf(date))

	appts, err := s.store.ListDayAppointments(ctx, artistID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booked := make([]availability.BookedInterval, 0, len(appts))
	for _, appt := range appts {
		booked = append(booked, appt.Interval())
	}

	windowStart, windowEnd := day.StartMinutes, day.EndMinutes
	if !day.IsOpen {
		windowStart, windowEnd = 0, availability.MinutesPerDay
	}
	if query.WindowStart != nil {
		windowStart = *query.WindowStart
	}
	if query.WindowEnd != nil {
		windowEnd = *query.WindowEnd
	}

	granularity := s.granularityMinutes
	if query.Granularity != nil {
		granularity = *query.Granularity
	}

	slots, err := availability.GenerateSlots(day, booked, windowStart, windowEnd, granularity, query.DurationMinutes)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidWindow) || errors.Is(err, availability.ErrInvalidGranularity) {
			return nil, fmt.Errorf("%s: %w: %w", op, err, response.ErrBadRequest)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]api.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, api.SlotResponse{
			StartMinutes: slot.StartMinutes,
			Label:        slot.Label,
			IsOffered:    slot.Offered,
		})
	}

	return &api.DaySlotsResponse{
		ArtistID: artistID,
		Date:     date.Format(dateLayout),
		IsOpen:   day.IsOpen,
		Slots:    result,
	}, nil
}

func (s *Service) weeklyForArtist(ctx context.Context, artistID string) (availability.WeeklyAvailability, error) {
	if _, err := s.store.GetArtist(ctx, artistID); err != nil {
		return availability.WeeklyAvailability{}, err
	}

	rows, err := s.store.GetWeeklyAvailability(ctx, artistID)
	if err != nil {
		return availability.WeeklyAvailability{}, err
	}

	return models.NormalizeWeek(rows), nil
}

// Appointments

func (s *Service) CreateAppointment(ctx context.Context, req *api.AppointmentRequest) (*api.AppointmentResponse, error) {
	const op = "service.CreateAppointment"

	if req.ArtistID == "" || req.ClientID == "" {
		return nil, fmt.Errorf("%s: artist_id and client_id are required: %w", op, response.ErrBadRequest)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrBadRequest)
	}

	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%s: duration must be positive: %w", op, response.ErrBadRequest)
	}
	if req.StartMinutes < 0 || req.StartMinutes+req.DurationMinutes > availability.MinutesPerDay {
		return nil, fmt.Errorf("%s: appointment does not fit in a day: %w", op, response.ErrBadRequest)
	}

	weekly, err := s.weeklyForArtist(ctx, req.ArtistID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	day := weekly.Day(availability.WeekdayOf(date))
	end := req.StartMinutes + req.DurationMinutes
	if !day.IsOpen || req.StartMinutes < day.StartMinutes || end > day.EndMinutes {
		return nil, fmt.Errorf("%s: outside working hours: %w", op, response.ErrSlotNotAvailable)
	}

	// One writer per artist-day: the lock covers the window between the
	// conflict check and the insert, so two devices cannot both pass
	// HasConflict for the same slot.
	lockKey := fmt.Sprintf("artist:%s:%s", req.ArtistID, date.Format(dateLayout))

	locked, err := s.locker.Lock(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	existing, err := s.store.ListDayAppointments(ctx, req.ArtistID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booked := make([]availability.BookedInterval, 0, len(existing))
	for _, appt := range existing {
		booked = append(booked, appt.Interval())
	}

	if availability.HasConflict(booked, req.StartMinutes, end) {
		return nil, fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
	}

	appt := &models.Appointment{
		ID:              uuid.NewString(),
		ArtistID:        req.ArtistID,
		ClientID:        req.ClientID,
		ServiceName:     req.ServiceName,
		Date:            date,
		StartMinutes:    req.StartMinutes,
		DurationMinutes: req.DurationMinutes,
		Status:          availability.StatusPending,
	}

	if err := s.store.CreateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAppointment(ctx, appt.ID)
}

func (s *Service) GetAppointment(ctx context.Context, appointmentID string) (*api.AppointmentResponse, error) {
	const op = "service.GetAppointment"

	appt, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return appointmentResponse(appt), nil
}

func (s *Service) ListAppointments(ctx context.Context, artistID, clientID *string, date *time.Time, status *string) ([]*api.AppointmentResponse, error) {
	const op = "service.ListAppointments"

	appts, err := s.store.ListAppointments(ctx, artistID, clientID, date, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		result = append(result, appointmentResponse(appt))
	}

	return result, nil
}

func (s *Service) ConfirmAppointment(ctx context.Context, appointmentID string) (*api.AppointmentResponse, error) {
	const op = "service.ConfirmAppointment"

	if err := s.transition(ctx, appointmentID, availability.StatusConfirmed, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAppointment(ctx, appointmentID)
}

func (s *Service) CancelAppointment(ctx context.Context, appointmentID string, reason *string) (*api.AppointmentResponse, error) {
	const op = "service.CancelAppointment"

	if err := s.transition(ctx, appointmentID, availability.StatusCancelled, reason); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAppointment(ctx, appointmentID)
}

func (s *Service) CompleteAppointment(ctx context.Context, appointmentID string) (*api.AppointmentResponse, error) {
	const op = "service.CompleteAppointment"

	if err := s.transition(ctx, appointmentID, availability.StatusCompleted, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAppointment(ctx, appointmentID)
}

func (s *Service) transition(ctx context.Context, appointmentID string, next availability.AppointmentStatus, reason *string) error {
	appt, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return response.ErrNotFound
		}
		return err
	}

	if !appt.Status.CanTransitionTo(next) {
		return fmt.Errorf("%s -> %s: %w", appt.Status, next, response.ErrInvalidTransition)
	}

	return s.store.UpdateAppointmentStatus(ctx, appointmentID, string(next), reason)
}

// FindScheduleAnomalies reports overlapping active appointments for an
// artist's day. A non-empty result means a double-booking slipped
// through and needs operator reconciliation.
func (s *Service) FindScheduleAnomalies(ctx context.Context, artistID string, dateStr string) ([]*api.AnomalyResponse, error) {
	const op = "service.FindScheduleAnomalies"

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrBadRequest)
	}

	if _, err := s.store.GetArtist(ctx, artistID); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	appts, err := s.store.ListDayAppointments(ctx, artistID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	intervals := make([]availability.BookedInterval, 0, len(appts))
	for _, appt := range appts {
		intervals = append(intervals, appt.Interval())
	}

	pairs := availability.FindOverlaps(intervals)

	result := make([]*api.AnomalyResponse, 0, len(pairs))
	for _, pair := range pairs {
		overlapStart := pair[0].StartMinutes
		if pair[1].StartMinutes > overlapStart {
			overlapStart = pair[1].StartMinutes
		}
		overlapEnd := pair[0].EndMinutes
		if pair[1].EndMinutes < overlapEnd {
			overlapEnd = pair[1].EndMinutes
		}

		result = append(result, &api.AnomalyResponse{
			ArtistID:       artistID,
			Date:           date.Format(dateLayout),
			AppointmentIDs: []string{pair[0].AppointmentID, pair[1].AppointmentID},
			OverlapStart:   overlapStart,
			OverlapEnd:     overlapEnd,
		})
	}

	return result, nil
}

// Reviews

func (s *Service) CreateReview(ctx context.Context, req *api.ReviewRequest) (*api.ReviewResponse, error) {
	const op = "service.CreateReview"

	if req.ArtistID == "" || req.ClientID == "" {
		return nil, fmt.Errorf("%s: artist_id and client_id are required: %w", op, response.ErrBadRequest)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%s: rating must be 1..5: %w", op, response.ErrBadRequest)
	}

	review := &models.Review{
		ID:       uuid.NewString(),
		ArtistID: req.ArtistID,
		ClientID: req.ClientID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.store.GetReview(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviewResponse(stored), nil
}

func (s *Service) ListReviews(ctx context.Context, artistID string) ([]*api.ReviewResponse, error) {
	const op = "service.ListReviews"

	if _, err := s.store.GetArtist(ctx, artistID); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reviews, err := s.store.ListReviews(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, reviewResponse(review))
	}

	return result, nil
}

func appointmentResponse(appt *models.Appointment) *api.AppointmentResponse {
	return &api.AppointmentResponse{
		ID:              appt.ID,
		ArtistID:        appt.ArtistID,
		ClientID:        appt.ClientID,
		ServiceName:     appt.ServiceName,
		Date:            appt.Date.Format(dateLayout),
		StartMinutes:    appt.StartMinutes,
		DurationMinutes: appt.DurationMinutes,
		StartLabel:      availability.FormatMinutes(appt.StartMinutes),
		Status:          string(appt.Status),
		CancelReason:    appt.CancelReason,
	}
}

func reviewResponse(review *models.Review) *api.ReviewResponse {
	return &api.ReviewResponse{
		ID:        review.ID,
		ArtistID:  review.ArtistID,
		ClientID:  review.ClientID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
