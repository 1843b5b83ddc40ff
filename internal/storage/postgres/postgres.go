package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"glowbook-service/internal/availability"
	"glowbook-service/internal/models"
	"glowbook-service/pkg/response"

	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// #### artists ####

func (s *Storage) CreateArtist(ctx context.Context, artist *models.Artist) error {
	const op = "storage.postgres.CreateArtist"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artists
		(artist_id, display_name, specialty, bio)
		VALUES ($1, $2, $3, $4)`,
		artist.ID,
		artist.DisplayName,
		artist.Specialty,
		artist.Bio,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23505" {
			return fmt.Errorf("%s: %w", op, response.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetArtist(ctx context.Context, artistID string) (*models.Artist, error) {
	const op = "storage.postgres.GetArtist"

	var artist models.Artist

	err := s.db.QueryRowContext(ctx,
		`SELECT artist_id, display_name, specialty, bio, created_at
		FROM artists WHERE artist_id=$1`, artistID).
		Scan(
			&artist.ID,
			&artist.DisplayName,
			&artist.Specialty,
			&artist.Bio,
			&artist.CreatedAt,
		)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &artist, nil
}

// #### weekly availability ####

func (s *Storage) UpsertWeeklyAvailability(ctx context.Context, artistID string, days []models.DayHours) error {
	const op = "storage.postgres.UpsertWeeklyAvailability"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, day := range days {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO artist_availability
			(artist_id, weekday, is_open, start_hour, start_minute, end_hour, end_minute)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (artist_id, weekday)
			DO UPDATE
			SET is_open = EXCLUDED.is_open,
				start_hour = EXCLUDED.start_hour,
				start_minute = EXCLUDED.start_minute,
				end_hour = EXCLUDED.end_hour,
				end_minute = EXCLUDED.end_minute`,
			artistID,
			day.Weekday,
			day.IsOpen,
			day.StartHour,
			day.StartMinute,
			day.EndHour,
			day.EndMinute,
		)
		if err != nil {
			sqlErr, ok := err.(*pq.Error)
			if ok && sqlErr.Code == "23503" {
				return fmt.Errorf("%s: %w", op, response.ErrNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (s *Storage) GetWeeklyAvailability(ctx context.Context, artistID string) ([]models.DayHours, error) {
	const op = "storage.postgres.GetWeeklyAvailability"

	rows, err := s.db.QueryContext(ctx,
		`SELECT weekday, is_open, start_hour, start_minute, end_hour, end_minute
		FROM artist_availability
		WHERE artist_id=$1
		ORDER BY weekday`, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var days []models.DayHours
	for rows.Next() {
		day := models.DayHours{ArtistID: artistID}
		err := rows.Scan(
			&day.Weekday,
			&day.IsOpen,
			&day.StartHour,
			&day.StartMinute,
			&day.EndHour,
			&day.EndMinute,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		days = append(days, day)
	}

	return days, nil
}

// #### appointments ####

func (s *Storage) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	const op = "storage.postgres.CreateAppointment"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO appointments
		(appointment_id, artist_id, client_id, service_name, appointment_date, start_minutes, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		appt.ID,
		appt.ArtistID,
		appt.ClientID,
		appt.ServiceName,
		appt.Date,
		appt.StartMinutes,
		appt.DurationMinutes,
		string(appt.Status),
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23505" {
			return fmt.Errorf("%s: %w", op, response.ErrAlreadyExists)
		}
		if ok && sqlErr.Code == "23503" {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	const op = "storage.postgres.GetAppointment"

	var appt models.Appointment
	var status string

	err := s.db.QueryRowContext(ctx,
		`SELECT appointment_id, artist_id, client_id, service_name, appointment_date,
			start_minutes, duration_minutes, status, cancel_reason, created_at, updated_at
		FROM appointments WHERE appointment_id=$1`, appointmentID).
		Scan(
			&appt.ID,
			&appt.ArtistID,
			&appt.ClientID,
			&appt.ServiceName,
			&appt.Date,
			&appt.StartMinutes,
			&appt.DurationMinutes,
			&status,
			&appt.CancelReason,
			&appt.CreatedAt,
			&appt.UpdatedAt,
		)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	appt.Status = availability.AppointmentStatus(status)

	return &appt, nil
}

func (s *Storage) ListAppointments(ctx context.Context, artistID, clientID *string, date *time.Time, status *string) ([]*models.Appointment, error) {
	const op = "storage.postgres.ListAppointments"

	query := `SELECT appointment_id, artist_id, client_id, service_name, appointment_date,
			start_minutes, duration_minutes, status, cancel_reason, created_at, updated_at
		FROM appointments WHERE 1=1`
	args := []any{}

	if artistID != nil {
		args = append(args, *artistID)
		query += fmt.Sprintf(" AND artist_id=$%d", len(args))
	}
	if clientID != nil {
		args = append(args, *clientID)
		query += fmt.Sprintf(" AND client_id=$%d", len(args))
	}
	if date != nil {
		args = append(args, *date)
		query += fmt.Sprintf(" AND appointment_date=$%d", len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}

	query += " ORDER BY appointment_date, start_minutes"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	return scanAppointments(rows, op)
}

// ListDayAppointments returns every appointment for the artist on the
// given calendar day, active or not. The service filters by status.
func (s *Storage) ListDayAppointments(ctx context.Context, artistID string, date time.Time) ([]*models.Appointment, error) {
	const op = "storage.postgres.ListDayAppointments"

	rows, err := s.db.QueryContext(ctx,
		`SELECT appointment_id, artist_id, client_id, service_name, appointment_date,
			start_minutes, duration_minutes, status, cancel_reason, created_at, updated_at
		FROM appointments
		WHERE artist_id=$1 AND appointment_date=$2
		ORDER BY start_minutes`, artistID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	return scanAppointments(rows, op)
}

func (s *Storage) UpdateAppointmentStatus(ctx context.Context, appointmentID string, status string, reason *string) error {
	const op = "storage.postgres.UpdateAppointmentStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE appointments
		SET status=$1, cancel_reason=COALESCE($2, cancel_reason), updated_at=now()
		WHERE appointment_id=$3`,
		status, reason, appointmentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func scanAppointments(rows *sql.Rows, op string) ([]*models.Appointment, error) {
	var appts []*models.Appointment

	for rows.Next() {
		var appt models.Appointment
		var status string

		err := rows.Scan(
			&appt.ID,
			&appt.ArtistID,
			&appt.ClientID,
			&appt.ServiceName,
			&appt.Date,
			&appt.StartMinutes,
			&appt.DurationMinutes,
			&status,
			&appt.CancelReason,
			&appt.CreatedAt,
			&appt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		appt.Status = availability.AppointmentStatus(status)
		appts = append(appts, &appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return appts, nil
}

// #### reviews ####

func (s *Storage) CreateReview(ctx context.Context, review *models.Review) error {
	const op = "storage.postgres.CreateReview"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews
		(review_id, artist_id, client_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)`,
		review.ID,
		review.ArtistID,
		review.ClientID,
		review.Rating,
		review.Comment,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23503" {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetReview(ctx context.Context, reviewID string) (*models.Review, error) {
	const op = "storage.postgres.GetReview"

	var review models.Review

	err := s.db.QueryRowContext(ctx,
		`SELECT review_id, artist_id, client_id, rating, comment, created_at
		FROM reviews WHERE review_id=$1`, reviewID).
		Scan(
			&review.ID,
			&review.ArtistID,
			&review.ClientID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &review, nil
}

func (s *Storage) ListReviews(ctx context.Context, artistID string) ([]*models.Review, error) {
	const op = "storage.postgres.ListReviews"

	rows, err := s.db.QueryContext(ctx,
		`SELECT review_id, artist_id, client_id, rating, comment, created_at
		FROM reviews
		WHERE artist_id=$1
		ORDER BY created_at DESC`, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.ArtistID,
			&review.ClientID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (s *Storage) GetArtistRating(ctx context.Context, artistID string) (*float64, int, error) {
	const op = "storage.postgres.GetArtistRating"

	var avg sql.NullFloat64
	var count int

	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE artist_id=$1`, artistID).
		Scan(&avg, &count)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	if !avg.Valid {
		return nil, 0, nil
	}

	return &avg.Float64, count, nil
}
