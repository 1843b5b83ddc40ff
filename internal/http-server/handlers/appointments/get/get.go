package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"glowbook-service/api"
	"glowbook-service/pkg/response"
	"glowbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AppointmentGetter interface {
	GetAppointment(ctx context.Context, appointmentID string) (*api.AppointmentResponse, error)
	ListAppointments(ctx context.Context, artistID, clientID *string, date *time.Time, status *string) ([]*api.AppointmentResponse, error)
}

type Response struct {
	response.Response
	Appointments []api.AppointmentResponse `json:"appointments,omitempty"`
	Appointment  *api.AppointmentResponse  `json:"appointment,omitempty"`
}

func New(log *slog.Logger, getter AppointmentGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		artistID := r.URL.Query().Get("artist_id")
		clientID := r.URL.Query().Get("client_id")
		dateStr := r.URL.Query().Get("date")
		status := r.URL.Query().Get("status")

		if id != "" {
			// Get by ID
			appointment, err := getter.GetAppointment(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get appointment", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get appointment"))
				return
			}

			log.Info("Appointment retrieved", slog.Any("appointment", appointment))
			responseOK(w, r, appointment)
			return
		}

		// List
		var artistIDPtr, clientIDPtr, statusPtr *string
		if artistID != "" {
			artistIDPtr = &artistID
		}
		if clientID != "" {
			clientIDPtr = &clientID
		}
		if status != "" {
			statusPtr = &status
		}

		var date *time.Time
		if dateStr != "" {
			if t, err := time.Parse("2006-01-02", dateStr); err == nil {
				date = &t
			}
		}

		appointments, err := getter.ListAppointments(r.Context(), artistIDPtr, clientIDPtr, date, statusPtr)

		if err != nil {
			log.Error("Failed to list appointments", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list appointments"))
			return
		}

		log.Info("Appointments retrieved", slog.Int("count", len(appointments)))
		appointmentsResponse := make([]api.AppointmentResponse, len(appointments))
		for i, a := range appointments {
			appointmentsResponse[i] = *a
		}
		render.JSON(w, r, Response{
			Appointments: appointmentsResponse,
		})
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, appointment *api.AppointmentResponse) {
	render.JSON(w, r, Response{
		Appointment: appointment,
	})
}
