package set

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"glowbook-service/api"
	"glowbook-service/pkg/response"
	"glowbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AvailabilitySetter interface {
	SetWeeklyAvailability(ctx context.Context, artistID string, req *api.WeeklyAvailabilityRequest) (*api.WeeklyAvailabilityResponse, error)
}

type Request struct {
	api.WeeklyAvailabilityRequest
}

type Response struct {
	response.Response
	Availability api.WeeklyAvailabilityResponse `json:"availability,omitempty"`
}

func New(log *slog.Logger, setter AvailabilitySetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.set.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		availability, err := setter.SetWeeklyAvailability(r.Context(), id, &req.WeeklyAvailabilityRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid availability payload", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid availability payload"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to set weekly availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to set weekly availability"))
			return
		}

		log.Info("Weekly availability updated", slog.String("artist_id", id))
		responseOK(w, r, availability)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, availability *api.WeeklyAvailabilityResponse) {
	render.JSON(w, r, Response{
		Availability: *availability,
	})
}
