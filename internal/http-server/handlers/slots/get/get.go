package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"glowbook-service/api"
	"glowbook-service/pkg/response"
	"glowbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type SlotsGetter interface {
	GetDaySlots(ctx context.Context, artistID string, query *api.SlotQuery) (*api.DaySlotsResponse, error)
}

type Response struct {
	response.Response
	api.DaySlotsResponse
}

func New(log *slog.Logger, getter SlotsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

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

		date := r.URL.Query().Get("date")
		if date == "" {
			log.Error("date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date is required"))
			return
		}

		query := &api.SlotQuery{Date: date}

		if raw := r.URL.Query().Get("window_start"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				query.WindowStart = &n
			}
		}
		if raw := r.URL.Query().Get("window_end"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				query.WindowEnd = &n
			}
		}
		if raw := r.URL.Query().Get("granularity"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				query.Granularity = &n
			}
		}

		if raw := r.URL.Query().Get("duration"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				log.Error("invalid duration", slog.String("duration", raw))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "duration must be a non-negative integer"))
				return
			}
			query.DurationMinutes = n
		}

		slots, err := getter.GetDaySlots(r.Context(), id, query)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid slot query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid slot query"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get slots"))
			return
		}

		log.Info("Slots computed", slog.String("artist_id", id), slog.String("date", date), slog.Int("count", len(slots.Slots)))
		render.JSON(w, r, Response{
			DaySlotsResponse: *slots,
		})
	}
}
