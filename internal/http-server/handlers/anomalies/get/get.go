package get

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

type AnomalyFinder interface {
	FindScheduleAnomalies(ctx context.Context, artistID string, date string) ([]*api.AnomalyResponse, error)
}

type Response struct {
	response.Response
	Anomalies []*api.AnomalyResponse `json:"anomalies"`
}

func New(log *slog.Logger, finder AnomalyFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.anomalies.get.New"

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

		anomalies, err := finder.FindScheduleAnomalies(r.Context(), id, date)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid date"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to find schedule anomalies", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to find schedule anomalies"))
			return
		}

		log.Info("Schedule anomalies found", slog.Int("count", len(anomalies)))
		responseOK(w, r, anomalies)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, anomalies []*api.AnomalyResponse) {
	render.JSON(w, r, Response{
		Anomalies: anomalies,
	})
}
