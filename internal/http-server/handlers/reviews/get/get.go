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

type ReviewLister interface {
	ListReviews(ctx context.Context, artistID string) ([]*api.ReviewResponse, error)
}

type Response struct {
	response.Response
	Reviews []*api.ReviewResponse `json:"reviews"`
}

func New(log *slog.Logger, lister ReviewLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reviews.get.New"

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

		reviews, err := lister.ListReviews(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to list reviews", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list reviews"))
			return
		}

		log.Info("Reviews listed", slog.Int("count", len(reviews)))
		responseOK(w, r, reviews)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, reviews []*api.ReviewResponse) {
	render.JSON(w, r, Response{
		Reviews: reviews,
	})
}
