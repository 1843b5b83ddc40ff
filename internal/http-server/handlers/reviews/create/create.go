package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"glowbook-service/api"
	"glowbook-service/pkg/response"
	"glowbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type ReviewCreator interface {
	CreateReview(ctx context.Context, review *api.ReviewRequest) (*api.ReviewResponse, error)
}

type Request struct {
	api.ReviewRequest
}

type Response struct {
	response.Response
	Review api.ReviewResponse `json:"review,omitempty"`
}

func New(log *slog.Logger, creator ReviewCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reviews.create.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		review, err := creator.CreateReview(r.Context(), &req.ReviewRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid review"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to create review", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create review"))
			return
		}

		log.Info("Review created", slog.Any("review", review))
		responseOK(w, r, review)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, review *api.ReviewResponse) {
	render.JSON(w, r, Response{
		Review: *review,
	})
}
