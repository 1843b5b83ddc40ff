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

type ArtistCreator interface {
	CreateArtist(ctx context.Context, req *api.ArtistRequest) (*api.ArtistResponse, error)
}

type Request struct {
	api.ArtistRequest
}

type Response struct {
	response.Response
	Artist api.ArtistResponse `json:"artist,omitempty"`
}

func New(log *slog.Logger, creator ArtistCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.artists.create.New"

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

		if req.DisplayName == "" {
			log.Error("display_name is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "display_name is required"))
			return
		}

		artist, err := creator.CreateArtist(r.Context(), &req.ArtistRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid artist payload", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid artist payload"))
			return
		}

		if err != nil {
			log.Error("Failed to create artist", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create artist"))
			return
		}

		log.Info("Artist created", slog.Any("artist", artist))

		w.WriteHeader(http.StatusCreated)
		responseOK(w, r, artist)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, artist *api.ArtistResponse) {
	render.JSON(w, r, Response{
		Artist: *artist,
	})
}
