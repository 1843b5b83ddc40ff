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

type ArtistGetter interface {
	GetArtist(ctx context.Context, artistID string) (*api.ArtistResponse, error)
}

type Response struct {
	response.Response
	Artist api.ArtistResponse `json:"artist,omitempty"`
}

func New(log *slog.Logger, getter ArtistGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.artists.get.New"

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

		artist, err := getter.GetArtist(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get artist", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get artist"))
			return
		}

		log.Info("Artist retrieved", slog.Any("artist", artist))
		responseOK(w, r, artist)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, artist *api.ArtistResponse) {
	render.JSON(w, r, Response{
		Artist: *artist,
	})
}
