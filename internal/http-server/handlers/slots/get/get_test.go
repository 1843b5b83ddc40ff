package get_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"glowbook-service/api"
	"glowbook-service/internal/http-server/handlers/slots/get"
	"glowbook-service/pkg/response"

	"github.com/go-chi/chi/v5"
)

type stubGetter struct {
	gotArtistID string
	gotQuery    *api.SlotQuery
	resp        *api.DaySlotsResponse
	err         error
}

func (s *stubGetter) GetDaySlots(_ context.Context, artistID string, query *api.SlotQuery) (*api.DaySlotsResponse, error) {
	s.gotArtistID = artistID
	s.gotQuery = query
	return s.resp, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(getter *stubGetter) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/artists/{id}/slots", get.New(discardLogger(), getter))
	return router
}

func TestGetSlots(t *testing.T) {
	getter := &stubGetter{
		resp: &api.DaySlotsResponse{
			ArtistID: "a-1",
			Date:     "2026-02-02",
			IsOpen:   true,
			Slots: []api.SlotResponse{
				{StartMinutes: 540, Label: "9:00 AM", IsOffered: true},
				{StartMinutes: 555, Label: "9:15 AM", IsOffered: false},
			},
		},
	}
	router := newRouter(getter)

	req := httptest.NewRequest(http.MethodGet, "/artists/a-1/slots?date=2026-02-02&duration=60&window_start=540&window_end=600&granularity=15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if getter.gotArtistID != "a-1" {
		t.Errorf("artist id = %q, want %q", getter.gotArtistID, "a-1")
	}
	q := getter.gotQuery
	if q.Date != "2026-02-02" || q.DurationMinutes != 60 {
		t.Errorf("query = %+v, want date 2026-02-02 and duration 60", q)
	}
	if q.WindowStart == nil || *q.WindowStart != 540 {
		t.Errorf("window start = %v, want 540", q.WindowStart)
	}
	if q.WindowEnd == nil || *q.WindowEnd != 600 {
		t.Errorf("window end = %v, want 600", q.WindowEnd)
	}
	if q.Granularity == nil || *q.Granularity != 15 {
		t.Errorf("granularity = %v, want 15", q.Granularity)
	}

	var body struct {
		ArtistID string             `json:"artist_id"`
		IsOpen   bool               `json:"is_open"`
		Slots    []api.SlotResponse `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.IsOpen || len(body.Slots) != 2 {
		t.Errorf("body = %+v, want open day with 2 slots", body)
	}
	if body.Slots[0].Label != "9:00 AM" {
		t.Errorf("first slot label = %q, want %q", body.Slots[0].Label, "9:00 AM")
	}
}

func TestGetSlots_MissingDate(t *testing.T) {
	getter := &stubGetter{}
	router := newRouter(getter)

	req := httptest.NewRequest(http.MethodGet, "/artists/a-1/slots", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if getter.gotQuery != nil {
		t.Error("service should not be called without a date")
	}
}

func TestGetSlots_InvalidDuration(t *testing.T) {
	router := newRouter(&stubGetter{})

	req := httptest.NewRequest(http.MethodGet, "/artists/a-1/slots?date=2026-02-02&duration=-5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetSlots_BadQueryFromService(t *testing.T) {
	router := newRouter(&stubGetter{err: response.ErrBadRequest})

	req := httptest.NewRequest(http.MethodGet, "/artists/a-1/slots?date=not-a-date", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetSlots_ArtistNotFound(t *testing.T) {
	router := newRouter(&stubGetter{err: response.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/artists/missing/slots?date=2026-02-02", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
