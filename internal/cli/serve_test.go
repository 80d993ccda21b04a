package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

func TestServeItinerariesTopParam(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	srv := &server{
		opts:   searchOpts{cacheFlags: cacheFlags{noCache: true}},
		logger: logger,
	}

	get := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/itineraries"+query, nil)
		req = req.WithContext(withLogger(context.Background(), logger))
		rec := httptest.NewRecorder()
		srv.handleItineraries(rec, req)
		return rec
	}

	for _, top := range []string{"abc", "0", "-3", "2x", "1.5"} {
		if rec := get("?top=" + top); rec.Code != http.StatusBadRequest {
			t.Errorf("top=%q: status %d, want %d", top, rec.Code, http.StatusBadRequest)
		}
	}

	rec := get("?top=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("top=2: status %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Itineraries []json.RawMessage `json:"itineraries"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Itineraries) > 2 {
		t.Errorf("got %d itineraries, want at most 2", len(body.Itineraries))
	}
}

func TestServeItinerariesBadOptionals(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	srv := &server{
		opts:   searchOpts{cacheFlags: cacheFlags{noCache: true}},
		logger: logger,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/itineraries?optionals=maybe", nil)
	req = req.WithContext(withLogger(context.Background(), logger))
	rec := httptest.NewRecorder()
	srv.handleItineraries(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
