package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rbhagwat/intern-scout/internal/httpx"
	"github.com/rbhagwat/intern-scout/internal/scraper"
)

type stubScraper struct {
	listings []scraper.Listing
	err      error
}

func (s *stubScraper) Name() string { return "stub" }

func (s *stubScraper) Search(ctx context.Context, params scraper.SearchParams) ([]scraper.Listing, error) {
	return s.listings, s.err
}

func doRequest(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch(t *testing.T) {
	srv := NewServer(&stubScraper{listings: []scraper.Listing{
		{Title: "Python Developer", Company: "Acme Labs", Location: "Delhi"},
		{Title: "Data Analyst", Company: "Insight Co", Location: "Delhi"},
	}})

	rec := doRequest(t, srv, "/api/search?position=python+developer&location=delhi")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Query    map[string]string `json:"query"`
		Count    int               `json:"count"`
		Listings []scraper.Listing `json:"listings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Count != 2 || len(payload.Listings) != 2 {
		t.Fatalf("expected 2 listings, got count=%d len=%d", payload.Count, len(payload.Listings))
	}
	if payload.Listings[0].Title != "Python Developer" {
		t.Fatalf("order not preserved: %q", payload.Listings[0].Title)
	}
	if payload.Query["label"] != "Python Developer in Delhi" {
		t.Fatalf("unexpected label: %q", payload.Query["label"])
	}
}

func TestHandleSearchMissingParams(t *testing.T) {
	srv := NewServer(&stubScraper{})

	rec := doRequest(t, srv, "/api/search?location=delhi")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, srv, "/api/search?position=python")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSearchZeroResults(t *testing.T) {
	srv := NewServer(&stubScraper{listings: []scraper.Listing{}})

	rec := doRequest(t, srv, "/api/search?position=python&location=nowhere")
	if rec.Code != http.StatusOK {
		t.Fatalf("zero results must not be an error, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":0`) {
		t.Fatalf("expected count 0: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"listings":[]`) {
		t.Fatalf("expected empty listings array: %s", rec.Body.String())
	}
}

func TestHandleSearchFetchError(t *testing.T) {
	srv := NewServer(&stubScraper{err: &httpx.FetchError{Status: 503, Err: errors.New("status 503")}})

	rec := doRequest(t, srv, "/api/search?position=python&location=delhi")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["kind"] != "fetch" {
		t.Fatalf("expected kind fetch, got %q", payload["kind"])
	}
}

func TestHandleSearchParseError(t *testing.T) {
	srv := NewServer(&stubScraper{err: &scraper.ParseError{Err: errors.New("bad html")}})

	rec := doRequest(t, srv, "/api/search?position=python&location=delhi")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"kind":"parse"`) {
		t.Fatalf("expected kind parse: %s", rec.Body.String())
	}
}

func TestHandleExportCSV(t *testing.T) {
	srv := NewServer(&stubScraper{listings: []scraper.Listing{
		{Title: "Python Developer", Company: "Acme Labs"},
		{Title: "Data Analyst", Company: "Insight Co"},
	}})

	rec := doRequest(t, srv, "/api/search/export?position=python&location=delhi")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "jobs_python_delhi_") {
		t.Fatalf("unexpected disposition: %q", cd)
	}

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "title,company,location,stipend_or_salary,duration,apply_url" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
}

func TestHandleStats(t *testing.T) {
	srv := NewServer(&stubScraper{})

	rec := doRequest(t, srv, "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snapshot map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := snapshot["searches_total"]; !ok {
		t.Fatalf("snapshot missing searches_total: %s", rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	srv := NewServer(&stubScraper{})

	rec := doRequest(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
