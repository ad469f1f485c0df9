package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rbhagwat/intern-scout/internal/export"
	"github.com/rbhagwat/intern-scout/internal/observability"
	"github.com/rbhagwat/intern-scout/internal/scraper"
)

func searchParamsFromRequest(r *http.Request) (scraper.SearchParams, error) {
	q := r.URL.Query()
	params := scraper.SearchParams{
		Position: strings.TrimSpace(q.Get("position")),
		Location: strings.TrimSpace(q.Get("location")),
	}
	if params.Position == "" {
		return params, errors.New("position is required")
	}
	if params.Location == "" {
		return params, errors.New("location is required")
	}
	return params, nil
}

func queryLabel(params scraper.SearchParams) string {
	caser := cases.Title(language.Und)
	return caser.String(params.Position) + " in " + caser.String(params.Location)
}

// runSearch performs one extraction call and records its outcome. Both the
// JSON and CSV handlers go through here so a search behaves the same
// regardless of how the results leave the server.
func (s *Server) runSearch(r *http.Request, params scraper.SearchParams) ([]scraper.Listing, error) {
	observability.IncSearch()
	started := time.Now()

	listings, err := s.scraper.Search(r.Context(), params)
	observability.ObserveSearchDuration(time.Since(started).Seconds())
	if err != nil {
		return nil, err
	}

	if listings == nil {
		listings = []scraper.Listing{}
	}
	observability.AddListingsScraped(len(listings))
	return listings, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := searchParamsFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "input")
		return
	}

	listings, err := s.runSearch(r, params)
	if err != nil {
		kind := observability.ClassifySearchError(err)
		observability.IncError(kind, "api_search")
		slog.Error("search failed", "scraper", s.scraper.Name(), "kind", kind, "error", err)
		respondError(w, http.StatusBadGateway, err.Error(), kind)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query": map[string]string{
			"position": params.Position,
			"location": params.Location,
			"label":    queryLabel(params),
		},
		"count":    len(listings),
		"listings": listings,
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	params, err := searchParamsFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "input")
		return
	}

	listings, err := s.runSearch(r, params)
	if err != nil {
		kind := observability.ClassifySearchError(err)
		observability.IncError(kind, "api_export")
		slog.Error("export search failed", "scraper", s.scraper.Name(), "kind", kind, "error", err)
		respondError(w, http.StatusBadGateway, err.Error(), kind)
		return
	}

	filename := export.Filename(params.Position, params.Location, time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteCSV(w, listings); err != nil {
		slog.Error("csv export failed", "error", err)
		return
	}
	observability.IncExport()
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}
