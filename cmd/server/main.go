package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/rbhagwat/intern-scout/internal/api"
	"github.com/rbhagwat/intern-scout/internal/httpx"
	"github.com/rbhagwat/intern-scout/internal/scraper"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	baseURL := os.Getenv("SCRAPE_BASE_URL")
	if baseURL == "" {
		baseURL = scraper.DefaultBaseURL
	}

	userAgent := os.Getenv("SCRAPER_USER_AGENT")
	if userAgent == "" {
		userAgent = "intern-scout/1.0"
	}

	fetcher := httpx.NewFetcher(userAgent)
	internshala := scraper.NewInternshala(fetcher, baseURL)

	srv := api.NewServer(internshala)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "base_url", baseURL)
	if err := http.ListenAndServe(":"+port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
