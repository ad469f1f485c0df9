package observability

import (
	"context"
	"errors"

	"github.com/rbhagwat/intern-scout/internal/httpx"
	"github.com/rbhagwat/intern-scout/internal/scraper"
)

const (
	ErrorFetch   = "fetch"
	ErrorParse   = "parse"
	ErrorUnknown = "unknown"
)

// ClassifySearchError maps a search failure to one of the two error kinds
// the user sees: a fetch problem (network, non-success status) or a parse
// problem (HTML structure not recognized).
func ClassifySearchError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		return ErrorFetch
	}
	var pe *scraper.ParseError
	if errors.As(err, &pe) {
		return ErrorParse
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorFetch
	}
	return ErrorUnknown
}
