package scraper

import "context"

// Listing is one scraped internship/job posting. All fields are best-effort
// extractions from HTML text nodes; a field the card does not carry is the
// empty string, never a reason to drop the listing.
type Listing struct {
	Title           string `json:"title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	StipendOrSalary string `json:"stipend_or_salary"`
	Duration        string `json:"duration"`
	ApplyURL        string `json:"apply_url"`
}

// SearchParams captures the normalized search inputs.
type SearchParams struct {
	Position string
	Location string
}

// Scraper is the contract a job-site scraper satisfies: one search, one
// ordered batch of listings.
type Scraper interface {
	Name() string
	Search(ctx context.Context, params SearchParams) ([]Listing, error)
}
