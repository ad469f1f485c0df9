package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rbhagwat/intern-scout/internal/scraper"
)

// Header is the declared CSV column order. The export is a direct
// serialization of the listing fields, header row first.
var Header = []string{"title", "company", "location", "stipend_or_salary", "duration", "apply_url"}

// WriteCSV serializes listings to w: exactly one header row plus one row
// per listing, field order matching Header.
func WriteCSV(w io.Writer, listings []scraper.Listing) error {
	// csv.Writer handles quoting, embedded commas, line endings
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, l := range listings {
		row := []string{l.Title, l.Company, l.Location, l.StipendOrSalary, l.Duration, l.ApplyURL}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}
	return nil
}

// Filename builds the download name for a query, e.g.
// jobs_python_developer_delhi_20250114_093000.csv.
func Filename(position, location string, now time.Time) string {
	return fmt.Sprintf("jobs_%s_%s_%s.csv",
		underscore(position), underscore(location), now.Format("20060102_150405"))
}

func underscore(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "_")
}
