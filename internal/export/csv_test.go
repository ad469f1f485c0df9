package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rbhagwat/intern-scout/internal/scraper"
)

func TestWriteCSV(t *testing.T) {
	listings := []scraper.Listing{
		{
			Title:           "Python Developer",
			Company:         "Acme Labs",
			Location:        "Delhi",
			StipendOrSalary: "10000 /month",
			Duration:        "3 Months",
			ApplyURL:        "https://internshala.com/internship/detail/python-developer-101",
		},
		{Title: "Data Analyst, Junior", Company: "Insight Co"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, listings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "title,company,location,stipend_or_salary,duration,apply_url" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Python Developer,Acme Labs,Delhi,") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	// Commas inside a field must be quoted, not split into extra columns.
	if !strings.HasPrefix(lines[2], `"Data Analyst, Junior",Insight Co,`) {
		t.Fatalf("unexpected quoting: %q", lines[2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 1, 14, 9, 30, 0, 0, time.UTC)
	got := Filename("Python Developer", "New Delhi", at)
	want := "jobs_python_developer_new_delhi_20250114_093000.csv"
	if got != want {
		t.Fatalf("Filename = %q, want %q", got, want)
	}
}
