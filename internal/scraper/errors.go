package scraper

import "fmt"

// ParseError reports an HTML body that could not be parsed into a document.
// A page that parses but contains zero listing cards is not a ParseError;
// that is a valid empty result.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error for %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
