package scraper

import (
	"bytes"
	"context"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/rbhagwat/intern-scout/internal/httpx"
	"github.com/rbhagwat/intern-scout/internal/urlutil"
)

const DefaultBaseURL = "https://internshala.com"

// Selectors locate the repeated listing-card structure on the results page.
// The site's markup is an external, versioned dependency with no stability
// guarantee, so the matching rules are configuration rather than hard fact.
type Selectors struct {
	Card      string
	Title     string
	Company   string
	Location  string
	Stipend   string
	Duration  string
	ApplyLink string
}

func DefaultSelectors() Selectors {
	return Selectors{
		Card:      "div.individual_internship",
		Title:     "div.company a",
		Company:   "div.company_and_premium a",
		Location:  "a.location_link",
		Stipend:   "span.stipend",
		Duration:  "div.other_detail_item .item_body",
		ApplyLink: "div.cta_container a",
	}
}

// Internshala scrapes Internshala's search-results page. One search is one
// GET against the fixed URL template followed by a parse of the returned
// document; the scraper holds no state across searches.
type Internshala struct {
	baseURL   string
	selectors Selectors
	fetcher   *httpx.Fetcher
}

func NewInternshala(fetcher *httpx.Fetcher, baseURL string) *Internshala {
	if fetcher == nil {
		fetcher = httpx.NewFetcher("")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Internshala{
		baseURL:   baseURL,
		selectors: DefaultSelectors(),
		fetcher:   fetcher,
	}
}

func (s *Internshala) Name() string {
	return "internshala"
}

// SearchURL builds the results-page URL for the given query, e.g.
// /internships/python-developer-internship-in-delhi/.
func (s *Internshala) SearchURL(params SearchParams) string {
	return s.baseURL + "/internships/" +
		urlutil.Slug(params.Position) + "-internship-in-" + urlutil.Slug(params.Location) + "/"
}

// Search fetches the results page and extracts listings in document order.
// Fetch failures surface as *httpx.FetchError, unparseable bodies as
// *ParseError; a page with zero cards is a valid empty result.
func (s *Internshala) Search(ctx context.Context, params SearchParams) ([]Listing, error) {
	target := s.SearchURL(params)

	body, _, err := s.fetcher.FetchBytes(ctx, target)
	if err != nil {
		return nil, err
	}

	listings, err := ParseListings(bytes.NewReader(body), s.baseURL, s.selectors)
	if err != nil {
		return nil, &ParseError{URL: target, Err: err}
	}
	return listings, nil
}

// ParseListings extracts one Listing per card found in r, preserving the
// document's own order. Fields a card lacks come back empty.
func ParseListings(r io.Reader, baseURL string, sel Selectors) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)

	listings := []Listing{}
	doc.Find(sel.Card).Each(func(_ int, card *goquery.Selection) {
		l := Listing{
			Title:           fieldText(card.Find(sel.Title)),
			Company:         fieldText(card.Find(sel.Company)),
			Location:        fieldText(card.Find(sel.Location)),
			StipendOrSalary: cleanStipend(fieldText(card.Find(sel.Stipend))),
			Duration:        fieldText(card.Find(sel.Duration)),
		}
		if href, ok := card.Find(sel.ApplyLink).First().Attr("href"); ok {
			l.ApplyURL = urlutil.Resolve(base, href)
		}
		listings = append(listings, l)
	})

	return listings, nil
}

// fieldText returns the collapsed text of the first match, or "" when the
// selector matches nothing.
func fieldText(sel *goquery.Selection) string {
	first := sel.First()
	if first.Length() == 0 || len(first.Nodes) == 0 {
		return ""
	}
	return CollapseSpace(ExtractText(first.Nodes[0]))
}
