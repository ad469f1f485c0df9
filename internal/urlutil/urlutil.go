package urlutil

import (
	"net/url"
	"strings"
)

// Slug converts free-form user input into the hyphenated path segment the
// search URL template expects: lowercased, runs of whitespace collapsed to a
// single hyphen, everything else percent-encoded.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "-")
	return url.PathEscape(s)
}

// Resolve turns a possibly relative href into an absolute URL against base.
// Mail and tel links resolve to "", as do unparseable hrefs.
func Resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return u.String()
}

// NormalizeHost lowercases a host and strips the www prefix so hosts can be
// compared and used as rate-limiter keys.
func NormalizeHost(host string) string {
	host = strings.ToLower(host)
	return strings.TrimPrefix(host, "www.")
}
