package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText flattens a node's text content, descending through child
// elements.
func ExtractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(ExtractText(c))
	}
	return sb.String()
}

// CollapseSpace squeezes runs of whitespace (including newlines from
// pretty-printed markup) into single spaces and trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanStipend strips the rupee sign and thousands separators so the
// stipend travels as plain text, e.g. "₹ 10,000 /month" -> "10000 /month".
func cleanStipend(s string) string {
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, ",", "")
	return CollapseSpace(s)
}
