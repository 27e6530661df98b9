package cleaner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// Format is the representation of cleaned content.
type Format string

const (
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name; empty means html.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatText, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: html, text, markdown)", s)
	}
}

var blankRuns = regexp.MustCompile(`[ \t]*\n[ \t\n]*\n`)

// Convert renders cleaned HTML in the requested format.
func Convert(fragment string, format Format) (string, error) {
	switch format {
	case FormatText:
		return Text(fragment), nil
	case FormatMarkdown:
		return NewMarkdown().Clean(fragment)
	case FormatHTML, "":
		return fragment, nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// Text returns the text content of an HTML fragment with paragraph breaks
// kept as blank lines.
func Text(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, tr").Each(func(_ int, s *goquery.Selection) {
		s.AfterNodes(&html.Node{Type: html.TextNode, Data: "\n\n"})
	})
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})
	text := blankRuns.ReplaceAllString(doc.Text(), "\n\n")
	return strings.TrimSpace(text)
}

// Pretty indents HTML for display.
func Pretty(fragment string) string {
	return gohtml.Format(fragment)
}
