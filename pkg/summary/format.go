package summary

import (
	"html"
	"regexp"
	"strings"
)

var bulletPrefix = regexp.MustCompile(`^[\s•\-*]+`)

// FormatList turns generated list text into an HTML unordered list. Output
// that already contains <li> is returned unchanged. Each non-empty line,
// stripped of leading whitespace and bullet characters, becomes one item.
func FormatList(text string) string {
	if strings.Contains(text, "<li>") {
		return text
	}

	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, line := range strings.Split(text, "\n") {
		item := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if item == "" {
			continue
		}
		sb.WriteString("<li>")
		sb.WriteString(html.EscapeString(item))
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// FormatParagraph renders plain summary text as an escaped paragraph.
func FormatParagraph(text string) string {
	return "<p>" + html.EscapeString(strings.TrimSpace(text)) + "</p>"
}

// Render formats generated text for display in mode m.
func Render(text string, m Mode) string {
	if m.IsList() {
		return FormatList(text)
	}
	return FormatParagraph(text)
}
