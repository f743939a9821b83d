package service

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Excerpt derives a plain-text preview from a generated payload.
// Rich-editor output is HTML, so tags are stripped before whitespace
// is collapsed and the text is cut at maxLen runes.
func Excerpt(content string, maxLen int) string {
	text := content
	if strings.Contains(content, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
			text = doc.Text()
		}
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return strings.TrimRight(string(runes[:maxLen-1]), " ") + "…"
}
