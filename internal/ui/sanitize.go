package ui

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()

	lineBreaks = strings.NewReplacer(
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
		"</p>", "\n",
		"</li>", "\n",
	)
)

// plainText strips markup from backend-supplied text (recipe names,
// descriptions, methods) so nothing the model generated can reach the
// terminal as anything but text.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	out := strictPolicy.Sanitize(lineBreaks.Replace(stripControl(s)))
	// Entities can decode to control runes, so strip again.
	out = stripControl(html.UnescapeString(out))
	return strings.TrimSpace(out)
}

// stripControl drops C0 and C1 control runes except newline and tab.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
