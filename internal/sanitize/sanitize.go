// Package sanitize strips markup from user supplied text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// bluemonday policies are safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// Text removes every HTML element from s and returns plain text. Entities
// the policy escapes are decoded again so apostrophes and ampersands in
// lyrics survive.
func Text(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return html.UnescapeString(strict.Sanitize(s))
}

// Line is Text for single-line fields: the result is trimmed and any inner
// line breaks become spaces.
func Line(s string) string {
	s = Text(s)
	s = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}
