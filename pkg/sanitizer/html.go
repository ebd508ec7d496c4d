// Package sanitizer turns user supplied message bodies into the plain text
// carrier gateways relay.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = sync.OnceValue(bluemonday.StrictPolicy)

// PlainText strips every HTML element, decodes entities and collapses runs
// of spaces and tabs. Line breaks are kept; blank lines are dropped.
// The input is parsed as HTML, so a bare '<' followed by a letter opens a
// tag: only use it for bodies known to carry markup.
func PlainText(s string) string {
	stripped := html.UnescapeString(strictPolicy().Sanitize(s))

	lines := strings.Split(stripped, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
