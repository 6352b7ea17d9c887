package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy removes all HTML tags and attributes.
	StrictPolicy = bluemonday.StrictPolicy()

	// UGCPolicy allows basic formatting for user-generated long text.
	UGCPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML and surrounding whitespace.
// Use for: names, titles, locations, categories.
func Text(input string) string {
	return strings.TrimSpace(StrictPolicy.Sanitize(input))
}

// HTML keeps safe formatting tags and drops scripts, handlers and styles.
// Use for: event and club descriptions.
func HTML(input string) string {
	return strings.TrimSpace(UGCPolicy.Sanitize(input))
}
