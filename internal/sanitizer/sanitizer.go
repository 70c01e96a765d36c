package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans user input before it reaches the content service.
// Names and titles become plain text; rich block content keeps safe
// formatting markup.
//
// Thread-safe for concurrent use.
type Sanitizer struct {
	text *bluemonday.Policy
	rich *bluemonday.Policy
}

// New creates a sanitizer with the strict policy for plain text and the
// UGC (user generated content) policy for block content
func New() *Sanitizer {
	rich := bluemonday.UGCPolicy()
	// No data URIs: image blocks carry plain URLs
	rich.AllowURLSchemes("http", "https", "mailto")

	return &Sanitizer{
		text: bluemonday.StrictPolicy(),
		rich: rich,
	}
}

// Text strips all markup and returns plain text. Entities the policy
// escapes are decoded again so "Q&A" stays "Q&A".
func (s *Sanitizer) Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.text.Sanitize(input)))
}

// TextPtr applies Text to an optional field
func (s *Sanitizer) TextPtr(input *string) *string {
	if input == nil {
		return nil
	}
	out := s.Text(*input)
	return &out
}

// Content removes scripts, event handlers and javascript: URLs from rich
// block content while preserving basic formatting
func (s *Sanitizer) Content(input string) string {
	return s.rich.Sanitize(input)
}
