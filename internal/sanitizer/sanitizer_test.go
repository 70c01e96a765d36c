package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Chapter 1", "Chapter 1"},
		{"ampersand kept", "Q&A", "Q&A"},
		{"tags stripped", "<b>Bold</b> title", "Bold title"},
		{"script removed", "<script>alert(1)</script>Notes", "Notes"},
		{"trimmed", "  spaced  ", "spaced"},
		{"only markup", "<i></i>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Text(tt.input))
		})
	}
}

func TestTextPtr(t *testing.T) {
	s := New()

	assert.Nil(t, s.TextPtr(nil))

	in := "<em>x</em>"
	out := s.TextPtr(&in)
	if assert.NotNil(t, out) {
		assert.Equal(t, "x", *out)
	}
}

func TestContent(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"formatting kept", "<p>Hello <strong>world</strong></p>", "<p>Hello <strong>world</strong></p>"},
		{"script removed", "<p>Hi</p><script>alert(1)</script>", "<p>Hi</p>"},
		{"event handler removed", `<p onclick="x()">Hi</p>`, "<p>Hi</p>"},
		{"plain text untouched", "just text", "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Content(tt.input))
		})
	}
}
