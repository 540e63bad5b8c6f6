package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello world", "Hello world"},
		{"Don't stop", "Don't stop"},
		{"<b>Hello</b> world", "Hello world"},
		{"rock & roll", "rock & roll"},
		{"<script>alert(1)</script>sing", "sing"},
		{"line one\nline two", "line one\nline two"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.in), "Text(%q)", tt.in)
	}
}

func TestLine(t *testing.T) {
	assert.Equal(t, "a b", Line("  a\r\nb "))
	assert.Equal(t, "love", Line("<i>love</i>\n"))
}
