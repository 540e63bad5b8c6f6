package vocaltrans

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seg struct {
	kind SegmentKind
	text string
}

func kinds(segs []Segment) []seg {
	out := make([]seg, len(segs))
	for i, s := range segs {
		out[i] = seg{s.Kind, s.Text}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []seg
	}{
		{"Don't stop", []seg{{Word, "Don't"}, {Whitespace, " "}, {Word, "stop"}}},
		{"don’t", []seg{{Word, "don’t"}}},
		{"L.A. nights", []seg{{Word, "L.A"}, {Punctuation, "."}, {Whitespace, " "}, {Word, "nights"}}},
		{"believin'\n", []seg{{Word, "believin'"}, {LineBreak, "\n"}}},
		{"a\r\nb\rc", []seg{{Word, "a"}, {LineBreak, "\r\n"}, {Word, "b"}, {LineBreak, "\r"}, {Word, "c"}}},
		{"rock 'n' roll", []seg{
			{Word, "rock"}, {Whitespace, " "}, {Punctuation, "'"}, {Word, "n"},
			{Punctuation, "'"}, {Whitespace, " "}, {Word, "roll"},
		}},
		{"¡Hola, café!", []seg{
			{Punctuation, "¡"}, {Word, "Hola"}, {Punctuation, ","}, {Whitespace, " "},
			{Word, "café"}, {Punctuation, "!"},
		}},
		{"one-two 3", []seg{{Word, "one"}, {Punctuation, "-"}, {Word, "two"}, {Whitespace, " "}, {Punctuation, "3"}}},
		{"end.", []seg{{Word, "end"}, {Punctuation, "."}}},
		{"\n\n", []seg{{LineBreak, "\n"}, {LineBreak, "\n"}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kinds(Tokenize(tt.in)), "Tokenize(%q)", tt.in)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}

func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"Hello, world!\n\nI LOVE the sunshine -- don't you?\r\n",
		"  \t leading and trailing \t ",
		"naïve café résumé, Ærøskøbing",
		"emoji 🎵 and numbers 1, 2, 3",
		"bad \xff utf8",
		"'quoted' \"double\" (paren) [bracket]",
	}
	for _, in := range inputs {
		segs := Tokenize(in)
		var b strings.Builder
		offset := 0
		for _, s := range segs {
			require.Equal(t, offset, s.Offset, "offset in %q", in)
			require.NotEmpty(t, s.Text)
			b.WriteString(s.Text)
			offset += len(s.Text)
		}
		assert.Equal(t, in, b.String())
	}
}
