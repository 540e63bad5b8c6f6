package vocaltrans

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SegmentKind classifies a run of input text.
type SegmentKind int

const (
	Word SegmentKind = iota
	Whitespace
	LineBreak
	Punctuation
)

func (k SegmentKind) String() string {
	switch k {
	case Word:
		return "word"
	case Whitespace:
		return "whitespace"
	case LineBreak:
		return "linebreak"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Segment is a contiguous slice of the input. Offset is its byte position.
type Segment struct {
	Kind   SegmentKind
	Text   string
	Offset int
}

// Tokenize splits text into Word, Whitespace, LineBreak and Punctuation
// segments. Concatenating the Text of every segment yields text exactly.
//
// A word is a run of letters that may carry internal apostrophes (' and ’)
// and internal periods, i.e. ones followed by another letter. A trailing
// apostrophe right after "in" stays in the word (believin').
func Tokenize(text string) []Segment {
	var segs []Segment
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		start := i
		var kind SegmentKind
		switch {
		case r == '\n':
			kind, i = LineBreak, i+1
		case r == '\r':
			kind, i = LineBreak, i+1
			if i < len(text) && text[i] == '\n' {
				i++
			}
		case unicode.IsSpace(r):
			kind = Whitespace
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if r == '\n' || r == '\r' || !unicode.IsSpace(r) {
					break
				}
				i += size
			}
		case isWordRune(r):
			kind, i = Word, scanWord(text, i)
		default:
			kind = Punctuation
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if unicode.IsSpace(r) || isWordRune(r) {
					break
				}
				i += size
			}
		}
		segs = append(segs, Segment{Kind: kind, Text: text[start:i], Offset: start})
	}
	return segs
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r)
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '.'
}

// scanWord returns the end of the word starting at i.
func scanWord(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicode.IsLetter(r) || unicode.Is(unicode.Mn, r):
			i += size
		case isJoiner(r):
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			if i+size < len(text) && unicode.IsLetter(next) {
				i += size
				continue
			}
			if r != '.' && endsWithIn(text[:i]) {
				i += size
			}
			return i
		default:
			return i
		}
	}
	return i
}

// endsWithIn reports whether s ends in the letters "in", any case.
func endsWithIn(s string) bool {
	if len(s) < 2 {
		return false
	}
	return strings.EqualFold(s[len(s)-2:], "in")
}
