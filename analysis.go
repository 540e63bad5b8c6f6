package vocaltrans

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordResult holds the translation of a single word token.
type WordResult struct {
	// Original is the token as it appeared in the text.
	Original string
	// Syllables are the rendered pieces, capitalisation already applied.
	Syllables []string
	// Exception is set when the word came from the exception dictionary.
	Exception bool
	// Level is the anchor the word was rendered at.
	Level Level
}

// Text joins the pieces, with hyphens between them when hyphenate is set.
func (w WordResult) Text(hyphenate bool) string {
	if hyphenate {
		return strings.Join(w.Syllables, "-")
	}
	return strings.Join(w.Syllables, "")
}

// TranslatedSegment is one tokenizer segment and, for words, its translation.
type TranslatedSegment struct {
	Segment
	Word *WordResult
}

// Text returns what the segment contributes to the output.
func (s TranslatedSegment) Text(opts Options) string {
	if s.Word == nil {
		return s.Segment.Text
	}
	return s.Word.Text(opts.Hyphenate)
}

// Result is the structured translation of a whole text.
type Result struct {
	Level    Level
	Options  Options
	Segments []TranslatedSegment
}

// String reassembles the translated text.
func (r *Result) String() string {
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.Text(r.Options))
	}
	if r.Options.Uppercase {
		// cases.Caser is stateful: one per call.
		return cases.Upper(language.English).String(b.String())
	}
	return b.String()
}

// Words returns the word results in text order.
func (r *Result) Words() []WordResult {
	var words []WordResult
	for _, s := range r.Segments {
		if s.Word != nil {
			words = append(words, *s.Word)
		}
	}
	return words
}
