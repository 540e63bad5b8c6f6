// Package vocaltrans rewrites song lyrics into singable phonetic spellings
// for open-throat vocal technique, at a chosen intensity.
//
// All rules live in static tables (see LoadTables); the translation itself
// is pure, deterministic and safe for concurrent use.
package vocaltrans

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// Options controls output formatting.
type Options struct {
	// Hyphenate separates syllable pieces with "-". When off, pieces are
	// joined with nothing.
	Hyphenate bool `json:"hyphenate" yaml:"hyphenate"`
	// Uppercase upper-cases the whole output.
	Uppercase bool `json:"uppercase" yaml:"uppercase"`
}

// DefaultOptions is what Translate uses.
var DefaultOptions = Options{Hyphenate: true}

// Translator holds loaded rule tables and provides the public API.
type Translator struct {
	tables *RuleTables
}

// New loads the tables found in fsys and returns a ready-to-use Translator.
func New(fsys fs.FS) (*Translator, error) {
	rt, err := LoadTables(fsys)
	if err != nil {
		return nil, err
	}
	return &Translator{tables: rt}, nil
}

// OpenDir loads tables from the directory dir, or returns Default when dir is
// empty.
func OpenDir(dir string) (*Translator, error) {
	if dir == "" {
		return Default(), nil
	}
	return New(os.DirFS(dir))
}

// NewWithTables wraps already loaded tables.
func NewWithTables(rt *RuleTables) *Translator {
	return &Translator{tables: rt}
}

var (
	defaultOnce       sync.Once
	defaultTranslator *Translator
)

// Default returns the Translator built from the embedded tables.
// It panics if they do not load, which only a broken build can cause.
func Default() *Translator {
	defaultOnce.Do(func() {
		t, err := New(DataFS())
		if err != nil {
			panic(fmt.Sprintf("vocaltrans: embedded tables: %v", err))
		}
		defaultTranslator = t
	})
	return defaultTranslator
}

// Translate renders text at intensity with the embedded tables and
// DefaultOptions.
func Translate(text string, intensity float64) string {
	return Default().Translate(text, intensity, DefaultOptions)
}

// Tables returns the rule tables in use.
func (t *Translator) Tables() *RuleTables {
	return t.tables
}

// Translate renders text at intensity. Everything that is not a word is
// copied through unchanged.
func (t *Translator) Translate(text string, intensity float64, opts Options) string {
	return t.Analyze(text, intensity, opts).String()
}

// Analyze is Translate with the per-word detail kept.
func (t *Translator) Analyze(text string, intensity float64, opts Options) *Result {
	level := ResolveIntensity(intensity)
	segs := Tokenize(text)
	res := &Result{
		Level:    level,
		Options:  opts,
		Segments: make([]TranslatedSegment, len(segs)),
	}
	// Lyrics repeat words a lot.
	seen := make(map[string]*WordResult)
	for i, seg := range segs {
		res.Segments[i].Segment = seg
		if seg.Kind != Word {
			continue
		}
		w, ok := seen[seg.Text]
		if !ok {
			wr := t.TransformWord(seg.Text, level)
			w = &wr
			seen[seg.Text] = w
		}
		res.Segments[i].Word = w
	}
	return res
}

// Syllabify folds and lowercases word and splits it into syllables
// without affix analysis.
func (t *Translator) Syllabify(word string) []Syllable {
	w := stripApostrophes(strings.ToLower(Fold(word)))
	if !isPlainWord(w) {
		return nil
	}
	return t.tables.Syllabify(w)
}

// AnalyzeMorphology folds and lowercases word and decomposes it.
func (t *Translator) AnalyzeMorphology(word string) MorphologyAnalysis {
	return t.tables.AnalyzeMorphology(stripApostrophes(strings.ToLower(Fold(word))))
}

// Breakdown returns the morphology of word together with the syllables of
// its root, compound halves split the way translation splits them. The
// syllables are nil when word holds nothing the tables can read.
func (t *Translator) Breakdown(word string) (MorphologyAnalysis, []Syllable) {
	w := stripApostrophes(strings.ToLower(Fold(word)))
	if !isPlainWord(w) {
		return MorphologyAnalysis{}, nil
	}
	m := t.tables.AnalyzeMorphology(w)
	return m, t.tables.rootSyllables(m, stripApostrophes(m.Root))
}
