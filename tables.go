package vocaltrans

import (
	"maps"
	"sort"
	"strings"
)

// silenceMark is authored in the data files where a rule drops its letters.
// Every table cell stays non-empty; At renders the mark as "".
const silenceMark = "_"

// Position is the structural role of a consonant relative to the syllable
// boundaries around it.
type Position int

const (
	Initial Position = iota
	Intervocalic
	Final
	BeforeConsonant
)

// String returns the name used for the position in consonants.txt.
func (p Position) String() string {
	switch p {
	case Initial:
		return "initial"
	case Intervocalic:
		return "intervocalic"
	case Final:
		return "final"
	case BeforeConsonant:
		return "before"
	default:
		return "unknown"
	}
}

// ConsonantContext holds the optional rule for each position. A nil field
// means the consonant is left as spelled in that position.
type ConsonantContext struct {
	Initial         *Transformations
	Intervocalic    *Transformations
	Final           *Transformations
	BeforeConsonant *Transformations
}

// For returns the rule for position p, or nil.
func (c ConsonantContext) For(p Position) *Transformations {
	switch p {
	case Initial:
		return c.Initial
	case Intervocalic:
		return c.Intervocalic
	case Final:
		return c.Final
	case BeforeConsonant:
		return c.BeforeConsonant
	default:
		return nil
	}
}

func (c *ConsonantContext) set(p Position, t Transformations) {
	switch p {
	case Initial:
		c.Initial = &t
	case Intervocalic:
		c.Intervocalic = &t
	case Final:
		c.Final = &t
	case BeforeConsonant:
		c.BeforeConsonant = &t
	}
}

// usableIn reports whether the entry has a rule for an onset (coda=false)
// or a coda (coda=true) position.
func (c ConsonantContext) usableIn(coda bool) bool {
	if c.Intervocalic != nil || c.BeforeConsonant != nil {
		return true
	}
	if coda {
		return c.Final != nil
	}
	return c.Initial != nil
}

// VowelPattern disambiguates a nucleus spelling by the letters around it.
// It is authored as before[nucleus]after with optional ^ and $ anchors,
// e.g. "r[ea]d" for bread/spread or "^[a]re$" for are.
type VowelPattern struct {
	Before      string
	Nucleus     string
	After       string
	AnchorStart bool
	AnchorEnd   bool
	// Sound is the key into the vowel table.
	Sound string
	// Context is a free-form label (short_e, long_o, ...).
	Context string
}

// matches reports whether the pattern applies to the nucleus starting at
// byte offset at inside word.
func (p VowelPattern) matches(word string, at int) bool {
	if at < len(p.Before) || word[at-len(p.Before):at] != p.Before {
		return false
	}
	if p.AnchorStart && at-len(p.Before) != 0 {
		return false
	}
	rest := word[at:]
	if !strings.HasPrefix(rest, p.Nucleus+p.After) {
		return false
	}
	if p.AnchorEnd && len(rest) != len(p.Nucleus)+len(p.After) {
		return false
	}
	return true
}

func (p VowelPattern) specificity() int {
	n := len(p.Before) + len(p.After)
	if p.AnchorStart {
		n++
	}
	if p.AnchorEnd {
		n++
	}
	return n
}

// RuleTables is the immutable rule data the engine consults. It is built once
// by LoadTables and only read afterwards, so a single value can be shared by
// any number of goroutines.
type RuleTables struct {
	exceptions map[string]Transformations
	vowels     map[string]Transformations
	consonants map[string]ConsonantContext
	prefixes   map[string]Transformations
	suffixes   map[string]Transformations
	clusters   map[string]Transformations

	// vowelPatterns is sorted most specific first, then by file order.
	vowelPatterns []VowelPattern

	// syllableExceptions maps an apostrophe-free word to its hand-tuned split.
	syllableExceptions map[string][]string

	// compoundParts is the set of sub-roots recognised on either side of a
	// compound boundary.
	compoundParts map[string]bool

	// Longest-first match orders, ties broken alphabetically.
	vowelTeams   []string
	prefixOrder  []string
	suffixOrder  []string
	clusterOrder []string
}

func newRuleTables() *RuleTables {
	return &RuleTables{
		exceptions:         make(map[string]Transformations),
		vowels:             make(map[string]Transformations),
		consonants:         make(map[string]ConsonantContext),
		prefixes:           make(map[string]Transformations),
		suffixes:           make(map[string]Transformations),
		clusters:           make(map[string]Transformations),
		syllableExceptions: make(map[string][]string),
		compoundParts:      make(map[string]bool),
	}
}

// finalize computes the derived match orders once all files are loaded.
func (rt *RuleTables) finalize() {
	rt.vowelTeams = rt.vowelTeams[:0]
	for k := range rt.vowels {
		if len(k) > 1 && !strings.Contains(k, "_") {
			rt.vowelTeams = append(rt.vowelTeams, k)
		}
	}
	sortLongestFirst(rt.vowelTeams)
	rt.prefixOrder = sortedKeys(rt.prefixes)
	rt.suffixOrder = sortedKeys(rt.suffixes)
	rt.clusterOrder = sortedKeys(rt.clusters)
	sort.SliceStable(rt.vowelPatterns, func(i, j int) bool {
		return rt.vowelPatterns[i].specificity() > rt.vowelPatterns[j].specificity()
	})
}

func sortedKeys(m map[string]Transformations) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortLongestFirst(keys)
	return keys
}

func sortLongestFirst(ss []string) {
	sort.Slice(ss, func(i, j int) bool {
		if len(ss[i]) != len(ss[j]) {
			return len(ss[i]) > len(ss[j])
		}
		return ss[i] < ss[j]
	})
}

// WithExceptions returns a copy of rt whose exception dictionary also holds
// extra (keys are lowercased). rt itself is not modified.
func (rt *RuleTables) WithExceptions(extra map[string]Transformations) *RuleTables {
	cp := *rt
	cp.exceptions = maps.Clone(rt.exceptions)
	for k, v := range extra {
		cp.exceptions[strings.ToLower(k)] = v
	}
	return &cp
}

// Exception returns the whole-word override for word, trying the lowercase
// form first and then the form without apostrophes. The returned key is the
// one that matched.
func (rt *RuleTables) Exception(word string) (Transformations, string, bool) {
	lower := strings.ToLower(word)
	if t, ok := rt.exceptions[lower]; ok {
		return t, lower, true
	}
	key := stripApostrophes(lower)
	if t, ok := rt.exceptions[key]; ok {
		return t, key, true
	}
	return Transformations{}, "", false
}

// Vowel returns the entry for a vowel key.
func (rt *RuleTables) Vowel(key string) (Transformations, bool) {
	t, ok := rt.vowels[key]
	return t, ok
}

// Consonant returns the positional rules for a consonant spelling.
func (rt *RuleTables) Consonant(spelling string) (ConsonantContext, bool) {
	c, ok := rt.consonants[spelling]
	return c, ok
}

// TableStats summarises the loaded tables.
type TableStats struct {
	Exceptions         int `json:"exceptions" yaml:"exceptions"`
	Vowels             int `json:"vowels" yaml:"vowels"`
	VowelTeams         int `json:"vowel_teams" yaml:"vowel_teams"`
	VowelPatterns      int `json:"vowel_patterns" yaml:"vowel_patterns"`
	Consonants         int `json:"consonants" yaml:"consonants"`
	Prefixes           int `json:"prefixes" yaml:"prefixes"`
	Suffixes           int `json:"suffixes" yaml:"suffixes"`
	Clusters           int `json:"clusters" yaml:"clusters"`
	SyllableExceptions int `json:"syllable_exceptions" yaml:"syllable_exceptions"`
	CompoundParts      int `json:"compound_parts" yaml:"compound_parts"`
}

// Stats reports how many entries each table holds.
func (rt *RuleTables) Stats() TableStats {
	return TableStats{
		Exceptions:         len(rt.exceptions),
		Vowels:             len(rt.vowels),
		VowelTeams:         len(rt.vowelTeams),
		VowelPatterns:      len(rt.vowelPatterns),
		Consonants:         len(rt.consonants),
		Prefixes:           len(rt.prefixes),
		Suffixes:           len(rt.suffixes),
		Clusters:           len(rt.clusters),
		SyllableExceptions: len(rt.syllableExceptions),
		CompoundParts:      len(rt.compoundParts),
	}
}
