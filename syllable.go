package vocaltrans

import "strings"

// SyllableKind is the structural shape of a syllable.
type SyllableKind int

const (
	Closed SyllableKind = iota
	Open
	CVCe
	VowelTeam
)

func (k SyllableKind) String() string {
	switch k {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case CVCe:
		return "cvce"
	case VowelTeam:
		return "vowel_team"
	default:
		return "unknown"
	}
}

// Syllable is one span of a root. Text is always
// Onset+Nucleus+Coda, then "e" when SilentE is set, then Tail.
type Syllable struct {
	Text    string
	Start   int
	Onset   string
	Nucleus string
	Coda    string
	// SilentE marks a final e that is spelled but not sounded.
	SilentE bool
	// Tail holds the s of a silent-e plural or verb form (makes, times).
	Tail string
	Kind SyllableKind
}

// legalOnsets are the multi-consonant onsets a syllable may start with.
// Any single consonant unit is a legal onset unless it is coda-bound.
var legalOnsets = map[string]bool{
	"bl": true, "br": true, "cl": true, "cr": true, "dr": true, "fl": true,
	"fr": true, "gl": true, "gr": true, "pl": true, "pr": true, "sc": true,
	"sk": true, "sl": true, "sm": true, "sn": true, "sp": true, "st": true,
	"sw": true, "tr": true, "tw": true, "wr": true, "kn": true, "phr": true,
	"thr": true, "shr": true, "spl": true, "spr": true, "str": true,
	"scr": true, "squ": true, "chr": true, "sch": true, "dw": true,
}

// codaBound units never start a syllable after a vowel.
var codaBound = map[string]bool{"ck": true, "ng": true, "x": true}

// consonantDigraphs are scanned as a single unit.
var consonantDigraphs = []string{"ch", "ck", "gh", "ng", "ph", "qu", "sh", "th", "wh"}

type unit struct {
	text  string
	start int
	vowel bool
}

// Syllabify splits a lowercase a-z root into syllables.
func (rt *RuleTables) Syllabify(root string) []Syllable {
	return rt.syllabify(root, false)
}

// syllabify is Syllabify with an extra hint: elided is set when a suffix
// beginning with a vowel replaced a silent e (hoped, making), which lets
// the last syllable keep its long-vowel CVCe reading.
func (rt *RuleTables) syllabify(root string, elided bool) []Syllable {
	if root == "" {
		return nil
	}
	if parts, ok := rt.syllableExceptions[root]; ok {
		return rt.syllablesFromParts(parts)
	}

	units := rt.scanUnits(root)
	units, silentE, cvce, tail := splitSilentE(units)
	if !silentE && elided {
		cvce = elidedCVCe(units)
	}

	groups := groupUnits(units)
	syls := make([]Syllable, len(groups))
	for i, g := range groups {
		syls[i] = buildSyllable(g)
	}
	last := &syls[len(syls)-1]
	if silentE {
		last.SilentE = true
		last.Tail = tail
		last.Text += "e" + tail
	}
	for i := range syls {
		syls[i].Kind = classify(syls[i], i == len(syls)-1 && cvce)
	}
	return syls
}

// syllablesFromParts builds syllables from a hand-tuned split.
func (rt *RuleTables) syllablesFromParts(parts []string) []Syllable {
	syls := make([]Syllable, 0, len(parts))
	offset := 0
	for i, p := range parts {
		units := rt.scanUnits(p)
		silentE, cvce := false, false
		tail := ""
		if i == len(parts)-1 {
			units, silentE, cvce, tail = splitSilentE(units)
		}
		for j := range units {
			units[j].start += offset
		}
		s := buildSyllable(units)
		s.Start = offset
		if silentE {
			s.SilentE = true
			s.Tail = tail
			s.Text += "e" + tail
		}
		s.Kind = classify(s, cvce)
		syls = append(syls, s)
		offset += len(p)
	}
	return syls
}

// scanUnits splits w into vowel and consonant units. Vowel teams become one
// unit; y is a consonant at the start of the word or before a vowel.
func (rt *RuleTables) scanUnits(w string) []unit {
	var units []unit
	for i := 0; i < len(w); {
		c := w[i]
		if isVowelByte(c) {
			if team := rt.matchTeam(w, i); team != "" {
				units = append(units, unit{team, i, true})
				i += len(team)
				continue
			}
			units = append(units, unit{w[i : i+1], i, true})
			i++
			continue
		}
		if c == 'y' {
			consonant := i == 0 || (i+1 < len(w) && isVowelByte(w[i+1]))
			units = append(units, unit{"y", i, !consonant})
			i++
			continue
		}
		n := 1
		for _, d := range consonantDigraphs {
			if strings.HasPrefix(w[i:], d) {
				n = len(d)
				break
			}
		}
		units = append(units, unit{w[i : i+n], i, false})
		i += n
	}
	return units
}

func (rt *RuleTables) matchTeam(w string, i int) string {
	for _, t := range rt.vowelTeams {
		if strings.HasPrefix(w[i:], t) {
			return t
		}
	}
	return ""
}

// splitSilentE removes a word-final silent e (and a following s) from units.
// cvce reports the long-vowel shape: one single-letter vowel, one consonant
// unit, then the e.
func splitSilentE(units []unit) (rest []unit, silent, cvce bool, tail string) {
	n := len(units)
	eIdx := n - 1
	if n >= 2 && units[n-1].text == "s" && units[n-2].text == "e" {
		eIdx = n - 2
		tail = "s"
	}
	if eIdx < 2 || units[eIdx].text != "e" {
		return units, false, false, ""
	}
	prev := units[eIdx-1]
	if prev.vowel {
		return units, false, false, ""
	}
	if tail != "" && sibilant(prev.text) {
		return units, false, false, ""
	}
	// Consonant + le / re keeps its own syllable (table, acre).
	if (prev.text == "l" || prev.text == "r") && !units[eIdx-2].vowel {
		return units, false, false, ""
	}
	nuclei := 0
	for _, u := range units[:eIdx-1] {
		if u.vowel {
			nuclei++
		}
	}
	if nuclei == 0 {
		return units, false, false, ""
	}
	before := units[eIdx-2]
	cvce = before.vowel && len(before.text) == 1
	return units[:eIdx], true, cvce, tail
}

func sibilant(s string) bool {
	switch s {
	case "s", "x", "z", "c", "g", "ch", "sh":
		return true
	}
	return false
}

// elidedCVCe reports whether units end in a single vowel letter followed by
// one simple consonant, with no other nucleus before it (hop, mak).
func elidedCVCe(units []unit) bool {
	n := len(units)
	if n < 2 {
		return false
	}
	c, v := units[n-1], units[n-2]
	if c.vowel || len(c.text) != 1 || strings.ContainsAny(c.text, "wxy") {
		return false
	}
	if !v.vowel || len(v.text) != 1 {
		return false
	}
	for _, u := range units[:n-2] {
		if u.vowel {
			return false
		}
	}
	return true
}

// groupUnits partitions units into one group per nucleus using the maximal
// onset principle.
func groupUnits(units []unit) [][]unit {
	var nuclei []int
	for i, u := range units {
		if u.vowel {
			nuclei = append(nuclei, i)
		}
	}
	if len(nuclei) == 0 {
		return [][]unit{units}
	}
	var groups [][]unit
	start := 0
	for j := 0; j < len(nuclei)-1; j++ {
		split := onsetStart(units, nuclei[j], nuclei[j+1])
		groups = append(groups, units[start:split])
		start = split
	}
	return append(groups, units[start:])
}

// onsetStart returns the index of the first unit of the syllable whose
// nucleus is at b, given the previous nucleus at a.
func onsetStart(units []unit, a, b int) int {
	for k := a + 1; k < b; k++ {
		if legalOnset(units[k:b]) {
			return k
		}
	}
	return b
}

func legalOnset(us []unit) bool {
	if len(us) == 1 {
		return !codaBound[us[0].text]
	}
	var sb strings.Builder
	for _, u := range us {
		sb.WriteString(u.text)
	}
	return legalOnsets[sb.String()]
}

// buildSyllable assembles a syllable from its units. The nucleus is the
// first run of vowel units; everything after it is coda.
func buildSyllable(us []unit) Syllable {
	var s Syllable
	if len(us) == 0 {
		return s
	}
	s.Start = us[0].start
	var onset, nucleus, coda strings.Builder
	phase := 0
	for _, u := range us {
		switch {
		case phase == 0 && !u.vowel:
			onset.WriteString(u.text)
		case phase <= 1 && u.vowel:
			phase = 1
			nucleus.WriteString(u.text)
		default:
			phase = 2
			coda.WriteString(u.text)
		}
	}
	s.Onset, s.Nucleus, s.Coda = onset.String(), nucleus.String(), coda.String()
	s.Text = s.Onset + s.Nucleus + s.Coda
	return s
}

func classify(s Syllable, cvce bool) SyllableKind {
	switch {
	case cvce:
		return CVCe
	case len(s.Nucleus) > 1:
		return VowelTeam
	case s.Coda == "" && !s.SilentE && s.Nucleus != "":
		return Open
	default:
		return Closed
	}
}
