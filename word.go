package vocaltrans

import "strings"

// TransformWord renders a single word token at level.
//
// The exception dictionary is consulted first. Otherwise the word is folded
// to a-z, split into prefix, root and suffix, the root is syllabified and
// run through the rule tables, and affixes are replaced wholesale. The
// token's capitalisation is reapplied last. Tokens the tables cannot read
// (abbreviations, non-Latin letters) come back unchanged.
func (t *Translator) TransformWord(word string, level Level) WordResult {
	res := WordResult{Original: word, Level: level}
	if word == "" {
		return res
	}
	rt := t.tables
	if tr, key, ok := rt.Exception(word); ok {
		res.Exception = true
		out := tr.At(level)
		if out == key || out == "" {
			res.Syllables = []string{word}
			return res
		}
		res.Syllables = applyCase(splitPieces(out), detectCase(word))
		return res
	}

	passthrough := func() WordResult {
		res.Syllables = []string{word}
		return res
	}
	if strings.Contains(word, ".") {
		return passthrough()
	}
	folded := strings.ToLower(Fold(word))
	clean := stripApostrophes(folded)
	if strings.HasSuffix(folded, "in'") {
		clean += "'"
	}
	if !isPlainWord(clean) {
		return passthrough()
	}

	pieces := t.renderWord(clean, level)
	if len(pieces) == 0 {
		return passthrough()
	}
	// A dropped g keeps its apostrophe even when no suffix split was made.
	if strings.HasSuffix(folded, "in'") {
		if last := pieces[len(pieces)-1]; !strings.HasSuffix(last, "'") {
			pieces[len(pieces)-1] = last + "'"
		}
	}
	if kept, ok := restoreSpelling(word, pieces); ok {
		res.Syllables = kept
		return res
	}
	res.Syllables = applyCase(pieces, detectCase(word))
	return res
}

// restoreSpelling maps pieces that spell the folded token back onto the
// token's own runes, so an unchanged rendering keeps its apostrophes,
// accents and inner capitals (I'm, O'Neil, naïve). Pieces split by an
// apostrophe are joined again. ok is false when the pieces spell something
// else.
func restoreSpelling(token string, pieces []string) ([]string, bool) {
	type span struct {
		text    string
		letters int
	}
	var spans []span
	var got strings.Builder
	for _, r := range token {
		f := stripApostrophes(strings.ToLower(Fold(string(r))))
		spans = append(spans, span{string(r), len(f)})
		got.WriteString(f)
	}
	want := make([]int, len(pieces))
	var all strings.Builder
	for i, p := range pieces {
		p = stripApostrophes(p)
		if p == "" {
			return nil, false
		}
		want[i] = len(p)
		all.WriteString(p)
	}
	if got.String() != all.String() {
		return nil, false
	}

	out := make([]string, 0, len(pieces))
	var cur strings.Builder
	p, left := 0, want[0]
	for _, s := range spans {
		if left == 0 && s.letters > 0 {
			out = append(out, cur.String())
			cur.Reset()
			p++
			left = want[p]
		}
		if s.letters > left {
			return nil, false
		}
		cur.WriteString(s.text)
		left -= s.letters
	}
	out = append(out, cur.String())

	joined := out[:1]
	for _, piece := range out[1:] {
		last := joined[len(joined)-1]
		if strings.HasSuffix(last, "'") || strings.HasSuffix(last, "’") {
			joined[len(joined)-1] = last + piece
			continue
		}
		joined = append(joined, piece)
	}
	return joined, true
}

// renderWord runs morphology, syllabification and the rule engine over a
// lowercase a-z word and returns its pieces.
func (t *Translator) renderWord(w string, level Level) []string {
	rt := t.tables
	m := rt.AnalyzeMorphology(w)
	root := stripApostrophes(m.Root)

	var pieces []string
	if m.Prefix != "" {
		pieces = append(pieces, splitPieces(rt.prefixes[m.Prefix].At(level))...)
	}

	ctx := wordContext{
		word:    stripApostrophes(w),
		offset:  len(m.Prefix),
		root:    root,
		next:    m.Suffix,
		initial: m.Prefix == "",
	}
	pieces = append(pieces, rt.applyRules(ctx, rt.rootSyllables(m, root), level)...)

	if m.Suffix != "" {
		for _, p := range splitPieces(rt.suffixes[m.Suffix].At(level)) {
			if !hasVowel(p) && len(pieces) > 0 {
				pieces[len(pieces)-1] += p
				continue
			}
			pieces = append(pieces, p)
		}
	}

	out := pieces[:0]
	for _, p := range pieces {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// rootSyllables syllabifies the root, each compound half on its own.
func (rt *RuleTables) rootSyllables(m MorphologyAnalysis, root string) []Syllable {
	elided := strings.HasPrefix(m.Suffix, "ed") || strings.HasPrefix(m.Suffix, "in")
	if !m.Compound || m.Boundary <= 0 || m.Boundary >= len(root) {
		return rt.syllabify(root, elided)
	}
	left := rt.syllabify(root[:m.Boundary], false)
	right := rt.syllabify(root[m.Boundary:], elided)
	for i := range right {
		right[i].Start += m.Boundary
	}
	return append(left, right...)
}

// splitPieces splits an authored output on its hyphens.
func splitPieces(s string) []string {
	parts := strings.Split(s, "-")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
