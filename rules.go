package vocaltrans

import "strings"

// wordContext describes where a root sits inside the word being rendered.
type wordContext struct {
	// word is the whole folded word without apostrophes; vowel patterns
	// match against it.
	word string
	// offset is the byte position of root inside word.
	offset int
	root   string
	// next is the suffix following the root, "" at the end of the word.
	next string
	// initial is set when nothing precedes the root.
	initial bool
}

// applyRules renders each syllable at level, one piece per syllable.
func (rt *RuleTables) applyRules(ctx wordContext, syls []Syllable, level Level) []string {
	pieces := make([]string, 0, len(syls))
	for i := range syls {
		pieces = append(pieces, rt.renderSyllable(ctx, syls, i, level))
	}
	return pieces
}

func (rt *RuleTables) renderSyllable(ctx wordContext, syls []Syllable, i int, level Level) string {
	s := syls[i]
	if s.Nucleus == "" {
		return s.Text
	}
	var b strings.Builder
	at := ctx.offset + s.Start

	onset := s.Onset
	if i == 0 && ctx.initial {
		for _, c := range rt.clusterOrder {
			if strings.HasPrefix(onset, c) {
				b.WriteString(rt.clusters[c].At(level))
				onset = onset[len(c):]
				at += len(c)
				break
			}
		}
	}
	units := rt.consonantUnits(onset, false)
	for j, u := range units {
		pos := Initial
		switch {
		case j < len(units)-1:
			pos = BeforeConsonant
		case i > 0 && syls[i-1].Coda == "" && !syls[i-1].SilentE:
			pos = Intervocalic
		}
		b.WriteString(rt.consonant(u, followerAt(ctx.word, at+len(u)), pos, level))
		at += len(u)
	}

	key := rt.nucleusKey(ctx, s, at, len(syls) == 1)
	if v, ok := rt.vowels[key]; ok {
		b.WriteString(v.At(level))
	} else {
		b.WriteString(s.Nucleus)
	}
	at += len(s.Nucleus)

	units = rt.consonantUnits(s.Coda, true)
	for j, u := range units {
		pos := BeforeConsonant
		if j == len(units)-1 {
			pos = codaPosition(ctx, syls, i)
		}
		b.WriteString(rt.consonant(u, followerAt(ctx.word, at+len(u)), pos, level))
		at += len(u)
	}

	if s.SilentE {
		if v, ok := rt.vowels["e_silent"]; ok {
			b.WriteString(v.At(level))
		} else {
			b.WriteString("e")
		}
		at++
		pos := Final
		if ctx.next != "" {
			pos = BeforeConsonant
		}
		for _, u := range rt.consonantUnits(s.Tail, true) {
			b.WriteString(rt.consonant(u, followerAt(ctx.word, at+len(u)), pos, level))
			at += len(u)
		}
	}
	return b.String()
}

// codaPosition classifies the last coda consonant of syllable i.
func codaPosition(ctx wordContext, syls []Syllable, i int) Position {
	s := syls[i]
	switch {
	case s.SilentE:
		return Intervocalic
	case i < len(syls)-1:
		if syls[i+1].Onset == "" {
			return Intervocalic
		}
		return BeforeConsonant
	case ctx.next == "":
		return Final
	case isVowelByte(ctx.next[0]):
		return Intervocalic
	default:
		return BeforeConsonant
	}
}

// nucleusKey picks the vowel-table key for the nucleus of s, which starts
// at byte at of ctx.word.
func (rt *RuleTables) nucleusKey(ctx wordContext, s Syllable, at int, single bool) string {
	n := s.Nucleus
	for _, p := range rt.vowelPatterns {
		if p.Nucleus == n && p.matches(ctx.word, at) {
			return p.Sound
		}
	}
	rootEnd := at+len(n) == ctx.offset+len(ctx.root)
	switch {
	case n == "y" && rootEnd:
		if single {
			return "y_long"
		}
		return "y_final"
	case n == "e" && (s.Coda == "" || s.Coda == "s") && len(s.Onset) >= 2 && strings.HasSuffix(s.Onset, "l"):
		return "e_le"
	case s.Kind == CVCe:
		if _, ok := rt.vowels[n+"_cvce"]; ok {
			return n + "_cvce"
		}
	}
	return n
}

// consonantUnits splits a consonant run into table units, longest key first.
// A multi-letter key is only taken when it has a rule usable on that side of
// the nucleus.
func (rt *RuleTables) consonantUnits(s string, coda bool) []string {
	var units []string
	for i := 0; i < len(s); {
		n := 1
		for l := min(3, len(s)-i); l > 1; l-- {
			if c, ok := rt.consonants[s[i:i+l]]; ok && c.usableIn(coda) {
				n = l
				break
			}
		}
		units = append(units, s[i:i+n])
		i += n
	}
	return units
}

// consonant renders one unit. follow is the letter after it, used to
// tell a soft c (city, dance) from a hard one.
func (rt *RuleTables) consonant(u string, follow byte, pos Position, level Level) string {
	key := u
	if u == "c" && (follow == 'e' || follow == 'i' || follow == 'y') {
		key = "c_soft"
	}
	c, ok := rt.consonants[key]
	if !ok {
		return u
	}
	t := c.For(pos)
	if t == nil {
		return u
	}
	return t.At(level)
}

func followerAt(word string, i int) byte {
	if i < len(word) {
		return word[i]
	}
	return 0
}
