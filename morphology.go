package vocaltrans

import "strings"

// minRootLen is the shortest root an affix split may leave behind.
const minRootLen = 2

// MorphologyAnalysis is the decomposition of a word.
// Prefix+Root+Suffix always spells the analysed word.
type MorphologyAnalysis struct {
	Prefix string `json:"prefix"`
	Root   string `json:"root"`
	Suffix string `json:"suffix"`
	// Compound is set when Root splits into two known sub-roots at Boundary.
	Compound bool `json:"compound"`
	Boundary int  `json:"boundary,omitempty"`
}

// Parts returns the compound halves of Root, or Root alone.
func (m MorphologyAnalysis) Parts() []string {
	if !m.Compound {
		return []string{m.Root}
	}
	return []string{m.Root[:m.Boundary], m.Root[m.Boundary:]}
}

// AnalyzeMorphology decomposes a word into prefix, root and suffix, then
// looks for a single compound boundary in the root. It never fails: in the
// worst case Root is the whole (lowercased) word.
func (rt *RuleTables) AnalyzeMorphology(word string) MorphologyAnalysis {
	w := strings.ToLower(word)
	res := MorphologyAnalysis{Root: w}
	if w == "" {
		return res
	}
	// Hand-split words are taken as they are.
	if _, ok := rt.syllableExceptions[stripApostrophes(w)]; ok {
		return res
	}

	for _, p := range rt.prefixOrder {
		if strings.HasPrefix(w, p) && viablePrefixRoot(p, w[len(p):]) {
			res.Prefix, res.Root = p, w[len(p):]
			break
		}
	}
	for _, s := range rt.suffixOrder {
		if !strings.HasSuffix(res.Root, s) {
			continue
		}
		root := res.Root[:len(res.Root)-len(s)]
		if rt.viableSuffixRoot(root, s) {
			res.Root, res.Suffix = root, s
			break
		}
	}

	// un+derstand is worse than under+stand: a compound that swallows the
	// prefix wins.
	if res.Prefix != "" {
		if b := rt.compoundBoundary(res.Prefix + res.Root); b > 0 {
			res.Root = res.Prefix + res.Root
			res.Prefix = ""
			res.Compound, res.Boundary = true, b
			return res
		}
	}
	if b := rt.compoundBoundary(res.Root); b > 0 {
		res.Compound, res.Boundary = true, b
	}
	return res
}

func viablePrefixRoot(prefix, root string) bool {
	if len(root) < minRootLen || !hasVowel(root) {
		return false
	}
	return !(isVowelByte(prefix[len(prefix)-1]) && isVowelByte(root[0]))
}

func (rt *RuleTables) viableSuffixRoot(root, suffix string) bool {
	if len(root) < minRootLen || !hasVowel(root) {
		return false
	}
	// need is not ne+ed, tied is not ti+ed. An -ing suffix never merges
	// with the vowel before it (going, seeing).
	if strings.HasPrefix(suffix, "in") {
		return true
	}
	for _, t := range rt.vowelTeams {
		for k := 1; k < len(t); k++ {
			if strings.HasSuffix(root, t[:k]) && strings.HasPrefix(suffix, t[k:]) {
				return false
			}
		}
	}
	return true
}

// compoundBoundary returns the split index of root into two known
// sub-roots, preferring the longest left part, or 0.
func (rt *RuleTables) compoundBoundary(root string) int {
	for b := len(root) - minRootLen; b >= minRootLen; b-- {
		if rt.compoundParts[root[:b]] && rt.compoundParts[root[b:]] {
			return b
		}
	}
	return 0
}
