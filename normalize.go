package vocaltrans

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatureReplacer expands letters that do not decompose under NFD.
var ligatureReplacer = strings.NewReplacer(
	"æ", "ae",
	"Æ", "AE",
	"œ", "oe",
	"Œ", "OE",
	"ß", "ss",
	"ø", "o",
	"Ø", "O",
	"ł", "l",
	"Ł", "L",
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬅ", "st",
	"ﬆ", "st",
)

// apostropheReplacer removes both apostrophe forms the tokenizer accepts.
var apostropheReplacer = strings.NewReplacer("'", "", "’", "")

// Fold strips diacritics and expands ligatures so that accented Latin
// letters reach the rule tables as plain a-z (café becomes cafe).
// ASCII input is returned as is.
func Fold(s string) string {
	if isASCII(s) {
		return s
	}
	s = ligatureReplacer.Replace(s)
	// transform.Chain is stateful: one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strings.ReplaceAll(out, "’", "'")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func stripApostrophes(s string) string {
	return apostropheReplacer.Replace(s)
}

func isVowelByte(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// hasVowel reports whether s contains a, e, i, o, u or y.
func hasVowel(s string) bool {
	return strings.ContainsAny(s, "aeiouy")
}

// isPlainWord reports whether s is made only of a-z letters and apostrophes.
func isPlainWord(s string) bool {
	letters := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z':
			letters++
		case c == '\'':
		default:
			return false
		}
	}
	return letters > 0
}

// casePattern is the capitalisation shape of a source token.
type casePattern int

const (
	caseLower casePattern = iota
	caseTitle
	caseUpper
)

func detectCase(token string) casePattern {
	letters, upper := 0, 0
	first := true
	title := false
	for _, r := range token {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
			if first {
				title = true
			}
		}
		first = false
	}
	switch {
	case letters > 1 && upper == letters:
		return caseUpper
	case title:
		return caseTitle
	default:
		return caseLower
	}
}

// applyCase reapplies the token's capitalisation to the rendered pieces.
// Title case touches only the first letter; the rest stays as authored.
func applyCase(pieces []string, p casePattern) []string {
	switch p {
	case caseUpper:
		for i, s := range pieces {
			pieces[i] = strings.ToUpper(s)
		}
	case caseTitle:
		for i, s := range pieces {
			if s == "" {
				continue
			}
			r, size := utf8.DecodeRuneInString(s)
			pieces[i] = string(unicode.ToUpper(r)) + s[size:]
			break
		}
	}
	return pieces
}
