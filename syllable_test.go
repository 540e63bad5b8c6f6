package vocaltrans

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syllableTexts(syls []Syllable) []string {
	out := make([]string, len(syls))
	for i, s := range syls {
		out[i] = s.Text
	}
	return out
}

func syllableKinds(syls []Syllable) []SyllableKind {
	out := make([]SyllableKind, len(syls))
	for i, s := range syls {
		out[i] = s.Kind
	}
	return out
}

func TestSyllabify(t *testing.T) {
	rt := Default().Tables()
	tests := []struct {
		word  string
		texts []string
		kinds []SyllableKind
	}{
		{"hello", []string{"hel", "lo"}, []SyllableKind{Closed, Open}},
		{"smile", []string{"smile"}, []SyllableKind{CVCe}},
		{"table", []string{"ta", "ble"}, []SyllableKind{Open, Open}},
		{"happy", []string{"hap", "py"}, []SyllableKind{Closed, Open}},
		{"pocket", []string{"pock", "et"}, []SyllableKind{Closed, Closed}},
		{"singer", []string{"sing", "er"}, []SyllableKind{Closed, Closed}},
		{"rain", []string{"rain"}, []SyllableKind{VowelTeam}},
		{"night", []string{"night"}, []SyllableKind{VowelTeam}},
		{"queen", []string{"queen"}, []SyllableKind{VowelTeam}},
		{"street", []string{"street"}, []SyllableKind{VowelTeam}},
		{"makes", []string{"makes"}, []SyllableKind{CVCe}},
		{"bridge", []string{"bridge"}, []SyllableKind{Closed}},
		{"yes", []string{"yes"}, []SyllableKind{Closed}},
		{"my", []string{"my"}, []SyllableKind{Open}},
		{"brr", []string{"brr"}, []SyllableKind{Closed}},
		{"rhythm", []string{"rhyth", "m"}, []SyllableKind{Closed, Closed}},
		{"people", []string{"peo", "ple"}, []SyllableKind{VowelTeam, Open}},
		{"create", []string{"cre", "ate"}, []SyllableKind{Open, CVCe}},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			syls := rt.Syllabify(tt.word)
			assert.Equal(t, tt.texts, syllableTexts(syls))
			assert.Equal(t, tt.kinds, syllableKinds(syls))
		})
	}
}

func TestSyllableStructure(t *testing.T) {
	rt := Default().Tables()

	syls := rt.Syllabify("smile")
	require.Len(t, syls, 1)
	s := syls[0]
	assert.Equal(t, "sm", s.Onset)
	assert.Equal(t, "i", s.Nucleus)
	assert.Equal(t, "l", s.Coda)
	assert.True(t, s.SilentE)

	syls = rt.Syllabify("makes")
	require.Len(t, syls, 1)
	assert.Equal(t, "k", syls[0].Coda)
	assert.Equal(t, "s", syls[0].Tail)

	assert.Nil(t, rt.Syllabify(""))
}

func TestSyllablesSpellTheWord(t *testing.T) {
	rt := Default().Tables()
	words := []string{
		"beautiful", "together", "strength", "orange", "everything", "sunshine",
		"knight", "thought", "acre", "lovely", "queue", "yesterday", "a", "rhythm",
	}
	for _, w := range words {
		syls := rt.Syllabify(w)
		var b strings.Builder
		for _, s := range syls {
			assert.Equal(t, b.Len(), s.Start, "%s: start of %q", w, s.Text)
			tail := ""
			if s.SilentE {
				tail = "e" + s.Tail
			}
			assert.Equal(t, s.Onset+s.Nucleus+s.Coda+tail, s.Text, w)
			b.WriteString(s.Text)
		}
		assert.Equal(t, w, b.String())
	}
}
