package vocaltrans

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tr, err := New(DataFS())
	if err != nil {
		t.Fatalf("New(DataFS()): %v", err)
	}
	if tr == nil {
		t.Fatal("New returned nil Translator")
	}
	s := tr.Tables().Stats()
	t.Logf("Loaded %d exceptions, %d vowels (%d teams), %d patterns, %d consonants, %d prefixes, %d suffixes",
		s.Exceptions, s.Vowels, s.VowelTeams, s.VowelPatterns, s.Consonants, s.Prefixes, s.Suffixes)
}

func TestTranslateHelloWorld(t *testing.T) {
	tests := []struct {
		intensity float64
		want      string
	}{
		{1, "Hel-lo world"},
		{4, "Hehl-loh wuhrld"},
		{8, "Hehl-lah wahrl"},
	}
	for _, tt := range tests {
		if got := Translate("Hello world", tt.intensity); got != tt.want {
			t.Errorf("Translate(%q, %v) = %q, want %q", "Hello world", tt.intensity, got, tt.want)
		}
	}
}

func TestCustomExceptionScenario(t *testing.T) {
	rt := Default().Tables().WithExceptions(map[string]Transformations{
		"hello": {"hello", "heh-loh", "heh-loh"},
	})
	tr := NewWithTables(rt)

	got := tr.Translate("HELLO world", 5, DefaultOptions)
	if want := "HEH-LOH wuhrld"; got != want {
		t.Errorf("Translate = %q, want %q", got, want)
	}
	// the shared default tables are untouched
	if _, _, ok := Default().Tables().Exception("hello"); ok {
		t.Error("WithExceptions modified the receiver")
	}
}

func TestDontStop(t *testing.T) {
	segs := Tokenize("Don't stop")
	if len(segs) != 3 || segs[0].Text != "Don't" || segs[0].Kind != Word {
		t.Fatalf("Tokenize(\"Don't stop\") = %+v", segs)
	}
	if got, want := Translate("Don't stop", 8), "Dohnt dahp"; got != want {
		t.Errorf("Translate = %q, want %q", got, want)
	}
	// minimal output equals the key, so the token comes back untouched
	if got := Translate("Don't stop", 1); got != "Don't stop" {
		t.Errorf("Translate at 1 = %q", got)
	}
}

func TestCapitalization(t *testing.T) {
	got := Translate("LOVE love Love", 4)
	if want := "LUHV luhv Luhv"; got != want {
		t.Errorf("Translate = %q, want %q", got, want)
	}
	if got := Translate("I", 4); got != "Ah" {
		t.Errorf("Translate(I) = %q, want %q", got, "Ah")
	}
}

func TestLosslessStructure(t *testing.T) {
	text := "Hello, world!\n\nI LOVE the sunshine -- don't you?\r\n  123 ...\t(yeah)"
	for _, level := range []float64{1, 4, 8} {
		out := Translate(text, level)
		if strings.Count(out, "\n") != strings.Count(text, "\n") {
			t.Errorf("level %v: line breaks changed: %q", level, out)
		}
		for _, keep := range []string{"123", "...", "--", "!", "?", "(", ")", "\t", "\r\n"} {
			if !strings.Contains(out, keep) {
				t.Errorf("level %v: lost %q in %q", level, keep, out)
			}
		}
	}
}

func TestMinimalReproducesSpelling(t *testing.T) {
	text := "Hello world\nI LOVE the sunshine, don't you?\nSinging in the rain, unhappy lovers walk together\nBreathe Night Street\nI'm sure you're sinnin' with O'Neil, we've been walkin' by the café"
	got := Default().Translate(text, 1, Options{})
	if got != text {
		t.Errorf("Translate at 1 without hyphens:\n got %q\nwant %q", got, text)
	}
}

func TestIdentityFallback(t *testing.T) {
	for _, in := range []string{"123", "2024 -- 42!", "", "   ", "\n\n", "L.A.", "日本"} {
		for _, level := range []float64{1, 5, 10} {
			if got := Translate(in, level); got != in {
				t.Errorf("Translate(%q, %v) = %q, want unchanged", in, level, got)
			}
		}
	}
}

func TestBands(t *testing.T) {
	text := "Baby, the stars are shining bright tonight over the dancing water"
	pairs := [][2]float64{{1, 3}, {1, 2.4}, {4, 6}, {3.5, 6.4}, {7, 10}, {6.5, 42}}
	for _, p := range pairs {
		a, b := Translate(text, p[0]), Translate(text, p[1])
		if a != b {
			t.Errorf("Translate at %v = %q, at %v = %q; want equal", p[0], a, p[1], b)
		}
	}
	if Translate(text, 1) == Translate(text, 8) {
		t.Error("minimal and full renderings are identical")
	}
}

func TestDeterminism(t *testing.T) {
	text := "Everything I do, I do it for you\nLook into my eyes"
	first := Translate(text, 7)
	for i := 0; i < 20; i++ {
		if got := Translate(text, 7); got != first {
			t.Fatalf("run %d = %q, want %q", i, got, first)
		}
	}
}

func TestOptions(t *testing.T) {
	tr := Default()
	if got := tr.Translate("hello", 8, Options{Hyphenate: true, Uppercase: true}); got != "HEHL-LAH" {
		t.Errorf("uppercase = %q", got)
	}
	if got := tr.Translate("hello", 8, Options{}); got != "hehllah" {
		t.Errorf("no hyphens = %q", got)
	}
	// authored hyphens in exceptions go too
	if got := tr.Translate("baby", 4, Options{}); got != "bahbay" {
		t.Errorf("no hyphens exception = %q", got)
	}
}

func TestAnalyzeWords(t *testing.T) {
	res := Default().Analyze("Hello, baby!", 8, DefaultOptions)
	if res.Level != Full {
		t.Errorf("Level = %v, want %v", res.Level, Full)
	}
	words := res.Words()
	if len(words) != 2 {
		t.Fatalf("Words() = %d entries, want 2", len(words))
	}
	if words[0].Exception || !words[1].Exception {
		t.Errorf("exception flags = %v, %v", words[0].Exception, words[1].Exception)
	}
	if got := strings.Join(words[0].Syllables, "|"); got != "Hehl|lah" {
		t.Errorf("hello syllables = %q", got)
	}
	if got := res.String(); got != "Hehl-lah, bah-bae!" {
		t.Errorf("String() = %q", got)
	}
}

func TestConcurrentUse(t *testing.T) {
	text := strings.Repeat("Walking down the street tonight, singing softly\n", 10)
	want := Translate(text, 6)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Translate(text, 6); got != want {
				t.Errorf("concurrent translation differs")
			}
		}()
	}
	wg.Wait()
}

const perfLine = "I remember every little thing you said to me under the stars tonight"

func perfText() string {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = perfLine
	}
	return strings.Join(lines, "\n")
}

func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	text := perfText()
	Translate(text, 8) // warm the tables
	start := time.Now()
	for i := 0; i < 10; i++ {
		Translate(text, float64(1+i%10))
	}
	if avg := time.Since(start) / 10; avg > 50*time.Millisecond {
		t.Errorf("average translation took %v, want < 50ms", avg)
	}
}

func BenchmarkTranslate(b *testing.B) {
	text := perfText()
	Translate(text, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Translate(text, 8)
	}
}
