package vocaltrans

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Table file names inside the fs.FS handed to LoadTables.
const (
	fileExceptions    = "exceptions.txt"
	fileVowels        = "vowels.txt"
	fileVowelPatterns = "vowel_patterns.txt"
	fileConsonants    = "consonants.txt"
	fileMorphemes     = "morphemes.txt"
	fileClusters      = "clusters.txt"
	fileSyllables     = "syllables.txt"
	fileCompounds     = "compounds.txt"
)

// TableError reports a malformed line in one of the table files.
type TableError struct {
	File   string
	Line   int
	Reason string
}

func (e *TableError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

// LoadTables parses every table file found at the root of fsys.
// All eight files are required. The returned tables are never modified.
func LoadTables(fsys fs.FS) (*RuleTables, error) {
	rt := newRuleTables()
	loaders := []struct {
		name string
		load func(fs.FS) error
	}{
		{fileVowels, rt.loadVowels},
		{fileVowelPatterns, rt.loadVowelPatterns},
		{fileConsonants, rt.loadConsonants},
		{fileMorphemes, rt.loadMorphemes},
		{fileClusters, rt.loadClusters},
		{fileExceptions, rt.loadExceptions},
		{fileSyllables, rt.loadSyllables},
		{fileCompounds, rt.loadCompounds},
	}
	for _, l := range loaders {
		if err := l.load(fsys); err != nil {
			return nil, fmt.Errorf("load %s: %w", l.name, err)
		}
	}
	rt.finalize()
	return rt, nil
}

// eachLine calls fn for every non-blank line that is not a "!" comment.
func eachLine(fsys fs.FS, name string, fn func(line string, n int) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		if err := fn(line, n); err != nil {
			return err
		}
	}
	return sc.Err()
}

// parseRow splits "key|l1|l4|l8" into its key and Transformations.
func parseRow(file string, n int, line string) (string, Transformations, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 4 {
		return "", Transformations{}, &TableError{file, n, fmt.Sprintf("want 4 fields, got %d", len(fields))}
	}
	key := strings.ToLower(strings.TrimSpace(fields[0]))
	if key == "" {
		return "", Transformations{}, &TableError{file, n, "empty key"}
	}
	var t Transformations
	for i := range t {
		t[i] = strings.TrimSpace(fields[i+1])
		if t[i] == "" {
			return "", Transformations{}, &TableError{file, n, fmt.Sprintf("empty output for %s at %s", key, Levels[i])}
		}
	}
	return key, t, nil
}

func (rt *RuleTables) loadRows(fsys fs.FS, file string, dst map[string]Transformations) error {
	return eachLine(fsys, file, func(line string, n int) error {
		key, t, err := parseRow(file, n, line)
		if err != nil {
			return err
		}
		if _, dup := dst[key]; dup {
			return &TableError{file, n, "duplicate key " + key}
		}
		dst[key] = t
		return nil
	})
}

// loadExceptions reads exceptions.txt: "word|l1|l4|l8".
func (rt *RuleTables) loadExceptions(fsys fs.FS) error {
	return rt.loadRows(fsys, fileExceptions, rt.exceptions)
}

// loadVowels reads vowels.txt: "key|l1|l4|l8".
// Level 1 must reproduce the spelling part of the key (before any "_").
func (rt *RuleTables) loadVowels(fsys fs.FS) error {
	if err := rt.loadRows(fsys, fileVowels, rt.vowels); err != nil {
		return err
	}
	for k, t := range rt.vowels {
		if t[0] != spellingOf(k) {
			return &TableError{File: fileVowels, Reason: fmt.Sprintf("%s: minimal output %q differs from spelling", k, t[0])}
		}
	}
	return nil
}

func spellingOf(key string) string {
	if i := strings.IndexByte(key, '_'); i > 0 {
		return key[:i]
	}
	return key
}

// loadVowelPatterns reads vowel_patterns.txt: "pattern|sound|context".
// Must run after loadVowels so every sound can be checked.
func (rt *RuleTables) loadVowelPatterns(fsys fs.FS) error {
	return eachLine(fsys, fileVowelPatterns, func(line string, n int) error {
		fields := strings.Split(line, "|")
		if len(fields) != 3 {
			return &TableError{fileVowelPatterns, n, fmt.Sprintf("want 3 fields, got %d", len(fields))}
		}
		p, err := parseVowelPattern(strings.TrimSpace(fields[0]))
		if err != nil {
			return &TableError{fileVowelPatterns, n, err.Error()}
		}
		p.Sound = strings.TrimSpace(fields[1])
		p.Context = strings.TrimSpace(fields[2])
		if p.Context == "" {
			return &TableError{fileVowelPatterns, n, "empty context"}
		}
		if _, ok := rt.vowels[p.Sound]; !ok {
			return &TableError{fileVowelPatterns, n, "unknown sound " + p.Sound}
		}
		if spellingOf(p.Sound) != p.Nucleus {
			return &TableError{fileVowelPatterns, n, fmt.Sprintf("sound %s does not spell nucleus %s", p.Sound, p.Nucleus)}
		}
		rt.vowelPatterns = append(rt.vowelPatterns, p)
		return nil
	})
}

func parseVowelPattern(s string) (VowelPattern, error) {
	var p VowelPattern
	if strings.HasPrefix(s, "^") {
		p.AnchorStart = true
		s = s[1:]
	}
	if strings.HasSuffix(s, "$") {
		p.AnchorEnd = true
		s = s[:len(s)-1]
	}
	open := strings.IndexByte(s, '[')
	closing := strings.IndexByte(s, ']')
	if open < 0 || closing < open+2 {
		return p, errors.New("pattern needs a non-empty [nucleus]")
	}
	p.Before = s[:open]
	p.Nucleus = s[open+1 : closing]
	p.After = s[closing+1:]
	return p, nil
}

var positionNames = map[string]Position{
	"initial":      Initial,
	"intervocalic": Intervocalic,
	"final":        Final,
	"before":       BeforeConsonant,
}

// loadConsonants reads consonants.txt: "spelling:position|l1|l4|l8".
func (rt *RuleTables) loadConsonants(fsys fs.FS) error {
	return eachLine(fsys, fileConsonants, func(line string, n int) error {
		key, t, err := parseRow(fileConsonants, n, line)
		if err != nil {
			return err
		}
		spelling, pos, ok := strings.Cut(key, ":")
		if !ok || spelling == "" {
			return &TableError{fileConsonants, n, "want spelling:position"}
		}
		p, ok := positionNames[pos]
		if !ok {
			return &TableError{fileConsonants, n, "unknown position " + pos}
		}
		c := rt.consonants[spelling]
		if c.For(p) != nil {
			return &TableError{fileConsonants, n, "duplicate rule " + key}
		}
		c.set(p, t)
		rt.consonants[spelling] = c
		return nil
	})
}

// loadMorphemes reads morphemes.txt: "prefix:un|l1|l4|l8" or "suffix:ing|...".
func (rt *RuleTables) loadMorphemes(fsys fs.FS) error {
	return eachLine(fsys, fileMorphemes, func(line string, n int) error {
		key, t, err := parseRow(fileMorphemes, n, line)
		if err != nil {
			return err
		}
		kind, affix, _ := strings.Cut(key, ":")
		var dst map[string]Transformations
		switch kind {
		case "prefix":
			dst = rt.prefixes
		case "suffix":
			dst = rt.suffixes
		default:
			return &TableError{fileMorphemes, n, "want prefix: or suffix:"}
		}
		if affix == "" {
			return &TableError{fileMorphemes, n, "empty affix"}
		}
		if _, dup := dst[affix]; dup {
			return &TableError{fileMorphemes, n, "duplicate key " + key}
		}
		dst[affix] = t
		return nil
	})
}

// loadClusters reads clusters.txt: "cluster|l1|l4|l8".
func (rt *RuleTables) loadClusters(fsys fs.FS) error {
	return rt.loadRows(fsys, fileClusters, rt.clusters)
}

// loadSyllables reads syllables.txt: "word:part,part,...".
// Keys and parts are stored without apostrophes.
func (rt *RuleTables) loadSyllables(fsys fs.FS) error {
	return eachLine(fsys, fileSyllables, func(line string, n int) error {
		word, list, ok := strings.Cut(strings.ToLower(line), ":")
		if !ok {
			return &TableError{fileSyllables, n, "want word:part,part"}
		}
		key := stripApostrophes(strings.TrimSpace(word))
		var parts []string
		for _, p := range strings.Split(list, ",") {
			p = stripApostrophes(strings.TrimSpace(p))
			if p == "" {
				return &TableError{fileSyllables, n, "empty syllable"}
			}
			parts = append(parts, p)
		}
		if strings.Join(parts, "") != key {
			return &TableError{fileSyllables, n, fmt.Sprintf("parts of %s do not spell it", key)}
		}
		rt.syllableExceptions[key] = parts
		return nil
	})
}

// loadCompounds reads compounds.txt: one sub-root per line.
func (rt *RuleTables) loadCompounds(fsys fs.FS) error {
	return eachLine(fsys, fileCompounds, func(line string, n int) error {
		part := strings.ToLower(line)
		if !hasVowel(part) {
			return &TableError{fileCompounds, n, "sub-root without a vowel: " + part}
		}
		rt.compoundParts[part] = true
		return nil
	})
}
