package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vocal-technique/vocaltrans"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTranslateStdin(t *testing.T) {
	out, err := execute(t, "Hello world\n", "translate", "--intensity", "8")
	require.NoError(t, err)
	assert.Equal(t, "Hehl-lah wahrl\n", out)

	out, err = execute(t, "Hello world\n", "translate", "-i", "8", "--no-hyphens", "--upper")
	require.NoError(t, err)
	assert.Equal(t, "HEHLLAH WAHRL\n", out)
}

func TestTranslateFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	var want strings.Builder
	for i, line := range []string{"Hello world\n", "Don't stop\n", "I love you\n", "Singing in the rain\n"} {
		p := filepath.Join(dir, string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(p, []byte(line), 0o600))
		paths = append(paths, p)
		want.WriteString(vocaltrans.Default().Translate(line, 7, vocaltrans.DefaultOptions))
	}

	out, err := execute(t, "", append([]string{"translate", "-i", "7"}, paths...)...)
	require.NoError(t, err)
	assert.Equal(t, want.String(), out)
}

func TestTranslateMissingFile(t *testing.T) {
	_, err := execute(t, "", "translate", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSyllablesCmd(t *testing.T) {
	out, err := execute(t, "", "syllables", "unhappy", "smile", "123")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "un+ hap-py")
	assert.Contains(t, lines[0], "closed open")
	assert.Contains(t, lines[1], "cvce")
	assert.Contains(t, lines[2], "-")
}

func TestTablesCmd(t *testing.T) {
	out, err := execute(t, "", "tables")
	require.NoError(t, err)
	var stats vocaltrans.TableStats
	require.NoError(t, yaml.Unmarshal([]byte(out), &stats))
	assert.Equal(t, vocaltrans.Default().Tables().Stats(), stats)
}

func TestBadTablesDir(t *testing.T) {
	_, err := execute(t, "", "--tables", t.TempDir(), "tables")
	assert.Error(t, err)
}
