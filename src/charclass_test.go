package lttoolbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func write_temp(t *testing.T, name, content string) string {
	t.Helper()
	var path = filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseICX(t *testing.T) {
	var p = NewFSTProcessor()
	var path = write_temp(t, "ignore.yaml", "ignore: [\"·\", \"\\u00AD\", \"nope\"]\n")

	assert.NoError(t, p.ParseICX(path))

	assert.True(t, p.ignored_chars['·'])
	assert.True(t, p.ignored_chars['\u00AD'])
	assert.Len(t, p.ignored_chars, 2, "multi-character entries are skipped")
}

func TestParseRCX(t *testing.T) {
	var p = NewFSTProcessor()
	var path = write_temp(t, "restore.yaml", `restore:
  - replace: "a"
    with: ["á", "à"]
  - replace: "o"
    with: ["ó"]
`)

	assert.NoError(t, p.ParseRCX(path))

	assert.Equal(t, []rune{'á', 'à'}, p.restore_map['a'])
	assert.Equal(t, []rune{'ó'}, p.restore_map['o'])
}

func TestParseICXMissingFile(t *testing.T) {
	var p = NewFSTProcessor()

	assert.Error(t, p.ParseICX(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestSetIgnoredCharsClears(t *testing.T) {
	var p = NewFSTProcessor()
	p.ignored_chars['x'] = true

	p.SetIgnoredChars(false)

	assert.Empty(t, p.ignored_chars)
}
