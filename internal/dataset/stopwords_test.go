package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwordSetContains(t *testing.T) {
	set := NewStopwordSet("de", "Não", "  o  ", "")

	assert.True(t, set.Contains("de"))
	assert.True(t, set.Contains("DE"), "matching is case-insensitive")
	assert.True(t, set.Contains("não"))
	assert.True(t, set.Contains("o"), "words are trimmed before storing")
	assert.False(t, set.Contains("produto"))
	assert.False(t, set.Contains(""))
}

func TestLoadStopwords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stopwords.txt")
	content := "\ufeffde\nA\n\n  para  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	set, err := LoadStopwords(path)
	require.NoError(t, err)

	assert.Len(t, set, 3)
	assert.True(t, set.Contains("de"), "BOM on the first word is stripped")
	assert.True(t, set.Contains("a"))
	assert.True(t, set.Contains("para"))
}

func TestLoadStopwordsMissingFile(t *testing.T) {
	_, err := LoadStopwords(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
