package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		width  int
		indent string
		want   string
	}{
		{"empty", "", 20, "  ", ""},
		{"fits", "one two", 20, "", "one two"},
		{"wraps", "aaa bbb ccc", 8, "  ", "  aaa\n  bbb\n  ccc"},
		{"collapses whitespace", "a   b\n\nc", 80, "", "a b c"},
		{"long word stays intact", "abcdefghij k", 5, "", "abcdefghij\nk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width, tt.indent))
		})
	}
}

func TestGetTextWidth(t *testing.T) {
	assert.Equal(t, 60, getTextWidth(&contract.Config{Width: 60}))
	assert.Equal(t, maxTextWidth, getTextWidth(&contract.Config{Width: 500}))
	assert.Equal(t, minTextWidth, getTextWidth(&contract.Config{Width: 10}))

	detected := getTextWidth(&contract.Config{})
	assert.GreaterOrEqual(t, detected, minTextWidth)
	assert.LessOrEqual(t, detected, maxTextWidth)
}

func TestWriteJSONAndYAML(t *testing.T) {
	data := map[string]int{"score": 42}

	var jsonBuf bytes.Buffer
	require.NoError(t, writeJSON(&jsonBuf, data))
	assert.Equal(t, "{\n  \"score\": 42\n}\n", jsonBuf.String())

	var yamlBuf bytes.Buffer
	require.NoError(t, writeYAML(&yamlBuf, data))
	assert.Equal(t, "score: 42\n", yamlBuf.String())
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "two, three"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"two, three\"\n", buf.String())
}

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote text")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestWriteWithFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")
	err := writeWithFile(path, func(io.Writer) error { return nil }, "Wrote text")
	assert.Error(t, err)
}
