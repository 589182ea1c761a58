package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader(t *testing.T) {
	path := writeFile(t, "a,b\n1,2\n3,4\n")

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"a", "b"}, r.Headers())

	data, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, data)
}

func TestReaderNoHeader(t *testing.T) {
	path := writeFile(t, "1,2\n3,4\n")

	r, err := NewReader(path, WithHeader(false))
	require.NoError(t, err)
	defer r.Close()

	assert.Nil(t, r.Headers())

	data, err := r.Read()
	require.NoError(t, err)
	assert.Len(t, data, 2)
}

func TestReaderMalformedRows(t *testing.T) {
	content := "a,b\n1,2\nnan?,4\n5,6\n"

	t.Run("skipped by default", func(t *testing.T) {
		r, err := NewReader(writeFile(t, content))
		require.NoError(t, err)
		defer r.Close()

		data, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{1, 2}, {5, 6}}, data)
	})

	t.Run("strict mode errors", func(t *testing.T) {
		r, err := NewReader(writeFile(t, content), WithStrict(true))
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Read()
		assert.Error(t, err)
	})
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
