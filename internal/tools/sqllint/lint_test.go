package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryQueriesAreMarked(t *testing.T) {
	violations, err := lintPaths([]string{filepath.Join("..", "..", "sqlinline")})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestLintFlagsMissingAndDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	src := "package q\n\n" +
		"const QOk = `--sql 11111111-2222-4333-8444-555555555555\nselect 1;`\n" +
		"const QDup = `--sql 11111111-2222-4333-8444-555555555555\nselect 2;`\n" +
		"const QBare = `create table t (id int);`\n" +
		"const NotSQL = \"hello\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q.go"), []byte(src), 0o600))

	violations, err := lintPaths([]string{dir})
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, "QDup", violations[0].name)
	assert.Contains(t, violations[0].message, "already used")
	assert.Equal(t, "QBare", violations[1].name)
	assert.Contains(t, violations[1].message, "missing")
}
