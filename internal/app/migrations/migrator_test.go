package migrations

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionsSorted(t *testing.T) {
	files := fstest.MapFS{
		"002_more.sql":   {Data: []byte("SELECT 1;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("ignored")},
		"003/nested.sql": {Data: []byte("SELECT 1;")},
	}

	names, err := Versions(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_first.sql", "002_more.sql"}, names)
	assert.Equal(t, "002", versionOf(names[1]))
}

func TestEmbeddedDocumentsMigration(t *testing.T) {
	sub, err := fs.Sub(embedded, "sql")
	require.NoError(t, err)

	names, err := Versions(sub)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_documents.sql", names[0])

	body, err := fs.ReadFile(sub, names[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS documents")
}
