package migrate

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taoyao-code/ubx-gateway/db"
)

func TestDiscoverUp(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0010_late_up.sql":  {Data: []byte("SELECT 1")},
		"migrations/0002_b_up.sql":     {Data: []byte("SELECT 1")},
		"migrations/0002_b_down.sql":   {Data: []byte("SELECT 1")},
		"migrations/readme.md":         {Data: []byte("x")},
		"migrations/abc_up.sql":        {Data: []byte("SELECT 1")},
		"migrations/0001_first_up.sql": {Data: []byte("SELECT 1")},
	}
	files, err := discoverUp(fsys)
	require.NoError(t, err)

	var versions []int64
	for _, f := range files {
		versions = append(versions, f.Version)
	}
	assert.Equal(t, []int64{1, 2, 10}, versions)
	assert.Equal(t, "migrations/0001_first_up.sql", files[0].Path)
}

func TestDiscoverUp_Duplicate(t *testing.T) {
	fsys := fstest.MapFS{
		"0001_a_up.sql": {Data: []byte("SELECT 1")},
		"0001_b_up.sql": {Data: []byte("SELECT 1")},
	}
	_, err := discoverUp(fsys)
	assert.ErrorContains(t, err, "duplicate migration version 1")
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := discoverUp(db.Migrations)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.EqualValues(t, 1, files[0].Version)
	assert.EqualValues(t, 2, files[1].Version)
}

func TestRunner_NoSource(t *testing.T) {
	_, err := Runner{}.fsys()
	assert.Error(t, err)
}
