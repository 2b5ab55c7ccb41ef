package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)

	assert.FileExists(t, path)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestConnectSQLiteFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searches.db")
	t.Setenv("TRAVIGO_SQLITE_PATH", path)

	require.NoError(t, ConnectSQLite())
	assert.NotNil(t, GlobalGorm)
	assert.FileExists(t, path)
}
