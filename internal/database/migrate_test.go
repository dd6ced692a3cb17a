package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrations_AreOrderedAndPaired(t *testing.T) {
	t.Parallel()

	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)

	var versions []uint
	for {
		versions = append(versions, version)

		up, _, err := src.ReadUp(version)
		require.NoError(t, err, "missing up migration for %d", version)
		up.Close()

		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "missing down migration for %d", version)
		down.Close()

		next, err := src.Next(version)
		if err != nil {
			break
		}
		version = next
	}

	assert.Equal(t, []uint{1, 2, 3, 4}, versions)
}

func TestMigrations_UsernameIsUnique(t *testing.T) {
	t.Parallel()

	body, err := fs.ReadFile(migrationsFS, "migrations/000001_create_users.up.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users (username)"))
}

func TestRunMigrations_NilDB(t *testing.T) {
	t.Parallel()

	assert.Error(t, RunMigrations(nil, zap.NewNop()))
}
