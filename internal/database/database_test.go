package database_test

import (
	"path/filepath"
	"testing"

	"shopcart/internal/database"
	"shopcart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.True(t, db.Migrator().HasTable(&models.Cart{}))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open("mongodb", "mongodb://localhost")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
