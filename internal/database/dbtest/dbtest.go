// Package dbtest opens throwaway bolt files for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/junglebet-games/viptransfer/internal/database"
	"github.com/stretchr/testify/require"
)

func New(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewFromEnv(context.Background(), &database.Config{
		FilePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close(context.Background())
	})

	return db
}
