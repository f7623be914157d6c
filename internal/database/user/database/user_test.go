package database

import (
	"errors"
	"testing"
	"time"

	"github.com/junglebet-games/viptransfer/internal/cache"
	"github.com/junglebet-games/viptransfer/internal/database"
	"github.com/junglebet-games/viptransfer/internal/database/dbtest"
	"github.com/junglebet-games/viptransfer/internal/database/user/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *DB {
	t.Helper()

	c, err := cache.NewLRU(16)
	require.NoError(t, err)

	return New(dbtest.New(t), c)
}

func TestStoreFetch(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	u := model.User{
		ID:        42,
		FirstName: "Ana",
		Username:  "ana_vip",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Status:    model.StatusActive,
	}
	require.NoError(t, db.Store(u))

	got, err := db.Fetch(42)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.Status, got.Status)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	byName, err := db.FetchByUsername("@ANA_VIP")
	require.NoError(t, err)
	assert.Equal(t, int64(42), byName.ID)
}

func TestFetchNotFound(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	_, err := db.Fetch(1)
	assert.True(t, errors.Is(err, database.ErrNotFound))

	require.NoError(t, db.Store(model.User{ID: 2, Username: "bob"}))
	_, err = db.Fetch(1)
	assert.True(t, errors.Is(err, database.ErrNotFound))

	_, err = db.FetchByUsername("alice")
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestStoreOverwritesCachedUser(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	require.NoError(t, db.Store(model.User{ID: 7, Status: model.StatusActive}))

	_, err := db.Fetch(7)
	require.NoError(t, err)

	require.NoError(t, db.Store(model.User{ID: 7, Status: model.StatusBanned}))
	got, err := db.Fetch(7)
	require.NoError(t, err)
	assert.Equal(t, model.StatusBanned, got.Status)
}

func TestWithoutCache(t *testing.T) {
	t.Parallel()

	db := New(dbtest.New(t), nil)
	require.NoError(t, db.Store(model.User{ID: 3, Admin: true}))

	got, err := db.Fetch(3)
	require.NoError(t, err)
	assert.True(t, got.Admin)
}
