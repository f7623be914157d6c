package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	c, err := NewLRU(2)
	require.NoError(t, err)

	c.Add(int64(1), "one")
	v, ok := c.Get(int64(1))
	require.True(t, ok)
	assert.Equal(t, "one", v)

	c.Delete(int64(1))
	_, ok = c.Get(int64(1))
	assert.False(t, ok)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	assert.Len(t, c.Keys(), 2)
}

func TestNewLRUInvalidSize(t *testing.T) {
	t.Parallel()

	_, err := NewLRU(0)
	assert.Error(t, err)
}
