package strpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsEmptyBuilder(t *testing.T) {
	b := Get()
	b.WriteString("dirty")
	Put(b)

	for i := 0; i < 4; i++ {
		b := Get()
		assert.Zero(t, b.Len())
		Put(b)
	}
}
