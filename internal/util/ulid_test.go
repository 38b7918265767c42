package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 1000; i++ {
		id := NewULID()
		assert.Len(t, id, 26)
		assert.True(t, IsValidULID(id))
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID("01HGZ8VNRYXS8QKNJV5GRWPWDQ"))
	assert.False(t, IsValidULID(""))
	assert.False(t, IsValidULID("not-a-ulid"))
	assert.False(t, IsValidULID("01HGZ8VNRYXS8QKNJV5GRWPWD"))
}
