package objectid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeneratesValidIDs(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New()
		assert.Len(t, id, 24)
		assert.True(t, IsValid(id), "generated id %q must validate", id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("68b1c2d3e4f5a6b7c8d9e0f1"))

	assert.False(t, IsValid(""))
	assert.False(t, IsValid("68B1C2D3E4F5A6B7C8D9E0F1"), "uppercase hex is rejected")
	assert.False(t, IsValid("68b1c2d3e4f5a6b7c8d9e0f"), "too short")
	assert.False(t, IsValid("68b1c2d3e4f5a6b7c8d9e0f12"), "too long")
	assert.False(t, IsValid("68b1c2d3e4f5a6b7c8d9e0fg"), "non-hex character")
	assert.False(t, IsValid("not-an-object-id-at-all!"))
}
