package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenRequestID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := GenRequestID()
		assert.Len(t, id, 22)
		assert.False(t, seen[id], "duplicate request id %s", id)
		seen[id] = true
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"short", "*****"},
		{"0000000000", "0000**0000"},
		{"sk-abcdefghijkl", "sk-a*******ijkl"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskKey(tt.key))
	}
}

func TestMessageWithRequestId(t *testing.T) {
	assert.Equal(t, "boom (request id: abc)", MessageWithRequestId("boom", "abc"))
}
