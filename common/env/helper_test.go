package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	t.Setenv("GATEWAY_TEST_INT", "42")
	assert.Equal(t, 42, Int("GATEWAY_TEST_INT", 7))

	t.Setenv("GATEWAY_TEST_INT", "not-a-number")
	assert.Equal(t, 7, Int("GATEWAY_TEST_INT", 7))

	assert.Equal(t, 7, Int("GATEWAY_TEST_INT_UNSET", 7))
}

func TestBool(t *testing.T) {
	t.Setenv("GATEWAY_TEST_BOOL", "TRUE")
	assert.True(t, Bool("GATEWAY_TEST_BOOL", false))

	t.Setenv("GATEWAY_TEST_BOOL", "no")
	assert.False(t, Bool("GATEWAY_TEST_BOOL", true))
}

func TestDuration(t *testing.T) {
	t.Setenv("GATEWAY_TEST_MS", "1500")
	assert.Equal(t, 1500*time.Millisecond, Duration("GATEWAY_TEST_MS", time.Second))

	t.Setenv("GATEWAY_TEST_MS", "-3")
	assert.Equal(t, time.Second, Duration("GATEWAY_TEST_MS", time.Second))
}
