package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	mc := NewMemcacheService("localhost:11211", "dealcollector_test:")

	if err := mc.Ping(); err != nil {
		t.Skip("Memcached is not available, skipping test")
	}

	// Set a value
	err := mc.Set("desktop_rate_limited", []byte("600"), 2*time.Second)
	assert.NoError(t, err)

	// Get the value
	value, err := mc.Get("desktop_rate_limited")
	assert.NoError(t, err)
	assert.Equal(t, "600", string(value))

	// A key that was never set is a plain miss
	_, err = mc.Get("mobile_rate_limited")
	assert.ErrorIs(t, err, ErrNotFound)
}
