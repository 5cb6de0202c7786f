// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedis(RedisConfig{Addr: mr.Addr()}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedis_GetSet(t *testing.T) {
	c := newTestRedis(t)

	c.Set("key1", "value1", 5*time.Minute)

	val, ok := c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "value1", val)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestRedis_StructuredValues(t *testing.T) {
	c := newTestRedis(t)

	c.Set("components", [][]string{{"a", "b"}, {"c"}}, time.Minute)

	val, ok := c.Get("components")
	require.True(t, ok)
	// JSON round-trip decodes into the generic form.
	assert.Equal(t, []any{[]any{"a", "b"}, []any{"c"}}, val)
}

func TestRedis_DeleteAndClear(t *testing.T) {
	c := newTestRedis(t)

	c.Set("key1", 1, time.Minute)
	c.Delete("key1")
	_, ok := c.Get("key1")
	assert.False(t, ok)

	c.Set("key2", 2, time.Minute)
	c.Clear()
	_, ok = c.Get("key2")
	assert.False(t, ok)
}

func TestRedis_HealthCheck(t *testing.T) {
	c := newTestRedis(t)
	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestRedis_ConnectionFailure(t *testing.T) {
	_, err := NewRedis(RedisConfig{Addr: "127.0.0.1:1"}, zerolog.Nop())
	assert.Error(t, err)
}
