// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_NoCheckers(t *testing.T) {
	m := NewManager("v1")
	ctx := context.Background()

	h := m.Health(ctx, true)
	assert.Equal(t, StatusHealthy, h.Status)
	assert.Equal(t, "v1", h.Version)

	r := m.Ready(ctx)
	assert.True(t, r.Ready)
}

func TestManager_UnhealthyChecker(t *testing.T) {
	m := NewManager("v1")
	m.RegisterChecker(NewPingChecker("store", func(context.Context) error { return nil }))
	m.RegisterChecker(NewPingChecker("cache", func(context.Context) error { return errors.New("down") }))

	resp := m.Ready(context.Background())
	assert.False(t, resp.Ready)
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, StatusHealthy, resp.Checks["store"].Status)
	assert.Equal(t, StatusUnhealthy, resp.Checks["cache"].Status)
}

func TestServeReady_StatusCodes(t *testing.T) {
	m := NewManager("v1")

	rec := httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, 200, rec.Code)

	m.RegisterChecker(NewPingChecker("store", func(context.Context) error { return errors.New("down") }))
	rec = httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, 503, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Ready)
}

func TestServeHealth_AlwaysOK(t *testing.T) {
	m := NewManager("v1")
	m.RegisterChecker(NewPingChecker("store", func(context.Context) error { return errors.New("down") }))

	rec := httptest.NewRecorder()
	m.ServeHealth(rec, httptest.NewRequest("GET", "/healthz?verbose=true", nil))
	assert.Equal(t, 200, rec.Code, "liveness is about the process, not components")

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatusUnhealthy, body.Status)
}

func TestLastRunChecker(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		last    time.Time
		lastErr string
		want    Status
	}{
		{"no run yet", time.Time{}, "", StatusDegraded},
		{"recent success", now.Add(-time.Minute), "", StatusHealthy},
		{"stale success", now.Add(-48 * time.Hour), "", StatusDegraded},
		{"failed run", now, "boom", StatusUnhealthy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewLastRunChecker(24*time.Hour, func() (time.Time, string) {
				return tc.last, tc.lastErr
			})
			assert.Equal(t, tc.want, c.Check(context.Background()).Status)
		})
	}
}
