package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestDeduplicator(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	d := NewRequestDeduplicator()
	d.now = func() time.Time { return now }

	assert.True(t, d.TryAcquire(1, time.Minute, "Subject", "Body"))
	assert.False(t, d.TryAcquire(1, time.Minute, "Subject", "Body"), "same user, same content")
	assert.True(t, d.TryAcquire(2, time.Minute, "Subject", "Body"), "other user")
	assert.True(t, d.TryAcquire(1, time.Minute, "Subject", "Other body"), "other content")
	assert.True(t, d.TryAcquire(1, time.Minute, "Sub", "jectBody"), "parts are separated")

	d.Release(1, "Subject", "Other body")
	assert.True(t, d.TryAcquire(1, time.Minute, "Subject", "Other body"), "released slot")
	d.Release(3, "never", "taken")

	now = now.Add(2 * time.Minute)
	assert.True(t, d.TryAcquire(1, time.Minute, "Subject", "Body"), "expired lock is renewed")

	now = now.Add(10 * time.Minute)
	d.sweep()
	count := 0
	d.locks.Range(func(_, _ interface{}) bool { count++; return true })
	assert.Zero(t, count)
}
