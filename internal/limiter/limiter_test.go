package limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLimitPerKey(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(zap.NewNop(), 1, 2)
	l.now = func() time.Time { return now }

	assert.False(t, l.Limit("a"))
	assert.False(t, l.Limit("a"))
	assert.True(t, l.Limit("a"))

	// other visitors have their own bucket
	assert.False(t, l.Limit("b"))

	now = now.Add(time.Second)
	assert.False(t, l.Limit("a"))
}

func TestSweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(zap.NewNop(), 1, 1)
	l.now = func() time.Time { return now }

	l.Limit("old")
	now = now.Add(idleTTL + time.Minute)
	l.Limit("fresh")

	assert.Equal(t, 1, l.Sweep())
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "fresh")
}
