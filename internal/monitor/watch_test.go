package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleTime(t *testing.T) {
	hour, minute, err := parseScheduleTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 30, minute)

	// Empty falls back to the default.
	hour, minute, err = parseScheduleTime("")
	require.NoError(t, err)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 0, minute)

	_, _, err = parseScheduleTime("25:00")
	require.Error(t, err)

	_, _, err = parseScheduleTime("nine am")
	require.Error(t, err)
}

func TestNextRun(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)

	// Later today.
	next := nextRun(now, 9, 0)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), next)

	// Already passed: tomorrow.
	next = nextRun(now, 7, 30)
	assert.Equal(t, time.Date(2026, 9, 1, 7, 30, 0, 0, time.UTC), next)

	// Exactly now: tomorrow, never a zero wait.
	next = nextRun(now, 8, 0)
	assert.Equal(t, time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), next)
}
