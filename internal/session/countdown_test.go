package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCountdown_InvalidDuration(t *testing.T) {
	_, err := NewCountdown(0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewCountdown(-5, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCountdown_TicksToZeroAndExpiresOnce(t *testing.T) {
	var fired int32
	c, err := NewCountdown(3, func() {
		atomic.AddInt32(&fired, 1)
	})
	require.NoError(t, err)

	assert.False(t, c.tick())
	assert.Equal(t, 2, c.Remaining())
	assert.False(t, c.tick())
	assert.Equal(t, 1, c.Remaining())

	// Third tick reaches zero and fires expiry
	assert.True(t, c.tick())
	assert.Equal(t, 0, c.Remaining())
	assert.True(t, c.Expired())
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// Further ticks never re-fire
	assert.True(t, c.tick())
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestCountdown_StopPreventsExpiry(t *testing.T) {
	var fired int32
	c, err := NewCountdown(2, func() {
		atomic.AddInt32(&fired, 1)
	})
	require.NoError(t, err)

	assert.False(t, c.tick())
	c.Stop()

	// After Stop ticks are inert and no callback ever fires
	assert.True(t, c.tick())
	assert.False(t, c.Expired())
	assert.Equal(t, 1, c.Remaining())
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))

	// Stop is idempotent
	c.Stop()
}

func TestCountdown_StartExpiresInRealTime(t *testing.T) {
	done := make(chan struct{})
	c, err := NewCountdown(1, func() {
		close(done)
	})
	require.NoError(t, err)

	c.Start(context.Background())

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("countdown did not expire")
	}
	assert.True(t, c.Expired())
	assert.Equal(t, 0, c.Remaining())
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{59, "00:59"},
		{60, "01:00"},
		{61, "01:01"},
		{600, "10:00"},
		{5999, "99:59"},
		// The minutes field simply grows past two digits
		{6000, "100:00"},
		{-3, "00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatSeconds(tc.seconds), "seconds=%d", tc.seconds)
	}
}
