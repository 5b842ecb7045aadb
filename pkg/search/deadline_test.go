package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineNoDeadlineNeverTrips(t *testing.T) {
	d := NewNoDeadline()
	assert.False(t, d.CheckHard(time.Now().Add(time.Hour), 1<<30))
	assert.False(t, d.CheckSoft(time.Now().Add(time.Hour), 1<<30, 1<<20))
}

func TestDeadlineDepthDeadline(t *testing.T) {
	d := NewDepthDeadline(5)
	assert.False(t, d.CheckSoft(time.Now(), 0, 4))
	assert.True(t, d.CheckSoft(time.Now(), 0, 5))
	// depth deadline only gates between-iteration soft checks, never the hard poll
	assert.False(t, d.CheckHard(time.Now(), 0))
}

func TestDeadlineNodesDeadline(t *testing.T) {
	d := NewNodesDeadline(1000)
	assert.False(t, d.CheckHard(time.Now(), 999))
	assert.True(t, d.CheckHard(time.Now(), 1000))
	assert.True(t, d.CheckSoft(time.Now(), 1000, 1))
}

func TestDeadlineTimeDeadline(t *testing.T) {
	now := time.Now()
	d := NewTimeDeadline(now.Add(10*time.Millisecond), now.Add(20*time.Millisecond))

	assert.False(t, d.CheckSoft(now, 0, 1))
	assert.False(t, d.CheckHard(now, 0))

	assert.True(t, d.CheckSoft(now.Add(15*time.Millisecond), 0, 1))
	assert.False(t, d.CheckHard(now.Add(15*time.Millisecond), 0))

	assert.True(t, d.CheckHard(now.Add(25*time.Millisecond), 0))
}

func TestDeadlineExternalStopLatchesBoth(t *testing.T) {
	d := NewNoDeadline()
	d.Stop()
	assert.True(t, d.Stopped())
	assert.True(t, d.CheckHard(time.Now(), 0))
	assert.True(t, d.CheckSoft(time.Now(), 0, 0))
}

func TestNewDeadlineFromClockDefaultsMovesToGo(t *testing.T) {
	now := time.Now()
	d := NewDeadlineFromClock(now, 60000, 0, 0)

	// M defaults to 20: soft = 60000/30 = 2000ms, hard = 60000/20 = 3000ms
	assert.WithinDuration(t, now.Add(2000*time.Millisecond), d.soft, time.Millisecond)
	assert.WithinDuration(t, now.Add(3000*time.Millisecond), d.hard, time.Millisecond)
}

func TestNewDeadlineFromClockHonorsMovesToGoAndIncrement(t *testing.T) {
	now := time.Now()
	d := NewDeadlineFromClock(now, 10000, 500, 10)

	// soft = 10000/20 + 500/5 = 500 + 100 = 600ms, hard = 10000/10 + 500 = 1500ms
	assert.WithinDuration(t, now.Add(600*time.Millisecond), d.soft, time.Millisecond)
	assert.WithinDuration(t, now.Add(1500*time.Millisecond), d.hard, time.Millisecond)
}
