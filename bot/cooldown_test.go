package bot

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1700000000, 0)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newTestManager(window time.Duration, scope Scope) (*CooldownManager, *fakeClock) {
	cd := NewCooldownManager(window, scope)
	clock := newFakeClock()
	cd.now = clock.Now
	return cd, clock
}

func TestCooldownFirstUseAllowed(t *testing.T) {
	cd, _ := newTestManager(10*time.Second, ScopeGlobal)

	v, err := cd.Check("ban", "u1", "")
	require.NoError(t, err)
	assert.True(t, v.Allowed)

	v, err = cd.Check("ban", "u1", "")
	require.NoError(t, err)
	assert.False(t, v.Allowed)
	assert.Greater(t, v.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, v.RetryAfter, 10*time.Second)
}

func TestCooldownRetryAfterExample(t *testing.T) {
	// window 10s: allowed at t=0, denied at t=3 with ~7s left, allowed at t=10
	cd, clock := newTestManager(10*time.Second, ScopeGlobal)

	v, err := cd.Check("ban", "u1", "")
	require.NoError(t, err)
	assert.True(t, v.Allowed)

	clock.Advance(3 * time.Second)
	v, err = cd.Check("ban", "u1", "")
	require.NoError(t, err)
	assert.False(t, v.Allowed)
	assert.Equal(t, 7*time.Second, v.RetryAfter)

	clock.Advance(7 * time.Second)
	v, err = cd.Check("ban", "u1", "")
	require.NoError(t, err)
	assert.True(t, v.Allowed)
}

func TestCooldownRejectionDoesNotExtend(t *testing.T) {
	cd, clock := newTestManager(10*time.Second, ScopeGlobal)

	v, _ := cd.Check("ban", "u1", "")
	require.True(t, v.Allowed)

	// hammer the command during the window
	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		v, err := cd.Check("ban", "u1", "")
		require.NoError(t, err)
		assert.False(t, v.Allowed)
	}

	// only the original stamp counts: 10s after t=0 we are free again
	clock.Advance(5 * time.Second)
	v, err := cd.Check("ban", "u1", "")
	require.NoError(t, err)
	assert.True(t, v.Allowed)
}

func TestCooldownZeroWindowAlwaysAllowed(t *testing.T) {
	cd, _ := newTestManager(0, ScopeGlobal)

	for i := 0; i < 10; i++ {
		v, err := cd.Check("ping", "u1", "")
		require.NoError(t, err)
		assert.True(t, v.Allowed)
	}
	assert.Zero(t, cd.Len())
}

func TestCooldownReset(t *testing.T) {
	cd, _ := newTestManager(time.Minute, ScopeGlobal)

	v, _ := cd.Check("ban", "u1", "")
	require.True(t, v.Allowed)
	v, _ = cd.Check("ban", "u1", "")
	require.False(t, v.Allowed)

	require.NoError(t, cd.Reset("ban", "u1", ""))
	v, err := cd.Check("ban", "u1", "")
	require.NoError(t, err)
	assert.True(t, v.Allowed)

	// resetting an untracked key is fine
	require.NoError(t, cd.Reset("ban", "nobody", ""))
}

func TestCooldownEmptyIdentifiers(t *testing.T) {
	cd, _ := newTestManager(time.Minute, ScopeGlobal)

	_, err := cd.Check("", "u1", "")
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
	_, err = cd.Check("ban", "", "")
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
	assert.ErrorIs(t, cd.Reset("", "u1", ""), ErrEmptyIdentifier)
	assert.Zero(t, cd.Len())

	// guild-scoped managers also require a guild id
	scoped, _ := newTestManager(time.Minute, ScopeGuild)
	_, err = scoped.Check("ban", "u1", "")
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
}

func TestCooldownKeysAreIndependent(t *testing.T) {
	cd, _ := newTestManager(time.Minute, ScopeGlobal)

	v, _ := cd.Check("ban", "u1", "")
	assert.True(t, v.Allowed)

	// different user, different command: both unaffected
	v, _ = cd.Check("ban", "u2", "")
	assert.True(t, v.Allowed)
	v, _ = cd.Check("kick", "u1", "")
	assert.True(t, v.Allowed)
}

func TestCooldownGuildScoping(t *testing.T) {
	scoped, _ := newTestManager(time.Minute, ScopeGuild)

	v, _ := scoped.Check("ban", "u1", "g1")
	assert.True(t, v.Allowed)
	// same user+command in another guild is a separate key
	v, _ = scoped.Check("ban", "u1", "g2")
	assert.True(t, v.Allowed)
	v, _ = scoped.Check("ban", "u1", "g1")
	assert.False(t, v.Allowed)

	global, _ := newTestManager(time.Minute, ScopeGlobal)
	v, _ = global.Check("ban", "u1", "g1")
	assert.True(t, v.Allowed)
	// global scope ignores the guild
	v, _ = global.Check("ban", "u1", "g2")
	assert.False(t, v.Allowed)
}

func TestCooldownClockBackwards(t *testing.T) {
	cd, clock := newTestManager(10*time.Second, ScopeGlobal)

	v, _ := cd.Check("ban", "u1", "")
	require.True(t, v.Allowed)

	clock.Advance(-time.Hour)
	v, err := cd.Check("ban", "u1", "")
	require.NoError(t, err)
	assert.False(t, v.Allowed)
	assert.Equal(t, 10*time.Second, v.RetryAfter)
}

func TestCooldownWindowOverride(t *testing.T) {
	cd, clock := newTestManager(5*time.Second, ScopeGlobal)
	cd.SetWindow("daily", 24*time.Hour)

	assert.Equal(t, 24*time.Hour, cd.Window("daily"))
	assert.Equal(t, 5*time.Second, cd.Window("ban"))

	v, _ := cd.Check("daily", "u1", "")
	require.True(t, v.Allowed)

	clock.Advance(time.Hour)
	v, _ = cd.Check("daily", "u1", "")
	assert.False(t, v.Allowed)
	assert.Equal(t, 23*time.Hour, v.RetryAfter)
}

func TestCooldownConcurrentSingleWinner(t *testing.T) {
	cd, _ := newTestManager(time.Minute, ScopeGlobal)

	const n = 64
	var wg sync.WaitGroup
	var start sync.WaitGroup
	start.Add(1)

	type result struct {
		allowed bool
		err     error
	}
	results := make(chan result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start.Wait()
			v, err := cd.Check("ban", "u1", "")
			results <- result{allowed: v.Allowed, err: err}
		}()
	}

	start.Done()
	wg.Wait()
	close(results)

	wins := 0
	for r := range results {
		require.NoError(t, r.err)
		if r.allowed {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestCooldownSweepBoundsRecords(t *testing.T) {
	cd, clock := newTestManager(time.Second, ScopeGlobal)

	for i := 0; i < sweepThreshold; i++ {
		_, err := cd.CheckWindow("cmd", "u"+strconv.Itoa(i), "", time.Second)
		require.NoError(t, err)
	}
	require.Equal(t, sweepThreshold, cd.Len())

	// all records expire; the next insert triggers the sweep
	clock.Advance(2 * time.Second)
	_, err := cd.Check("cmd", "one-more", "")
	require.NoError(t, err)
	assert.Equal(t, 1, cd.Len())
}
