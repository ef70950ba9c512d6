package bot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxybot/maxy/database"
)

func newTestCache(t *testing.T) (*ResponderCache, database.DB) {
	t.Helper()
	db, err := database.NewJsonDatabase(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return NewResponderCache(db, zap.NewNop()), db
}

func TestResponderMatchTypes(t *testing.T) {
	rc, db := newTestCache(t)

	for _, r := range []*database.AutoResponse{
		{GuildID: "g1", Trigger: "hello", Response: "hi there", MatchType: database.MatchExact},
		{GuildID: "g1", Trigger: "pizza", Response: "yum", MatchType: database.MatchContains},
		{GuildID: "g1", Trigger: "good morning", Response: "gm", MatchType: database.MatchPrefix},
		{GuildID: "g1", Trigger: "bye", Response: "cya", MatchType: database.MatchSuffix},
	} {
		require.NoError(t, db.AddAutoResponse(r))
	}

	got, ok := rc.Match("g1", "hello")
	require.True(t, ok)
	assert.Equal(t, "hi there", got.Response)

	_, ok = rc.Match("g1", "hello there")
	assert.False(t, ok)

	got, ok = rc.Match("g1", "i want some pizza tonight")
	require.True(t, ok)
	assert.Equal(t, "yum", got.Response)

	got, ok = rc.Match("g1", "good morning everyone")
	require.True(t, ok)
	assert.Equal(t, "gm", got.Response)

	got, ok = rc.Match("g1", "ok bye")
	require.True(t, ok)
	assert.Equal(t, "cya", got.Response)
}

func TestResponderCaseSensitivity(t *testing.T) {
	rc, db := newTestCache(t)

	require.NoError(t, db.AddAutoResponse(&database.AutoResponse{
		GuildID: "g1", Trigger: "Hello", Response: "loose", MatchType: database.MatchExact,
	}))
	require.NoError(t, db.AddAutoResponse(&database.AutoResponse{
		GuildID: "g1", Trigger: "STRICT", Response: "strict", MatchType: database.MatchExact, CaseSensitive: true,
	}))

	_, ok := rc.Match("g1", "HELLO")
	assert.True(t, ok)

	_, ok = rc.Match("g1", "strict")
	assert.False(t, ok)

	_, ok = rc.Match("g1", "STRICT")
	assert.True(t, ok)
}

func TestResponderCacheInvalidate(t *testing.T) {
	rc, db := newTestCache(t)

	require.NoError(t, db.AddAutoResponse(&database.AutoResponse{
		GuildID: "g1", Trigger: "old", Response: "old", MatchType: database.MatchExact,
	}))

	_, ok := rc.Match("g1", "old")
	require.True(t, ok)

	// cache still serves the stale set until invalidated
	require.NoError(t, db.AddAutoResponse(&database.AutoResponse{
		GuildID: "g1", Trigger: "new", Response: "new", MatchType: database.MatchExact,
	}))
	_, ok = rc.Match("g1", "new")
	assert.False(t, ok)

	rc.Invalidate("g1")
	_, ok = rc.Match("g1", "new")
	assert.True(t, ok)
}

func TestResponderGuildIsolation(t *testing.T) {
	rc, db := newTestCache(t)

	require.NoError(t, db.AddAutoResponse(&database.AutoResponse{
		GuildID: "g1", Trigger: "hello", Response: "hi", MatchType: database.MatchExact,
	}))

	_, ok := rc.Match("g2", "hello")
	assert.False(t, ok)
}

func TestResponderFloodGuard(t *testing.T) {
	rc, _ := newTestCache(t)

	// burst of 3, then denied
	for i := 0; i < 3; i++ {
		assert.True(t, rc.AllowSend("ch1"))
	}
	assert.False(t, rc.AllowSend("ch1"))

	// other channels have their own budget
	assert.True(t, rc.AllowSend("ch2"))
}
