package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *JsonDB {
	t.Helper()
	db, err := NewJsonDatabase(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return db
}

func TestJsonDBGuilds(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetGuild("1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.CreateGuild("1"))
	assert.ErrorIs(t, db.CreateGuild("1"), ErrDuplicate)

	g, err := db.GetGuild("1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefix, g.Prefix)
	assert.True(t, g.LevelingEnabled)

	g.Prefix = "!"
	g.WelcomeEnabled = true
	require.NoError(t, db.UpdateGuild("1", g))

	got, err := db.GetGuild("1")
	require.NoError(t, err)
	assert.Equal(t, "!", got.Prefix)
	assert.True(t, got.WelcomeEnabled)
}

func TestJsonDBPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	db, err := NewJsonDatabase(path)
	require.NoError(t, err)
	require.NoError(t, db.CreateGuild("1"))
	require.NoError(t, db.CreateAccount("1", "u1", 100))
	require.NoError(t, db.Close())

	db2, err := NewJsonDatabase(path)
	require.NoError(t, err)
	g, err := db2.GetGuild("1")
	require.NoError(t, err)
	assert.Equal(t, "1", g.ID)
	a, err := db2.GetAccount("1", "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 100, a.Wallet)
}

func TestJsonDBFileOnlyHoldsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	db, err := NewJsonDatabase(path)
	require.NoError(t, err)
	require.NoError(t, db.CreateGuild("1"))
	require.NoError(t, db.Close())

	// the lock guarding the state must not leak into the data file
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Mutex")
	assert.Contains(t, string(data), `"guilds"`)
}

func TestJsonDBAccounts(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.CreateAccount("1", "u1", 100))
	assert.ErrorIs(t, db.CreateAccount("1", "u1", 100), ErrDuplicate)

	a, err := db.GetAccount("1", "u1")
	require.NoError(t, err)
	a.Wallet -= 40
	a.Bank += 40
	require.NoError(t, db.UpdateAccount(a))

	got, err := db.GetAccount("1", "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 60, got.Wallet)
	assert.EqualValues(t, 40, got.Bank)

	// accounts are scoped per guild
	_, err = db.GetAccount("2", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJsonDBWarnings(t *testing.T) {
	db := newTestDB(t)

	w := &Warning{GuildID: "1", UserID: "u1", ModeratorID: "m1", Reason: "spam", GivenAt: time.Now()}
	require.NoError(t, db.AddWarning(w))
	require.NoError(t, db.AddWarning(w))

	warns, err := db.GetWarnings("1", "u1")
	require.NoError(t, err)
	require.Len(t, warns, 2)
	assert.NotEqual(t, warns[0].UID, warns[1].UID)

	removed, err := db.ClearWarnings("1", "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	warns, err = db.GetWarnings("1", "u1")
	require.NoError(t, err)
	assert.Empty(t, warns)
}

func TestJsonDBAutoResponses(t *testing.T) {
	db := newTestDB(t)

	r := &AutoResponse{GuildID: "1", Trigger: "hello", Response: "hi", CreatorID: "u1", MatchType: MatchExact}
	require.NoError(t, db.AddAutoResponse(r))

	// triggers are unique per guild, case-insensitively
	dup := &AutoResponse{GuildID: "1", Trigger: "HELLO", Response: "hey", CreatorID: "u1", MatchType: MatchExact}
	assert.ErrorIs(t, db.AddAutoResponse(dup), ErrDuplicate)

	other := &AutoResponse{GuildID: "2", Trigger: "hello", Response: "hi", CreatorID: "u1", MatchType: MatchExact}
	require.NoError(t, db.AddAutoResponse(other))

	rs, err := db.GetAutoResponses("1")
	require.NoError(t, err)
	assert.Len(t, rs, 1)

	require.NoError(t, db.RemoveAutoResponse("1", "hello"))
	assert.ErrorIs(t, db.RemoveAutoResponse("1", "hello"), ErrNotFound)
}

func TestJsonDBGiveaways(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	g := &Giveaway{MessageID: "msg1", GuildID: "1", ChannelID: "ch1", HostID: "u1", Prize: "a prize", WinnerCount: 1, EndsAt: now.Add(time.Hour)}
	require.NoError(t, db.CreateGiveaway(g))
	assert.ErrorIs(t, db.CreateGiveaway(g), ErrDuplicate)

	require.NoError(t, db.AddEntrant("msg1", "u2"))
	assert.ErrorIs(t, db.AddEntrant("msg1", "u2"), ErrDuplicate)
	require.NoError(t, db.AddEntrant("msg1", "u3"))

	entrants, err := db.GetEntrants("msg1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u2", "u3"}, entrants)

	require.NoError(t, db.RemoveEntrant("msg1", "u2"))
	entrants, err = db.GetEntrants("msg1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, entrants)

	expired, err := db.GetExpiredGiveaways(now)
	require.NoError(t, err)
	assert.Empty(t, expired)

	expired, err = db.GetExpiredGiveaways(now.Add(2 * time.Hour))
	require.NoError(t, err)
	require.Len(t, expired, 1)

	require.NoError(t, db.EndGiveaway("msg1"))
	active, err := db.GetActiveGiveaways("1")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestJsonDBTickets(t *testing.T) {
	db := newTestDB(t)

	tk := &Ticket{Ref: "abc", GuildID: "1", ChannelID: "ch1", UserID: "u1", Topic: "help", Open: true, OpenedAt: time.Now()}
	require.NoError(t, db.CreateTicket(tk))

	got, err := db.GetTicketByChannel("ch1")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Ref)

	require.NoError(t, db.CloseTicket("abc"))
	_, err = db.GetTicketByChannel("ch1")
	assert.ErrorIs(t, err, ErrNotFound)
}
