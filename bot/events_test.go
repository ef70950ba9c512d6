package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maxybot/maxy/database"
)

func TestCommandDisabled(t *testing.T) {
	gc := &database.Guild{DisabledCommands: "ping, Daily ,snipe"}

	assert.True(t, commandDisabled(gc, "ping"))
	assert.True(t, commandDisabled(gc, "daily"))
	assert.True(t, commandDisabled(gc, "snipe"))
	assert.False(t, commandDisabled(gc, "help"))
	assert.False(t, commandDisabled(&database.Guild{}, "ping"))
}

func TestGuildCooldown(t *testing.T) {
	gc := &database.Guild{CooldownOverrides: "daily:3600, Snipe:0,transfer:30"}

	w, ok := guildCooldown(gc, "daily")
	assert.True(t, ok)
	assert.Equal(t, time.Hour, w)

	// zero override disables the cooldown outright
	w, ok = guildCooldown(gc, "snipe")
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), w)

	w, ok = guildCooldown(gc, "TRANSFER")
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, w)

	_, ok = guildCooldown(gc, "ping")
	assert.False(t, ok)

	_, ok = guildCooldown(&database.Guild{}, "daily")
	assert.False(t, ok)
}
