package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopRun(*Context) error { return nil }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "Ping", Aliases: []string{"P"}, Run: nopRun}))

	cmd, ok := r.Get("ping")
	require.True(t, ok)
	assert.Equal(t, "Ping", cmd.Name)

	// aliases and odd casing resolve too
	_, ok = r.Get("p")
	assert.True(t, ok)
	_, ok = r.Get("PING")
	assert.True(t, ok)

	_, ok = r.Get("pong")
	assert.False(t, ok)
}

func TestRegistryRejectsInvalid(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.Register(nil), ErrInvalidCommand)
	assert.ErrorIs(t, r.Register(&Command{Name: "x"}), ErrInvalidCommand)
	assert.ErrorIs(t, r.Register(&Command{Run: nopRun}), ErrInvalidCommand)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "ping", Aliases: []string{"p"}, Run: nopRun}))

	assert.ErrorIs(t, r.Register(&Command{Name: "PING", Run: nopRun}), ErrCommandExists)
	assert.ErrorIs(t, r.Register(&Command{Name: "pong", Aliases: []string{"p"}, Run: nopRun}), ErrCommandExists)
}

func TestRegistryCommandsSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, r.Register(&Command{Name: name, Run: nopRun}))
	}

	cmds := r.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "alpha", cmds[0].Name)
	assert.Equal(t, "bravo", cmds[1].Name)
	assert.Equal(t, "charlie", cmds[2].Name)
}
