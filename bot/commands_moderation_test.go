package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteAfterNilMessage(t *testing.T) {
	// a failed send leaves the message nil; the cleanup must not
	// schedule anything that would dereference it later
	assert.NotPanics(t, func() {
		deleteAfter(nil, "ch1", nil, time.Millisecond)
	})
	time.Sleep(10 * time.Millisecond)
}

func TestTranscriptOrdersOldestFirst(t *testing.T) {
	msgs := []*discordgo.Message{
		{ID: "3", Content: "third", Author: &discordgo.User{ID: "u1", Username: "jeff"}},
		{ID: "1", Content: "first", Author: &discordgo.User{ID: "u1", Username: "jeff"}},
		{ID: "2", Content: "second", Author: &discordgo.User{ID: "u2", Username: "bob"}},
	}

	got := transcript(msgs)
	first := strings.Index(got, "first")
	second := strings.Index(got, "second")
	third := strings.Index(got, "third")
	require.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	// input order untouched
	assert.Equal(t, "3", msgs[0].ID)
}
