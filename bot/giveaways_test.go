package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"10m", 10 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{" 5M ", 5 * time.Minute},
	}
	for _, c := range cases {
		got, err := parseDuration(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseDurationRejects(t *testing.T) {
	for _, in := range []string{"", "10", "m", "10x", "-5m", "1h30m", "0s"} {
		_, err := parseDuration(in)
		assert.ErrorIs(t, err, ErrBadDuration, in)
	}
}

func TestDrawWinners(t *testing.T) {
	entrants := []string{"a", "b", "c", "d"}

	got := drawWinners(entrants, 2)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])
	for _, w := range got {
		assert.Contains(t, entrants, w)
	}

	// asking for more winners than entrants returns everyone
	got = drawWinners([]string{"a"}, 3)
	assert.Equal(t, []string{"a"}, got)

	assert.Nil(t, drawWinners(nil, 1))
	assert.Nil(t, drawWinners(entrants, 0))
}
