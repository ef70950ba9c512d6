package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 0, levelForXP(0))
	assert.Equal(t, 0, levelForXP(99))
	assert.Equal(t, 1, levelForXP(100))
	assert.Equal(t, 1, levelForXP(399))
	assert.Equal(t, 2, levelForXP(400))
	assert.Equal(t, 5, levelForXP(2500))
	assert.Equal(t, 10, levelForXP(10000))
}

func TestXPForLevelRoundTrip(t *testing.T) {
	for level := 0; level < 50; level++ {
		xp := xpForLevel(level)
		assert.Equal(t, level, levelForXP(xp))
		if level > 0 {
			assert.Equal(t, level-1, levelForXP(xp-1))
		}
	}
}
