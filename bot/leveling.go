package bot

import (
	"math"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/maxybot/maxy/database"
)

// levelForXP maps accumulated XP to a level. Level n needs n*n*100 XP.
func levelForXP(xp int64) int {
	if xp <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(xp) / 100))
}

// xpForLevel is the inverse, the XP floor of a level.
func xpForLevel(level int) int64 {
	return int64(level) * int64(level) * 100
}

// awardXP grants message XP, at most once per guild cooldown window.
func (b *Bot) awardXP(c *Context, m *discordgo.MessageCreate) {
	window := time.Duration(c.gc.XPCooldownSecs) * time.Second
	verdict, err := b.cooldowns.CheckWindow("xp", m.Author.ID, m.GuildID, window)
	if err != nil || !verdict.Allowed {
		return
	}

	entry, err := b.db.GetLevelEntry(m.GuildID, m.Author.ID)
	if err == database.ErrNotFound {
		if err := b.db.CreateLevelEntry(m.GuildID, m.Author.ID); err != nil {
			b.log.Error("failed to create level entry", zap.Error(err))
			return
		}
		entry, err = b.db.GetLevelEntry(m.GuildID, m.Author.ID)
	}
	if err != nil {
		b.log.Error("failed to get level entry", zap.Error(err))
		return
	}

	min, max := c.gc.XPPerMessageMin, c.gc.XPPerMessageMax
	if max < min {
		max = min
	}
	entry.XP += int64(min + rand.Intn(max-min+1))

	newLevel := levelForXP(entry.XP)
	leveled := newLevel > entry.Level
	entry.Level = newLevel

	if err := b.db.UpdateLevelEntry(entry); err != nil {
		b.log.Error("failed to update level entry", zap.Error(err))
		return
	}

	if !leveled {
		return
	}

	if c.gc.LevelUpMessage != "" {
		g, _ := c.s.State.Guild(m.GuildID)
		msg := RenderTemplate(c.gc.LevelUpMessage, &TemplateData{
			User:  m.Author,
			Guild: g,
			Level: newLevel,
		})
		_, _ = c.s.ChannelMessageSend(m.ChannelID, msg)
	}

	b.applyLevelRoles(c, m.GuildID, m.Author.ID, newLevel)
}

// applyLevelRoles grants every role reward at or below the new level.
func (b *Bot) applyLevelRoles(c *Context, gid, uid string, level int) {
	roles, err := b.db.GetLevelRoles(gid)
	if err != nil {
		return
	}

	for _, lr := range roles {
		if lr.Level > level {
			continue
		}
		if err := c.s.GuildMemberRoleAdd(gid, uid, lr.RoleID); err != nil {
			b.log.Error("failed to add level role",
				zap.String("role", lr.RoleID), zap.Error(err))
		}
	}
}
