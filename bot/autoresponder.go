package bot

import (
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/maxybot/maxy/database"
)

// ResponderCache keeps each guild's auto responses in memory so message
// matching never hits the database. Guilds load lazily on first use and
// reload after Invalidate.
type ResponderCache struct {
	mu       sync.RWMutex
	db       database.DB
	log      *zap.Logger
	guilds   map[string][]*database.AutoResponse
	limiters map[string]*rate.Limiter
}

func NewResponderCache(db database.DB, log *zap.Logger) *ResponderCache {
	return &ResponderCache{
		db:       db,
		log:      log,
		guilds:   make(map[string][]*database.AutoResponse),
		limiters: make(map[string]*rate.Limiter),
	}
}

func (rc *ResponderCache) responses(gid string) []*database.AutoResponse {
	rc.mu.RLock()
	rs, ok := rc.guilds[gid]
	rc.mu.RUnlock()
	if ok {
		return rs
	}

	rs, err := rc.db.GetAutoResponses(gid)
	if err != nil && err != database.ErrNotFound {
		rc.log.Error("failed to load auto responses", zap.String("guild", gid), zap.Error(err))
		return nil
	}

	rc.mu.Lock()
	rc.guilds[gid] = rs
	rc.mu.Unlock()
	return rs
}

// Invalidate drops a guild's cached responses so the next message
// reloads them.
func (rc *ResponderCache) Invalidate(gid string) {
	rc.mu.Lock()
	delete(rc.guilds, gid)
	rc.mu.Unlock()
}

// Match returns the first auto response whose trigger matches content.
func (rc *ResponderCache) Match(gid, content string) (*database.AutoResponse, bool) {
	for _, r := range rc.responses(gid) {
		if matches(r, content) {
			return r, true
		}
	}
	return nil, false
}

func matches(r *database.AutoResponse, content string) bool {
	trigger := r.Trigger
	if !r.CaseSensitive {
		trigger = strings.ToLower(trigger)
		content = strings.ToLower(content)
	}

	switch r.MatchType {
	case database.MatchContains:
		return strings.Contains(content, trigger)
	case database.MatchPrefix:
		return strings.HasPrefix(content, trigger)
	case database.MatchSuffix:
		return strings.HasSuffix(content, trigger)
	default:
		return content == trigger
	}
}

// AllowSend rate limits responder output per channel so a trigger spam
// cannot flood a channel. One response per 2 seconds, bursts of 3.
func (rc *ResponderCache) AllowSend(chID string) bool {
	rc.mu.Lock()
	lim, ok := rc.limiters[chID]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(0.5), 3)
		rc.limiters[chID] = lim
	}
	rc.mu.Unlock()
	return lim.Allow()
}

// respond reports whether the message matched a trigger; a match is
// consumed even when the flood guard swallows the reply.
func (b *Bot) respond(c *Context, m *discordgo.MessageCreate) bool {
	r, ok := b.responders.Match(m.GuildID, m.Content)
	if !ok {
		return false
	}

	if !b.responders.AllowSend(m.ChannelID) {
		return true
	}

	_, err := c.s.ChannelMessageSend(m.ChannelID, r.Response)
	if err != nil {
		b.log.Error("failed to send auto response", zap.Error(err))
	}
	return true
}
