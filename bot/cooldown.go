package bot

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// Scope controls whether cooldown keys include the guild, so the same
// user+command pair can be tracked per guild or once across all guilds.
type Scope int

const (
	ScopeGuild Scope = iota
	ScopeGlobal
)

// ErrEmptyIdentifier is returned when a command or user identifier is
// missing; a blank would silently collapse distinct keys into one.
var ErrEmptyIdentifier = errors.New("cooldown: empty identifier")

// Verdict is the answer to a cooldown check.
type Verdict struct {
	Allowed    bool
	RetryAfter time.Duration
}

type cooldownRecord struct {
	lastUsed time.Time
	window   time.Duration
}

// CooldownManager tracks the most recent permitted invocation per
// (command, user[, guild]) key. It is owned by the Bot and injected where
// needed; all state is in-memory and lost on restart, which is fine.
type CooldownManager struct {
	mu            sync.Mutex
	records       map[string]cooldownRecord
	windows       map[string]time.Duration
	defaultWindow time.Duration
	scope         Scope
	now           func() time.Time
}

// sweepThreshold bounds the record map; once it grows past this, expired
// entries are swept out during the next check.
const sweepThreshold = 4096

func NewCooldownManager(defaultWindow time.Duration, scope Scope) *CooldownManager {
	return &CooldownManager{
		records:       make(map[string]cooldownRecord),
		windows:       make(map[string]time.Duration),
		defaultWindow: defaultWindow,
		scope:         scope,
		now:           time.Now,
	}
}

// SetWindow configures the cooldown window for a command. A zero or
// negative window disables the cooldown.
func (c *CooldownManager) SetWindow(commandID string, w time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows[strings.ToLower(commandID)] = w
}

// Window returns the configured window for a command, falling back to
// the manager default.
func (c *CooldownManager) Window(commandID string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.windows[strings.ToLower(commandID)]; ok {
		return w
	}
	return c.defaultWindow
}

// Check reports whether the key may invoke now, using the configured
// window for the command.
func (c *CooldownManager) Check(commandID, userID, guildID string) (Verdict, error) {
	return c.CheckWindow(commandID, userID, guildID, c.Window(commandID))
}

// CheckWindow is Check with an explicit window, for callers that resolve
// per-guild overrides themselves. The read and the stamp happen inside
// one critical section so two near-simultaneous invocations for the same
// key can never both be allowed.
func (c *CooldownManager) CheckWindow(commandID, userID, guildID string, window time.Duration) (Verdict, error) {
	k, err := c.key(commandID, userID, guildID)
	if err != nil {
		return Verdict{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if window <= 0 {
		// cooldown disabled; drop any stale record while we are here
		delete(c.records, k)
		return Verdict{Allowed: true}, nil
	}

	rec, ok := c.records[k]
	if ok {
		elapsed := now.Sub(rec.lastUsed)
		if elapsed < 0 {
			// host clock went backwards; deny rather than allow
			return Verdict{RetryAfter: window}, nil
		}
		if elapsed < window {
			// a rejected attempt must not extend the cooldown
			return Verdict{RetryAfter: window - elapsed}, nil
		}
	}

	c.records[k] = cooldownRecord{lastUsed: now, window: window}
	if len(c.records) > sweepThreshold {
		c.sweep(now)
	}
	return Verdict{Allowed: true}, nil
}

// Reset removes any tracked record for the key. Resetting an untracked
// key is not an error.
func (c *CooldownManager) Reset(commandID, userID, guildID string) error {
	k, err := c.key(commandID, userID, guildID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, k)
	return nil
}

// Len reports the number of live records, for tests and diagnostics.
func (c *CooldownManager) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func (c *CooldownManager) key(commandID, userID, guildID string) (string, error) {
	if commandID == "" || userID == "" {
		return "", ErrEmptyIdentifier
	}
	if c.scope == ScopeGuild {
		if guildID == "" {
			return "", ErrEmptyIdentifier
		}
		return strings.ToLower(commandID) + ":" + userID + ":" + guildID, nil
	}
	return strings.ToLower(commandID) + ":" + userID, nil
}

// sweep drops every expired record. Caller must hold the lock.
func (c *CooldownManager) sweep(now time.Time) {
	for k, rec := range c.records {
		if now.Sub(rec.lastUsed) >= rec.window {
			delete(c.records, k)
		}
	}
}
