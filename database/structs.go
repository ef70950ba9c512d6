package database

import "time"

// Guild holds the per-guild configuration row. Every field has a sane
// default so a guild works the moment CreateGuild inserts it.
type Guild struct {
	ID               string `json:"id" db:"id"`
	Prefix           string `json:"prefix" db:"prefix"`
	WelcomeEnabled   bool   `json:"welcome_enabled" db:"welcome_enabled"`
	WelcomeChannel   string `json:"welcome_channel" db:"welcome_channel"`
	WelcomeMessage   string `json:"welcome_message" db:"welcome_message"`
	GoodbyeEnabled   bool   `json:"goodbye_enabled" db:"goodbye_enabled"`
	GoodbyeChannel   string `json:"goodbye_channel" db:"goodbye_channel"`
	GoodbyeMessage   string `json:"goodbye_message" db:"goodbye_message"`
	ModLogChannel    string `json:"mod_log_channel" db:"mod_log_channel"`
	LevelingEnabled  bool   `json:"leveling_enabled" db:"leveling_enabled"`
	LevelUpMessage   string `json:"level_up_message" db:"level_up_message"`
	XPPerMessageMin  int    `json:"xp_per_message_min" db:"xp_per_message_min"`
	XPPerMessageMax  int    `json:"xp_per_message_max" db:"xp_per_message_max"`
	XPCooldownSecs   int    `json:"xp_cooldown_secs" db:"xp_cooldown_secs"`
	EconomyEnabled   bool   `json:"economy_enabled" db:"economy_enabled"`
	StartBalance     int64  `json:"start_balance" db:"start_balance"`
	CurrencySymbol   string `json:"currency_symbol" db:"currency_symbol"`
	CurrencyName     string `json:"currency_name" db:"currency_name"`
	ResponderEnabled bool   `json:"responder_enabled" db:"responder_enabled"`
	TicketCategory   string `json:"ticket_category" db:"ticket_category"`
	DisabledCommands string `json:"disabled_commands" db:"disabled_commands"`
	// comma-separated "command:seconds" pairs overriding the default
	// cooldown windows
	CooldownOverrides string `json:"cooldown_overrides" db:"cooldown_overrides"`
}

const (
	DefaultPrefix         = "m!"
	DefaultWelcomeMessage = "Welcome {user} to {guild}!"
	DefaultGoodbyeMessage = "Goodbye {user.name}!"
	DefaultLevelUpMessage = "Congrats {user}, you reached level {level}!"
)

// NewGuild returns a guild row with defaults applied.
func NewGuild(gid string) *Guild {
	return &Guild{
		ID:               gid,
		Prefix:           DefaultPrefix,
		WelcomeMessage:   DefaultWelcomeMessage,
		GoodbyeMessage:   DefaultGoodbyeMessage,
		LevelingEnabled:  true,
		LevelUpMessage:   DefaultLevelUpMessage,
		XPPerMessageMin:  15,
		XPPerMessageMax:  25,
		XPCooldownSecs:   60,
		EconomyEnabled:   true,
		StartBalance:     100,
		CurrencySymbol:   "🪙",
		CurrencyName:     "Maxy Coin",
		ResponderEnabled: true,
	}
}

// Account is a per (guild, user) economy balance.
type Account struct {
	GuildID string `json:"guild_id" db:"guild_id"`
	UserID  string `json:"user_id" db:"user_id"`
	Wallet  int64  `json:"wallet" db:"wallet"`
	Bank    int64  `json:"bank" db:"bank"`
}

// LevelEntry tracks accumulated XP for a (guild, user).
type LevelEntry struct {
	GuildID string `json:"guild_id" db:"guild_id"`
	UserID  string `json:"user_id" db:"user_id"`
	XP      int64  `json:"xp" db:"xp"`
	Level   int    `json:"level" db:"level"`
}

// LevelRole binds a role reward to a level.
type LevelRole struct {
	GuildID string `json:"guild_id" db:"guild_id"`
	Level   int    `json:"level" db:"level"`
	RoleID  string `json:"role_id" db:"role_id"`
}

type Warning struct {
	UID         int       `json:"uid" db:"uid"`
	GuildID     string    `json:"guild_id" db:"guild_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	ModeratorID string    `json:"moderator_id" db:"moderator_id"`
	Reason      string    `json:"reason" db:"reason"`
	GivenAt     time.Time `json:"given_at" db:"given_at"`
}

// Match types for auto responses.
const (
	MatchExact    = "exact"
	MatchContains = "contains"
	MatchPrefix   = "prefix"
	MatchSuffix   = "suffix"
)

type AutoResponse struct {
	UID           int    `json:"uid" db:"uid"`
	GuildID       string `json:"guild_id" db:"guild_id"`
	Trigger       string `json:"trigger" db:"trigger"`
	Response      string `json:"response" db:"response"`
	CreatorID     string `json:"creator_id" db:"creator_id"`
	MatchType     string `json:"match_type" db:"match_type"`
	CaseSensitive bool   `json:"case_sensitive" db:"case_sensitive"`
}

type Giveaway struct {
	MessageID   string    `json:"message_id" db:"message_id"`
	GuildID     string    `json:"guild_id" db:"guild_id"`
	ChannelID   string    `json:"channel_id" db:"channel_id"`
	HostID      string    `json:"host_id" db:"host_id"`
	Prize       string    `json:"prize" db:"prize"`
	WinnerCount int       `json:"winner_count" db:"winner_count"`
	EndsAt      time.Time `json:"ends_at" db:"ends_at"`
	Ended       bool      `json:"ended" db:"ended"`
}

type Ticket struct {
	Ref       string    `json:"ref" db:"ref"`
	GuildID   string    `json:"guild_id" db:"guild_id"`
	ChannelID string    `json:"channel_id" db:"channel_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Topic     string    `json:"topic" db:"topic"`
	Open      bool      `json:"open" db:"open"`
	OpenedAt  time.Time `json:"opened_at" db:"opened_at"`
}

var schemas = []string{
	`CREATE TABLE IF NOT EXISTS guilds (
	id                 TEXT PRIMARY KEY,
	prefix             TEXT NOT NULL DEFAULT 'm!',
	welcome_enabled    BOOLEAN NOT NULL DEFAULT false,
	welcome_channel    TEXT NOT NULL DEFAULT '',
	welcome_message    TEXT NOT NULL DEFAULT '',
	goodbye_enabled    BOOLEAN NOT NULL DEFAULT false,
	goodbye_channel    TEXT NOT NULL DEFAULT '',
	goodbye_message    TEXT NOT NULL DEFAULT '',
	mod_log_channel    TEXT NOT NULL DEFAULT '',
	leveling_enabled   BOOLEAN NOT NULL DEFAULT true,
	level_up_message   TEXT NOT NULL DEFAULT '',
	xp_per_message_min INTEGER NOT NULL DEFAULT 15,
	xp_per_message_max INTEGER NOT NULL DEFAULT 25,
	xp_cooldown_secs   INTEGER NOT NULL DEFAULT 60,
	economy_enabled    BOOLEAN NOT NULL DEFAULT true,
	start_balance      BIGINT NOT NULL DEFAULT 100,
	currency_symbol    TEXT NOT NULL DEFAULT '',
	currency_name      TEXT NOT NULL DEFAULT '',
	responder_enabled  BOOLEAN NOT NULL DEFAULT true,
	ticket_category    TEXT NOT NULL DEFAULT '',
	disabled_commands  TEXT NOT NULL DEFAULT '',
	cooldown_overrides TEXT NOT NULL DEFAULT ''
);`,
	`CREATE TABLE IF NOT EXISTS accounts (
	guild_id TEXT NOT NULL,
	user_id  TEXT NOT NULL,
	wallet   BIGINT NOT NULL DEFAULT 0,
	bank     BIGINT NOT NULL DEFAULT 0,
	PRIMARY KEY (guild_id, user_id)
);`,
	`CREATE TABLE IF NOT EXISTS levels (
	guild_id TEXT NOT NULL,
	user_id  TEXT NOT NULL,
	xp       BIGINT NOT NULL DEFAULT 0,
	level    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (guild_id, user_id)
);`,
	`CREATE TABLE IF NOT EXISTS level_roles (
	guild_id TEXT NOT NULL,
	level    INTEGER NOT NULL,
	role_id  TEXT NOT NULL,
	PRIMARY KEY (guild_id, level)
);`,
	`CREATE TABLE IF NOT EXISTS warnings (
	uid          SERIAL PRIMARY KEY,
	guild_id     TEXT NOT NULL,
	user_id      TEXT NOT NULL,
	moderator_id TEXT NOT NULL,
	reason       TEXT NOT NULL DEFAULT '',
	given_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	`CREATE TABLE IF NOT EXISTS auto_responses (
	uid            SERIAL PRIMARY KEY,
	guild_id       TEXT NOT NULL,
	trigger        TEXT NOT NULL,
	response       TEXT NOT NULL,
	creator_id     TEXT NOT NULL,
	match_type     TEXT NOT NULL DEFAULT 'exact',
	case_sensitive BOOLEAN NOT NULL DEFAULT false,
	UNIQUE (guild_id, trigger)
);`,
	`CREATE TABLE IF NOT EXISTS giveaways (
	message_id   TEXT PRIMARY KEY,
	guild_id     TEXT NOT NULL,
	channel_id   TEXT NOT NULL,
	host_id      TEXT NOT NULL,
	prize        TEXT NOT NULL,
	winner_count INTEGER NOT NULL,
	ends_at      TIMESTAMPTZ NOT NULL,
	ended        BOOLEAN NOT NULL DEFAULT false
);`,
	`CREATE TABLE IF NOT EXISTS giveaway_entrants (
	message_id TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	PRIMARY KEY (message_id, user_id)
);`,
	`CREATE TABLE IF NOT EXISTS tickets (
	ref        TEXT PRIMARY KEY,
	guild_id   TEXT NOT NULL,
	channel_id TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	topic      TEXT NOT NULL DEFAULT '',
	open       BOOLEAN NOT NULL DEFAULT true,
	opened_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
}
