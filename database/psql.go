package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type PsqlDB struct {
	pool    *sqlx.DB
	log     *zap.Logger
	connStr string
}

func NewPSQLDatabase(c *Config) (*PsqlDB, error) {
	db := &PsqlDB{
		log:     c.Log,
		connStr: c.ConnStr,
	}

	pool, err := sqlx.Connect("postgres", db.connStr)
	if err != nil {
		db.log.Error("unable to connect to db", zap.Error(err))
		return nil, err
	}
	db.pool = pool

	for _, schema := range schemas {
		if _, err := pool.Exec(schema); err != nil {
			db.log.Error("failed to apply schema", zap.Error(err))
			return nil, err
		}
	}

	return db, nil
}

func (p *PsqlDB) GetConn() *sqlx.DB {
	return p.pool
}

func (p *PsqlDB) Close() error {
	return p.pool.Close()
}

func (p *PsqlDB) CreateGuild(gid string) error {
	g := NewGuild(gid)
	_, err := p.pool.Exec(`INSERT INTO guilds
		(id, prefix, welcome_message, goodbye_message, leveling_enabled, level_up_message,
		 xp_per_message_min, xp_per_message_max, xp_cooldown_secs, economy_enabled,
		 start_balance, currency_symbol, currency_name, responder_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		g.ID, g.Prefix, g.WelcomeMessage, g.GoodbyeMessage, g.LevelingEnabled, g.LevelUpMessage,
		g.XPPerMessageMin, g.XPPerMessageMax, g.XPCooldownSecs, g.EconomyEnabled,
		g.StartBalance, g.CurrencySymbol, g.CurrencyName, g.ResponderEnabled)
	return wrapPqError(err)
}

func (p *PsqlDB) UpdateGuild(gid string, gc *Guild) error {
	_, err := p.pool.Exec(`UPDATE guilds SET
		prefix = $2, welcome_enabled = $3, welcome_channel = $4, welcome_message = $5,
		goodbye_enabled = $6, goodbye_channel = $7, goodbye_message = $8,
		mod_log_channel = $9, leveling_enabled = $10, level_up_message = $11,
		xp_per_message_min = $12, xp_per_message_max = $13, xp_cooldown_secs = $14,
		economy_enabled = $15, start_balance = $16, currency_symbol = $17,
		currency_name = $18, responder_enabled = $19, ticket_category = $20,
		disabled_commands = $21, cooldown_overrides = $22
		WHERE id = $1;`,
		gid, gc.Prefix, gc.WelcomeEnabled, gc.WelcomeChannel, gc.WelcomeMessage,
		gc.GoodbyeEnabled, gc.GoodbyeChannel, gc.GoodbyeMessage,
		gc.ModLogChannel, gc.LevelingEnabled, gc.LevelUpMessage,
		gc.XPPerMessageMin, gc.XPPerMessageMax, gc.XPCooldownSecs,
		gc.EconomyEnabled, gc.StartBalance, gc.CurrencySymbol,
		gc.CurrencyName, gc.ResponderEnabled, gc.TicketCategory,
		gc.DisabledCommands, gc.CooldownOverrides)
	return err
}

func (p *PsqlDB) GetGuild(gid string) (*Guild, error) {
	var g Guild
	err := p.pool.Get(&g, "SELECT * FROM guilds WHERE id = $1;", gid)
	if err != nil {
		return nil, wrapPqError(err)
	}
	return &g, nil
}

func (p *PsqlDB) GetAccount(gid, uid string) (*Account, error) {
	var a Account
	err := p.pool.Get(&a, "SELECT * FROM accounts WHERE guild_id = $1 AND user_id = $2;", gid, uid)
	if err != nil {
		return nil, wrapPqError(err)
	}
	return &a, nil
}

func (p *PsqlDB) CreateAccount(gid, uid string, wallet int64) error {
	_, err := p.pool.Exec("INSERT INTO accounts (guild_id, user_id, wallet) VALUES ($1, $2, $3);", gid, uid, wallet)
	return wrapPqError(err)
}

func (p *PsqlDB) UpdateAccount(a *Account) error {
	_, err := p.pool.Exec("UPDATE accounts SET wallet = $3, bank = $4 WHERE guild_id = $1 AND user_id = $2;",
		a.GuildID, a.UserID, a.Wallet, a.Bank)
	return err
}

func (p *PsqlDB) GetLevelEntry(gid, uid string) (*LevelEntry, error) {
	var e LevelEntry
	err := p.pool.Get(&e, "SELECT * FROM levels WHERE guild_id = $1 AND user_id = $2;", gid, uid)
	if err != nil {
		return nil, wrapPqError(err)
	}
	return &e, nil
}

func (p *PsqlDB) CreateLevelEntry(gid, uid string) error {
	_, err := p.pool.Exec("INSERT INTO levels (guild_id, user_id) VALUES ($1, $2);", gid, uid)
	return wrapPqError(err)
}

func (p *PsqlDB) UpdateLevelEntry(e *LevelEntry) error {
	_, err := p.pool.Exec("UPDATE levels SET xp = $3, level = $4 WHERE guild_id = $1 AND user_id = $2;",
		e.GuildID, e.UserID, e.XP, e.Level)
	return err
}

func (p *PsqlDB) SetLevelRole(gid string, level int, roleID string) error {
	_, err := p.pool.Exec(`INSERT INTO level_roles (guild_id, level, role_id) VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, level) DO UPDATE SET role_id = $3;`, gid, level, roleID)
	return err
}

func (p *PsqlDB) GetLevelRoles(gid string) ([]*LevelRole, error) {
	var roles []*LevelRole
	err := p.pool.Select(&roles, "SELECT * FROM level_roles WHERE guild_id = $1 ORDER BY level;", gid)
	return roles, err
}

func (p *PsqlDB) AddWarning(w *Warning) error {
	_, err := p.pool.Exec(`INSERT INTO warnings (guild_id, user_id, moderator_id, reason, given_at)
		VALUES ($1, $2, $3, $4, $5);`, w.GuildID, w.UserID, w.ModeratorID, w.Reason, w.GivenAt)
	return err
}

func (p *PsqlDB) GetWarnings(gid, uid string) ([]*Warning, error) {
	var warns []*Warning
	err := p.pool.Select(&warns, "SELECT * FROM warnings WHERE guild_id = $1 AND user_id = $2 ORDER BY given_at;", gid, uid)
	return warns, err
}

func (p *PsqlDB) ClearWarnings(gid, uid string) (int64, error) {
	res, err := p.pool.Exec("DELETE FROM warnings WHERE guild_id = $1 AND user_id = $2;", gid, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (p *PsqlDB) AddAutoResponse(r *AutoResponse) error {
	_, err := p.pool.Exec(`INSERT INTO auto_responses (guild_id, trigger, response, creator_id, match_type, case_sensitive)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		r.GuildID, r.Trigger, r.Response, r.CreatorID, r.MatchType, r.CaseSensitive)
	return wrapPqError(err)
}

func (p *PsqlDB) RemoveAutoResponse(gid, trigger string) error {
	res, err := p.pool.Exec("DELETE FROM auto_responses WHERE guild_id = $1 AND trigger = $2;", gid, trigger)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PsqlDB) GetAutoResponses(gid string) ([]*AutoResponse, error) {
	var rs []*AutoResponse
	err := p.pool.Select(&rs, "SELECT * FROM auto_responses WHERE guild_id = $1 ORDER BY uid;", gid)
	return rs, err
}

func (p *PsqlDB) CreateGiveaway(g *Giveaway) error {
	_, err := p.pool.Exec(`INSERT INTO giveaways (message_id, guild_id, channel_id, host_id, prize, winner_count, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		g.MessageID, g.GuildID, g.ChannelID, g.HostID, g.Prize, g.WinnerCount, g.EndsAt)
	return wrapPqError(err)
}

func (p *PsqlDB) GetGiveaway(messageID string) (*Giveaway, error) {
	var g Giveaway
	err := p.pool.Get(&g, "SELECT * FROM giveaways WHERE message_id = $1;", messageID)
	if err != nil {
		return nil, wrapPqError(err)
	}
	return &g, nil
}

func (p *PsqlDB) GetActiveGiveaways(gid string) ([]*Giveaway, error) {
	var gs []*Giveaway
	err := p.pool.Select(&gs, "SELECT * FROM giveaways WHERE guild_id = $1 AND NOT ended ORDER BY ends_at;", gid)
	return gs, err
}

func (p *PsqlDB) GetExpiredGiveaways(now time.Time) ([]*Giveaway, error) {
	var gs []*Giveaway
	err := p.pool.Select(&gs, "SELECT * FROM giveaways WHERE NOT ended AND ends_at < $1;", now)
	return gs, err
}

func (p *PsqlDB) EndGiveaway(messageID string) error {
	_, err := p.pool.Exec("UPDATE giveaways SET ended = true WHERE message_id = $1;", messageID)
	return err
}

func (p *PsqlDB) AddEntrant(messageID, uid string) error {
	_, err := p.pool.Exec("INSERT INTO giveaway_entrants (message_id, user_id) VALUES ($1, $2);", messageID, uid)
	return wrapPqError(err)
}

func (p *PsqlDB) RemoveEntrant(messageID, uid string) error {
	_, err := p.pool.Exec("DELETE FROM giveaway_entrants WHERE message_id = $1 AND user_id = $2;", messageID, uid)
	return err
}

func (p *PsqlDB) GetEntrants(messageID string) ([]string, error) {
	var uids []string
	err := p.pool.Select(&uids, "SELECT user_id FROM giveaway_entrants WHERE message_id = $1;", messageID)
	return uids, err
}

func (p *PsqlDB) CreateTicket(t *Ticket) error {
	_, err := p.pool.Exec(`INSERT INTO tickets (ref, guild_id, channel_id, user_id, topic, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		t.Ref, t.GuildID, t.ChannelID, t.UserID, t.Topic, t.OpenedAt)
	return wrapPqError(err)
}

func (p *PsqlDB) GetTicketByChannel(chID string) (*Ticket, error) {
	var t Ticket
	err := p.pool.Get(&t, "SELECT * FROM tickets WHERE channel_id = $1 AND open;", chID)
	if err != nil {
		return nil, wrapPqError(err)
	}
	return &t, nil
}

func (p *PsqlDB) CloseTicket(ref string) error {
	_, err := p.pool.Exec("UPDATE tickets SET open = false WHERE ref = $1;", ref)
	return err
}

// wrapPqError maps driver errors onto the package sentinels so callers can
// branch without importing pq.
func wrapPqError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrDuplicate
	}
	return err
}
