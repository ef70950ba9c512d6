package database

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a lookup matches no row, regardless of
// which implementation backs the store.
var ErrNotFound = errors.New("database: not found")

// ErrDuplicate is returned when an insert collides with an existing row.
var ErrDuplicate = errors.New("database: already exists")

type DB interface {
	GetConn() *sqlx.DB
	Close() error

	CreateGuild(gid string) error
	UpdateGuild(gid string, gc *Guild) error
	GetGuild(gid string) (*Guild, error)

	GetAccount(gid, uid string) (*Account, error)
	CreateAccount(gid, uid string, wallet int64) error
	UpdateAccount(a *Account) error

	GetLevelEntry(gid, uid string) (*LevelEntry, error)
	CreateLevelEntry(gid, uid string) error
	UpdateLevelEntry(e *LevelEntry) error
	SetLevelRole(gid string, level int, roleID string) error
	GetLevelRoles(gid string) ([]*LevelRole, error)

	AddWarning(w *Warning) error
	GetWarnings(gid, uid string) ([]*Warning, error)
	ClearWarnings(gid, uid string) (int64, error)

	AddAutoResponse(r *AutoResponse) error
	RemoveAutoResponse(gid, trigger string) error
	GetAutoResponses(gid string) ([]*AutoResponse, error)

	CreateGiveaway(g *Giveaway) error
	GetGiveaway(messageID string) (*Giveaway, error)
	GetActiveGiveaways(gid string) ([]*Giveaway, error)
	GetExpiredGiveaways(now time.Time) ([]*Giveaway, error)
	EndGiveaway(messageID string) error
	AddEntrant(messageID, uid string) error
	RemoveEntrant(messageID, uid string) error
	GetEntrants(messageID string) ([]string, error)

	CreateTicket(t *Ticket) error
	GetTicketByChannel(chID string) (*Ticket, error)
	CloseTicket(ref string) error
}

type Config struct {
	Log     *zap.Logger
	ConnStr string
}
