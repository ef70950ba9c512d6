package database

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// JsonDB is a file-backed DB implementation for development and tests.
// Everything lives in one state struct guarded by a single mutex; the
// file is rewritten on Close.
type JsonDB struct {
	path  string
	state *state
}

type state struct {
	mu            sync.Mutex
	Guilds        map[string]*Guild         `json:"guilds"`
	Accounts      map[string]*Account       `json:"accounts"`
	Levels        map[string]*LevelEntry    `json:"levels"`
	LevelRoles    []*LevelRole              `json:"level_roles"`
	Warnings      []*Warning                `json:"warnings"`
	AutoResponses []*AutoResponse           `json:"auto_responses"`
	Giveaways     map[string]*Giveaway      `json:"giveaways"`
	Entrants      map[string][]string       `json:"entrants"`
	Tickets       map[string]*Ticket        `json:"tickets"`
	NextUID       int                       `json:"next_uid"`
}

func newState() *state {
	return &state{
		Guilds:    make(map[string]*Guild),
		Accounts:  make(map[string]*Account),
		Levels:    make(map[string]*LevelEntry),
		Giveaways: make(map[string]*Giveaway),
		Entrants:  make(map[string][]string),
		Tickets:   make(map[string]*Ticket),
		NextUID:   1,
	}
}

func NewJsonDatabase(path string) (*JsonDB, error) {
	db := &JsonDB{
		path:  path,
		state: newState(),
	}
	err := db.load(path)
	return db, err
}

func (j *JsonDB) load(path string) error {
	if _, err := os.Stat(path); err != nil {
		// no data file yet, start from empty state
		return nil
	}

	d, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	st := newState()
	if err := json.Unmarshal(d, st); err != nil {
		return err
	}
	j.state = st
	return nil
}

func (j *JsonDB) save() error {
	d, err := json.Marshal(j.state)
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, d, 0644)
}

func (j *JsonDB) GetConn() *sqlx.DB {
	return nil
}

func (j *JsonDB) Close() error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	return j.save()
}

func key(gid, uid string) string {
	return gid + ":" + uid
}

func (j *JsonDB) CreateGuild(gid string) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	if _, ok := j.state.Guilds[gid]; ok {
		return ErrDuplicate
	}
	j.state.Guilds[gid] = NewGuild(gid)
	return nil
}

func (j *JsonDB) UpdateGuild(gid string, gc *Guild) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	if _, ok := j.state.Guilds[gid]; !ok {
		return ErrNotFound
	}
	j.state.Guilds[gid] = gc
	return nil
}

func (j *JsonDB) GetGuild(gid string) (*Guild, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	if g, ok := j.state.Guilds[gid]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (j *JsonDB) GetAccount(gid, uid string) (*Account, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	if a, ok := j.state.Accounts[key(gid, uid)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (j *JsonDB) CreateAccount(gid, uid string, wallet int64) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	k := key(gid, uid)
	if _, ok := j.state.Accounts[k]; ok {
		return ErrDuplicate
	}
	j.state.Accounts[k] = &Account{GuildID: gid, UserID: uid, Wallet: wallet}
	return nil
}

func (j *JsonDB) UpdateAccount(a *Account) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	k := key(a.GuildID, a.UserID)
	if _, ok := j.state.Accounts[k]; !ok {
		return ErrNotFound
	}
	cp := *a
	j.state.Accounts[k] = &cp
	return nil
}

func (j *JsonDB) GetLevelEntry(gid, uid string) (*LevelEntry, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	if e, ok := j.state.Levels[key(gid, uid)]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (j *JsonDB) CreateLevelEntry(gid, uid string) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	k := key(gid, uid)
	if _, ok := j.state.Levels[k]; ok {
		return ErrDuplicate
	}
	j.state.Levels[k] = &LevelEntry{GuildID: gid, UserID: uid}
	return nil
}

func (j *JsonDB) UpdateLevelEntry(e *LevelEntry) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	k := key(e.GuildID, e.UserID)
	if _, ok := j.state.Levels[k]; !ok {
		return ErrNotFound
	}
	cp := *e
	j.state.Levels[k] = &cp
	return nil
}

func (j *JsonDB) SetLevelRole(gid string, level int, roleID string) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	for _, lr := range j.state.LevelRoles {
		if lr.GuildID == gid && lr.Level == level {
			lr.RoleID = roleID
			return nil
		}
	}
	j.state.LevelRoles = append(j.state.LevelRoles, &LevelRole{GuildID: gid, Level: level, RoleID: roleID})
	return nil
}

func (j *JsonDB) GetLevelRoles(gid string) ([]*LevelRole, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	var roles []*LevelRole
	for _, lr := range j.state.LevelRoles {
		if lr.GuildID == gid {
			cp := *lr
			roles = append(roles, &cp)
		}
	}
	sort.Slice(roles, func(i, k int) bool { return roles[i].Level < roles[k].Level })
	return roles, nil
}

func (j *JsonDB) AddWarning(w *Warning) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	cp := *w
	cp.UID = j.state.NextUID
	j.state.NextUID++
	j.state.Warnings = append(j.state.Warnings, &cp)
	return nil
}

func (j *JsonDB) GetWarnings(gid, uid string) ([]*Warning, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	var warns []*Warning
	for _, w := range j.state.Warnings {
		if w.GuildID == gid && w.UserID == uid {
			cp := *w
			warns = append(warns, &cp)
		}
	}
	return warns, nil
}

func (j *JsonDB) ClearWarnings(gid, uid string) (int64, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	var kept []*Warning
	var removed int64
	for _, w := range j.state.Warnings {
		if w.GuildID == gid && w.UserID == uid {
			removed++
			continue
		}
		kept = append(kept, w)
	}
	j.state.Warnings = kept
	return removed, nil
}

func (j *JsonDB) AddAutoResponse(r *AutoResponse) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	for _, existing := range j.state.AutoResponses {
		if existing.GuildID == r.GuildID && strings.EqualFold(existing.Trigger, r.Trigger) {
			return ErrDuplicate
		}
	}
	cp := *r
	cp.UID = j.state.NextUID
	j.state.NextUID++
	j.state.AutoResponses = append(j.state.AutoResponses, &cp)
	return nil
}

func (j *JsonDB) RemoveAutoResponse(gid, trigger string) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	for i, r := range j.state.AutoResponses {
		if r.GuildID == gid && strings.EqualFold(r.Trigger, trigger) {
			j.state.AutoResponses = append(j.state.AutoResponses[:i], j.state.AutoResponses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (j *JsonDB) GetAutoResponses(gid string) ([]*AutoResponse, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	var rs []*AutoResponse
	for _, r := range j.state.AutoResponses {
		if r.GuildID == gid {
			cp := *r
			rs = append(rs, &cp)
		}
	}
	return rs, nil
}

func (j *JsonDB) CreateGiveaway(g *Giveaway) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	if _, ok := j.state.Giveaways[g.MessageID]; ok {
		return ErrDuplicate
	}
	cp := *g
	j.state.Giveaways[g.MessageID] = &cp
	return nil
}

func (j *JsonDB) GetGiveaway(messageID string) (*Giveaway, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	if g, ok := j.state.Giveaways[messageID]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (j *JsonDB) GetActiveGiveaways(gid string) ([]*Giveaway, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	var gs []*Giveaway
	for _, g := range j.state.Giveaways {
		if g.GuildID == gid && !g.Ended {
			cp := *g
			gs = append(gs, &cp)
		}
	}
	sort.Slice(gs, func(i, k int) bool { return gs[i].EndsAt.Before(gs[k].EndsAt) })
	return gs, nil
}

func (j *JsonDB) GetExpiredGiveaways(now time.Time) ([]*Giveaway, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	var gs []*Giveaway
	for _, g := range j.state.Giveaways {
		if !g.Ended && g.EndsAt.Before(now) {
			cp := *g
			gs = append(gs, &cp)
		}
	}
	return gs, nil
}

func (j *JsonDB) EndGiveaway(messageID string) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	g, ok := j.state.Giveaways[messageID]
	if !ok {
		return ErrNotFound
	}
	g.Ended = true
	return nil
}

func (j *JsonDB) AddEntrant(messageID, uid string) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	for _, e := range j.state.Entrants[messageID] {
		if e == uid {
			return ErrDuplicate
		}
	}
	j.state.Entrants[messageID] = append(j.state.Entrants[messageID], uid)
	return nil
}

func (j *JsonDB) RemoveEntrant(messageID, uid string) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	entrants := j.state.Entrants[messageID]
	for i, e := range entrants {
		if e == uid {
			j.state.Entrants[messageID] = append(entrants[:i], entrants[i+1:]...)
			return nil
		}
	}
	return nil
}

func (j *JsonDB) GetEntrants(messageID string) ([]string, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	entrants := j.state.Entrants[messageID]
	out := make([]string, len(entrants))
	copy(out, entrants)
	return out, nil
}

func (j *JsonDB) CreateTicket(t *Ticket) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	if _, ok := j.state.Tickets[t.Ref]; ok {
		return ErrDuplicate
	}
	cp := *t
	j.state.Tickets[t.Ref] = &cp
	return nil
}

func (j *JsonDB) GetTicketByChannel(chID string) (*Ticket, error) {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	for _, t := range j.state.Tickets {
		if t.ChannelID == chID && t.Open {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (j *JsonDB) CloseTicket(ref string) error {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()
	t, ok := j.state.Tickets[ref]
	if !ok {
		return ErrNotFound
	}
	t.Open = false
	return nil
}
