package kvstore

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dgraph-io/badger/options"

	"github.com/bwmarrin/discordgo"
	"github.com/dgraph-io/badger"
)

// ErrNotFound aliases badger's missing-key error so callers do not need
// to import badger directly.
var ErrNotFound = badger.ErrKeyNotFound

const messageTTL = time.Hour * 24

type Store struct {
	db  *badger.DB
	log *zap.Logger
}

// badgerLogger routes badger's internal logging onto zap.
type badgerLogger struct {
	log *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.log.Errorf(strings.TrimSpace(f), v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.log.Warnf(strings.TrimSpace(f), v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.log.Infof(strings.TrimSpace(f), v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.log.Debugf(strings.TrimSpace(f), v...) }

func NewStore(path string, log *zap.Logger) (*Store, error) {
	s := &Store{
		log: log,
	}

	opts := badger.DefaultOptions(path)
	opts.Truncate = true
	opts.ValueLogLoadingMode = options.FileIO
	opts.NumVersionsToKeep = 1
	opts.Logger = badgerLogger{log: log.Sugar()}
	db, err := badger.Open(opts)
	if err != nil {
		s.log.Error("failed to open store", zap.Error(err))
		return nil, err
	}
	s.db = db

	go func(s *Store) {
		gcTimer := time.NewTicker(time.Hour)
		for range gcTimer.C {
			err := s.db.RunValueLogGC(0.5)
			if err != nil && err != badger.ErrNoRewrite {
				s.log.Error("failed to run gc", zap.Error(err))
			}
		}
	}(s)

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SetMember(m *discordgo.Member) error {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(m)
	if err != nil {
		s.log.Error("failed to encode member", zap.Error(err))
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(fmt.Sprintf("member:%v:%v", m.GuildID, m.User.ID)), buf.Bytes())
	})
}

func (s *Store) GetMember(gid, uid string) (*discordgo.Member, error) {
	var body []byte
	if err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fmt.Sprintf("member:%v:%v", gid, uid)))
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	}); err != nil {
		return nil, err
	}

	mem := &discordgo.Member{}
	err := gob.NewDecoder(bytes.NewReader(body)).Decode(mem)
	if err != nil {
		s.log.Error("failed to decode member", zap.Error(err))
		return nil, err
	}
	return mem, nil
}

func (s *Store) DeleteMember(gid, uid string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(fmt.Sprintf("member:%v:%v", gid, uid)))
	})
}

func (s *Store) SetMessage(msg *DiscordMessage) error {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(msg)
	if err != nil {
		s.log.Error("failed to encode message", zap.Error(err))
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := &badger.Entry{
			Key:       []byte(fmt.Sprintf("message:%v:%v:%v", msg.Message.GuildID, msg.Message.ChannelID, msg.Message.ID)),
			Value:     buf.Bytes(),
			ExpiresAt: uint64(time.Now().Add(messageTTL).Unix()),
		}
		return txn.SetEntry(e)
	})
}

func (s *Store) GetMessage(gid, cid, mid string) (*DiscordMessage, error) {
	var body []byte
	if err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fmt.Sprintf("message:%v:%v:%v", gid, cid, mid)))
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	}); err != nil {
		return nil, err
	}

	msg := DiscordMessage{}
	err := gob.NewDecoder(bytes.NewReader(body)).Decode(&msg)
	if err != nil {
		s.log.Error("failed to decode message", zap.Error(err))
		return nil, err
	}
	return &msg, nil
}

// GetChannelLog returns the cached messages for a channel, newest entries
// last. Expired entries are skipped by badger itself.
func (s *Store) GetChannelLog(gid, cid string) ([]*DiscordMessage, error) {
	var messages []*DiscordMessage
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("message:%v:%v", gid, cid))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			body, err := item.ValueCopy(nil)
			if err != nil {
				s.log.Error("failed to read message", zap.Error(err))
				continue
			}
			msg := DiscordMessage{}
			if err := gob.NewDecoder(bytes.NewReader(body)).Decode(&msg); err != nil {
				s.log.Error("failed to decode message", zap.Error(err))
				continue
			}
			messages = append(messages, &msg)
		}
		return nil
	})
	return messages, err
}

// SetSnipe stores the most recent deleted (kind "snipe") or edited
// (kind "editsnipe") message for a channel.
func (s *Store) SetSnipe(kind string, msg *DiscordMessage) error {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(msg)
	if err != nil {
		s.log.Error("failed to encode snipe", zap.Error(err))
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := &badger.Entry{
			Key:       []byte(fmt.Sprintf("%v:%v:%v", kind, msg.Message.GuildID, msg.Message.ChannelID)),
			Value:     buf.Bytes(),
			ExpiresAt: uint64(time.Now().Add(messageTTL).Unix()),
		}
		return txn.SetEntry(e)
	})
}

func (s *Store) GetSnipe(kind, gid, cid string) (*DiscordMessage, error) {
	var body []byte
	if err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fmt.Sprintf("%v:%v:%v", kind, gid, cid)))
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	}); err != nil {
		return nil, err
	}

	msg := DiscordMessage{}
	err := gob.NewDecoder(bytes.NewReader(body)).Decode(&msg)
	if err != nil {
		s.log.Error("failed to decode snipe", zap.Error(err))
		return nil, err
	}
	return &msg, nil
}
