package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/maxybot/maxy/database"
	"github.com/maxybot/maxy/discord"
	"github.com/maxybot/maxy/kvstore"
	"github.com/maxybot/maxy/owo"
)

type Bot struct {
	store      *kvstore.Store
	log        *zap.Logger
	db         database.DB
	disc       *discord.Discord
	sess       *discordgo.Session
	config     *Config
	owo        *owo.Client
	cooldowns  *CooldownManager
	responders *ResponderCache
	registry   *Registry
	startTime  time.Time
	ownerIDs   []string

	giveawayQuit chan struct{}
}

type Config struct {
	Store    *kvstore.Store
	Log      *zap.Logger
	DB       database.DB
	Owo      *owo.Client
	Token    string
	OwnerIDs []string

	// GlobalCooldowns makes cooldown keys span guilds instead of being
	// tracked per guild.
	GlobalCooldowns bool
}

func NewBot(c *Config) (*Bot, error) {
	scope := ScopeGuild
	if c.GlobalCooldowns {
		scope = ScopeGlobal
	}

	b := &Bot{
		store:        c.Store,
		log:          c.Log,
		db:           c.DB,
		config:       c,
		owo:          c.Owo,
		cooldowns:    NewCooldownManager(2*time.Second, scope),
		responders:   NewResponderCache(c.DB, c.Log.Named("responder")),
		registry:     NewRegistry(),
		startTime:    time.Now(),
		ownerIDs:     c.OwnerIDs,
		giveawayQuit: make(chan struct{}),
	}

	disc, err := discord.NewDiscord(c.Token, c.Log.Named("discord"))
	if err != nil {
		return nil, err
	}
	b.disc = disc
	b.sess = disc.Sess

	if err := b.registerCommands(); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Bot) Close() {
	close(b.giveawayQuit)
	b.disc.Close()
}

func (b *Bot) Run() error {
	go b.listen(b.disc.Events)
	go b.watchGiveaways()

	return b.disc.Open()
}

func (b *Bot) isOwner(uid string) bool {
	for _, id := range b.ownerIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// guildContext fetches the guild config for an event, creating the row
// the first time a guild is seen.
func (b *Bot) guildContext(gid string) (*database.Guild, error) {
	gc, err := b.db.GetGuild(gid)
	if err == database.ErrNotFound {
		if err := b.db.CreateGuild(gid); err != nil {
			return nil, err
		}
		gc, err = b.db.GetGuild(gid)
	}
	return gc, err
}

func (b *Bot) listen(evtCh <-chan interface{}) {
	for {
		evt := <-evtCh
		ctx := &Context{
			b: b,
			s: b.sess,
		}

		if e, ok := evt.(*discordgo.Ready); ok {
			go readyHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.Disconnect); ok {
			go disconnectHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.GuildCreate); ok {
			go guildCreateHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.MessageCreate); ok {
			if e.GuildID == "" {
				continue
			}
			gc, err := b.guildContext(e.GuildID)
			if err != nil {
				continue
			}
			ctx.gc = gc

			go messageCreateHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.MessageDelete); ok {
			go messageDeleteHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.MessageUpdate); ok {
			go messageUpdateHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.GuildMemberAdd); ok {
			gc, err := b.guildContext(e.GuildID)
			if err != nil {
				continue
			}
			ctx.gc = gc

			go guildMemberAddHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.GuildMemberRemove); ok {
			gc, err := b.guildContext(e.GuildID)
			if err != nil {
				continue
			}
			ctx.gc = gc

			go guildMemberRemoveHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.GuildMembersChunk); ok {
			go guildMembersChunkHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.GuildMemberUpdate); ok {
			go guildMemberUpdateHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.MessageReactionAdd); ok {
			go messageReactionAddHandler(ctx, e)
		} else if e, ok := evt.(*discordgo.MessageReactionRemove); ok {
			go messageReactionRemoveHandler(ctx, e)
		}
	}
}
