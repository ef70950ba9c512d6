package bot

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/maxybot/maxy/database"
	"github.com/maxybot/maxy/kvstore"
)

func readyHandler(c *Context, r *discordgo.Ready) {
	statusTimer := time.NewTicker(time.Second * 15)

	go func() {
		// run every 15 seconds
		i := 0
		for range statusTimer.C {
			switch i {
			case 0:
				_ = c.s.UpdateGameStatus(0, database.DefaultPrefix+"help")
			case 1:
				_ = c.s.UpdateListeningStatus("your commands")
			}

			i = (i + 1) % 2
		}
	}()

	c.b.log.Info("logged in", zap.String("user", r.User.String()))
}

func disconnectHandler(c *Context, _ *discordgo.Disconnect) {
	c.b.log.Info("disconnected")
}

func guildCreateHandler(c *Context, g *discordgo.GuildCreate) {
	if _, err := c.b.db.GetGuild(g.ID); err != nil {
		err = c.b.db.CreateGuild(g.ID)
		if err != nil {
			c.b.log.Error("failed to create new guild", zap.Error(err))
		}
	}

	if len(g.Members) != g.MemberCount {
		_ = c.s.RequestGuildMembers(g.ID, "", 0, "", false)
		return
	}

	for _, mem := range g.Members {
		err := c.b.store.SetMember(mem)
		if err != nil {
			c.b.log.Error("failed to set member", zap.Error(err))
			continue
		}
	}

	c.b.log.Info("guild created", zap.String("name", g.Name))
}

func guildMemberAddHandler(c *Context, m *discordgo.GuildMemberAdd) {
	err := c.b.store.SetMember(m.Member)
	if err != nil {
		c.b.log.Error("failed to set member", zap.Error(err))
	}

	if !c.gc.WelcomeEnabled || c.gc.WelcomeChannel == "" {
		return
	}

	g, err := c.s.State.Guild(m.GuildID)
	if err != nil {
		return
	}

	msg := RenderTemplate(c.gc.WelcomeMessage, &TemplateData{
		User:  m.User,
		Guild: g,
	})
	_, _ = c.s.ChannelMessageSend(c.gc.WelcomeChannel, msg)
}

func guildMemberRemoveHandler(c *Context, m *discordgo.GuildMemberRemove) {
	defer func() {
		if err := c.b.store.DeleteMember(m.GuildID, m.User.ID); err != nil {
			c.b.log.Error("failed to delete member", zap.Error(err))
		}
	}()

	if !c.gc.GoodbyeEnabled || c.gc.GoodbyeChannel == "" {
		return
	}

	g, err := c.s.State.Guild(m.GuildID)
	if err != nil {
		return
	}

	msg := RenderTemplate(c.gc.GoodbyeMessage, &TemplateData{
		User:  m.User,
		Guild: g,
	})
	_, _ = c.s.ChannelMessageSend(c.gc.GoodbyeChannel, msg)
}

func guildMembersChunkHandler(c *Context, g *discordgo.GuildMembersChunk) {
	for _, mem := range g.Members {
		err := c.b.store.SetMember(mem)
		if err != nil {
			c.b.log.Error("failed to set member", zap.Error(err))
			continue
		}
	}
}

func guildMemberUpdateHandler(c *Context, m *discordgo.GuildMemberUpdate) {
	err := c.b.store.SetMember(m.Member)
	if err != nil {
		c.b.log.Error("failed to update member", zap.Error(err))
	}
}

func messageCreateHandler(c *Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	c.msg = m

	// max size 10mb
	_ = c.b.store.SetMessage(kvstore.NewDiscordMessage(m.Message, 1024*1024*10))

	if c.gc.ResponderEnabled && c.b.respond(c, m) {
		// a handled trigger is not also a command
		return
	}

	if c.gc.LevelingEnabled {
		c.b.awardXP(c, m)
	}

	c.b.handleCommand(c, m)
}

func messageDeleteHandler(c *Context, m *discordgo.MessageDelete) {
	msg, err := c.b.store.GetMessage(m.GuildID, m.ChannelID, m.ID)
	if err != nil {
		return
	}

	if err := c.b.store.SetSnipe("snipe", msg); err != nil {
		c.b.log.Error("failed to set snipe", zap.Error(err))
	}
}

func messageUpdateHandler(c *Context, m *discordgo.MessageUpdate) {
	// embed expansions come through as updates with empty content
	if m.Content == "" {
		return
	}

	old, err := c.b.store.GetMessage(m.GuildID, m.ChannelID, m.ID)
	if err != nil || old.Message.Content == m.Content {
		return
	}

	if err := c.b.store.SetSnipe("editsnipe", old); err != nil {
		c.b.log.Error("failed to set editsnipe", zap.Error(err))
	}

	old.Message.Content = m.Content
	_ = c.b.store.SetMessage(old)
}

func messageReactionAddHandler(c *Context, m *discordgo.MessageReactionAdd) {
	if m.Emoji.Name != giveawayEmoji || m.UserID == c.s.State.User.ID {
		return
	}

	gw, err := c.b.db.GetGiveaway(m.MessageID)
	if err != nil || gw.Ended {
		return
	}

	if err := c.b.db.AddEntrant(m.MessageID, m.UserID); err != nil && err != database.ErrDuplicate {
		c.b.log.Error("failed to add entrant", zap.Error(err))
	}
}

func messageReactionRemoveHandler(c *Context, m *discordgo.MessageReactionRemove) {
	if m.Emoji.Name != giveawayEmoji {
		return
	}

	gw, err := c.b.db.GetGiveaway(m.MessageID)
	if err != nil || gw.Ended {
		return
	}

	if err := c.b.db.RemoveEntrant(m.MessageID, m.UserID); err != nil {
		c.b.log.Error("failed to remove entrant", zap.Error(err))
	}
}

// handleCommand parses a message against the guild prefix and runs the
// matching command if every gate passes.
func (b *Bot) handleCommand(c *Context, m *discordgo.MessageCreate) {
	prefix := c.gc.Prefix
	if prefix == "" {
		prefix = database.DefaultPrefix
	}

	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	args := strings.Fields(m.Content[len(prefix):])
	if len(args) == 0 {
		return
	}

	cmd, ok := b.registry.Get(args[0])
	if !ok {
		return
	}

	if commandDisabled(c.gc, cmd.Name) {
		return
	}

	if cmd.OwnerOnly && !b.isOwner(m.Author.ID) {
		return
	}

	if cmd.AdminOnly {
		uperms, err := c.s.State.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil || uperms&discordgo.PermissionAdministrator == 0 {
			c.Reply("This is admin only, sorry!")
			return
		}
	}

	window := b.cooldowns.Window(cmd.Name)
	if override, ok := guildCooldown(c.gc, cmd.Name); ok {
		window = override
	}

	verdict, err := b.cooldowns.CheckWindow(cmd.Name, m.Author.ID, m.GuildID, window)
	if err != nil {
		b.log.Error("cooldown check failed", zap.Error(err))
		return
	}
	if !verdict.Allowed {
		c.Reply("Slow down! Try again in %v.", verdict.RetryAfter.Round(time.Second))
		return
	}

	c.args = args[1:]

	b.log.Info("command",
		zap.String("name", cmd.Name),
		zap.String("user", m.Author.ID),
		zap.String("guild", m.GuildID))

	if err := cmd.Run(c); err != nil {
		b.log.Error("command failed", zap.String("name", cmd.Name), zap.Error(err))
		c.Reply("Something went wrong, sorry!")
	}
}

// guildCooldown looks up a per-guild window override, stored as
// comma-separated "command:seconds" pairs.
func guildCooldown(gc *database.Guild, name string) (time.Duration, bool) {
	if gc.CooldownOverrides == "" {
		return 0, false
	}
	for _, pair := range strings.Split(gc.CooldownOverrides, ",") {
		cmd, secs, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || !strings.EqualFold(cmd, name) {
			continue
		}
		n, err := strconv.Atoi(secs)
		if err != nil {
			return 0, false
		}
		return time.Duration(n) * time.Second, true
	}
	return 0, false
}

func commandDisabled(gc *database.Guild, name string) bool {
	if gc.DisabledCommands == "" {
		return false
	}
	for _, d := range strings.Split(gc.DisabledCommands, ",") {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}
