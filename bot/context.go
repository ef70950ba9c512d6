package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/maxybot/maxy/database"
)

// Context carries everything a command handler needs for one invocation.
type Context struct {
	b    *Bot
	s    *discordgo.Session
	gc   *database.Guild
	msg  *discordgo.MessageCreate
	args []string
}

// Args returns the arguments after the command name.
func (c *Context) Args() []string {
	return c.args
}

func (c *Context) GuildID() string {
	return c.msg.GuildID
}

func (c *Context) ChannelID() string {
	return c.msg.ChannelID
}

func (c *Context) Author() *discordgo.User {
	return c.msg.Author
}

// Reply sends a plain message to the invoking channel.
func (c *Context) Reply(format string, args ...interface{}) {
	_, err := c.s.ChannelMessageSend(c.msg.ChannelID, fmt.Sprintf(format, args...))
	if err != nil {
		c.b.log.Error("failed to send reply", zap.Error(err))
	}
}

// ReplyEmbed sends an embed to the invoking channel.
func (c *Context) ReplyEmbed(e *discordgo.MessageEmbed) {
	_, err := c.s.ChannelMessageSendEmbed(c.msg.ChannelID, e)
	if err != nil {
		c.b.log.Error("failed to send embed", zap.Error(err))
	}
}

// ModLog posts an embed to the guild's mod log channel, if one is set.
func (c *Context) ModLog(e *discordgo.MessageEmbed) {
	if c.gc == nil || c.gc.ModLogChannel == "" {
		return
	}
	_, err := c.s.ChannelMessageSendEmbed(c.gc.ModLogChannel, e)
	if err != nil {
		c.b.log.Error("failed to send mod log", zap.Error(err))
	}
}

// SaveGuild persists the guild config carried by the context.
func (c *Context) SaveGuild() error {
	return c.b.db.UpdateGuild(c.gc.ID, c.gc)
}
