package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maxybot/maxy/database"
)

func newTicketCommand(b *Bot) *Command {
	return &Command{
		Name:        "ticket",
		Description: "Open or close a support ticket",
		Usage:       "ticket open <topic> / ticket close",
		Cooldown:    30 * time.Second,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vticket open <topic>` or `%vticket close`", c.gc.Prefix, c.gc.Prefix)
				return nil
			}

			switch strings.ToLower(c.Args()[0]) {
			case "open":
				return ticketOpen(c)
			case "close":
				return ticketClose(c)
			default:
				c.Reply("Subcommands: `open`, `close`.")
				return nil
			}
		},
	}
}

func ticketOpen(c *Context) error {
	topic := strings.Join(c.Args()[1:], " ")
	if topic == "" {
		topic = "No topic given"
	}

	ref := uuid.NewString()[:8]
	ch, err := c.s.GuildChannelCreateComplex(c.GuildID(), discordgo.GuildChannelCreateData{
		Name:     "ticket-" + ref,
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    topic,
		ParentID: c.gc.TicketCategory,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   c.GuildID(),
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    c.Author().ID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
			},
		},
	})
	if err != nil {
		c.Reply("Could not create a ticket channel.")
		return nil
	}

	err = c.b.db.CreateTicket(&database.Ticket{
		Ref:       ref,
		GuildID:   c.GuildID(),
		ChannelID: ch.ID,
		UserID:    c.Author().ID,
		Topic:     topic,
		Open:      true,
		OpenedAt:  time.Now(),
	})
	if err != nil {
		return err
	}

	_, _ = c.s.ChannelMessageSend(ch.ID, fmt.Sprintf(
		"%v opened ticket `%v`: %v\nA moderator will be with you shortly.",
		c.Author().Mention(), ref, topic))
	c.Reply("Opened ticket `%v` in <#%v>.", ref, ch.ID)
	return nil
}

// ticketClose closes the ticket bound to the current channel, uploading
// a transcript before the channel disappears.
func ticketClose(c *Context) error {
	t, err := c.b.db.GetTicketByChannel(c.ChannelID())
	if err != nil || !t.Open {
		c.Reply("This channel is not an open ticket.")
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:     "Ticket closed",
		Color:     int(Green),
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket", Value: t.Ref, Inline: true},
			{Name: "Opened by", Value: fmt.Sprintf("<@%v>", t.UserID), Inline: true},
			{Name: "Closed by", Value: c.Author().Mention(), Inline: true},
			{Name: "Topic", Value: t.Topic},
		},
	}

	if c.b.owo != nil {
		msgs, err := c.s.ChannelMessages(t.ChannelID, 100, "", "", "")
		if err == nil && len(msgs) > 0 {
			link, err := c.b.owo.Upload(transcript(msgs))
			if err != nil {
				c.b.log.Error("failed to upload ticket transcript", zap.Error(err))
			} else {
				AddEmbedField(embed, "Transcript", link, false)
			}
		}
	}

	if err := c.b.db.CloseTicket(t.Ref); err != nil {
		return err
	}

	c.ModLog(embed)
	_, err = c.s.ChannelDelete(t.ChannelID)
	return err
}
