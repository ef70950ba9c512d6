package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/maxybot/maxy/database"
	"github.com/maxybot/maxy/kvstore"
)

func newWarnCommand(b *Bot) *Command {
	return &Command{
		Name:        "warn",
		Description: "Warn a user",
		Usage:       "warn <user> <reason>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%v%v`", c.gc.Prefix, "warn <user> <reason>")
				return nil
			}

			target, err := c.s.User(TrimUserString(c.Args()[0]))
			if err != nil {
				c.Reply("Could not find that user.")
				return nil
			}

			reason := "No reason given"
			if len(c.Args()) > 1 {
				reason = strings.Join(c.Args()[1:], " ")
			}

			err = c.b.db.AddWarning(&database.Warning{
				GuildID:     c.GuildID(),
				UserID:      target.ID,
				ModeratorID: c.Author().ID,
				Reason:      reason,
				GivenAt:     time.Now(),
			})
			if err != nil {
				return err
			}

			warns, _ := c.b.db.GetWarnings(c.GuildID(), target.ID)
			c.Reply("Warned %v. They now have %v warning(s).", target.String(), len(warns))

			c.ModLog(&discordgo.MessageEmbed{
				Title: "User warned",
				Color: int(Orange),
				Fields: []*discordgo.MessageEmbedField{
					{Name: "User", Value: fmt.Sprintf("%v (%v)", target.String(), target.ID)},
					{Name: "Moderator", Value: c.Author().Mention()},
					{Name: "Reason", Value: reason},
				},
				Timestamp: time.Now().Format(time.RFC3339),
			})
			return nil
		},
	}
}

func newWarningsCommand(b *Bot) *Command {
	return &Command{
		Name:        "warnings",
		Aliases:     []string{"warns"},
		Description: "List a user's warnings",
		Usage:       "warnings <user>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			target := c.Author()
			if len(c.Args()) > 0 {
				u, err := c.s.User(TrimUserString(c.Args()[0]))
				if err != nil {
					c.Reply("Could not find that user.")
					return nil
				}
				target = u
			}

			warns, err := c.b.db.GetWarnings(c.GuildID(), target.ID)
			if err != nil && err != database.ErrNotFound {
				return err
			}
			if len(warns) == 0 {
				c.Reply("%v has no warnings.", target.String())
				return nil
			}

			text := strings.Builder{}
			for _, w := range warns {
				text.WriteString(fmt.Sprintf("`#%v` <t:%v:R> by <@%v> - %v\n",
					w.UID, w.GivenAt.Unix(), w.ModeratorID, w.Reason))
			}

			c.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       fmt.Sprintf("Warnings for %v", target.String()),
				Color:       int(Orange),
				Description: text.String(),
			})
			return nil
		},
	}
}

func newClearWarnsCommand(b *Bot) *Command {
	return &Command{
		Name:        "clearwarns",
		Description: "Clear a user's warnings",
		Usage:       "clearwarns <user>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vclearwarns <user>`", c.gc.Prefix)
				return nil
			}

			uid := TrimUserString(c.Args()[0])
			n, err := c.b.db.ClearWarnings(c.GuildID(), uid)
			if err != nil {
				return err
			}
			c.Reply("Cleared %v warning(s) for <@%v>.", n, uid)
			return nil
		},
	}
}

func newKickCommand(b *Bot) *Command {
	return &Command{
		Name:        "kick",
		Description: "Kick a user from the server",
		Usage:       "kick <user> <reason>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vkick <user> <reason>`", c.gc.Prefix)
				return nil
			}

			uid := TrimUserString(c.Args()[0])
			reason := strings.Join(c.Args()[1:], " ")

			if err := c.s.GuildMemberDeleteWithReason(c.GuildID(), uid, reason); err != nil {
				c.Reply("Could not kick that user.")
				return nil
			}

			c.Reply("Kicked <@%v>.", uid)
			c.ModLog(modActionEmbed("User kicked", uid, c.Author().ID, reason, Orange))
			return nil
		},
	}
}

func newBanCommand(b *Bot) *Command {
	return &Command{
		Name:        "ban",
		Description: "Ban a user and upload their recent message history",
		Usage:       "ban <user> <reason>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vban <user> <reason>`", c.gc.Prefix)
				return nil
			}

			uid := TrimUserString(c.Args()[0])
			reason := strings.Join(c.Args()[1:], " ")

			if err := c.s.GuildBanCreateWithReason(c.GuildID(), uid, reason, 0); err != nil {
				c.Reply("Could not ban that user.")
				return nil
			}

			c.Reply("Banned <@%v>.", uid)

			embed := modActionEmbed("User banned", uid, c.Author().ID, reason, Red)
			if link, err := c.b.uploadUserLog(c.GuildID(), c.ChannelID(), uid); err == nil && link != "" {
				AddEmbedField(embed, "24h message log", link, false)
			}
			c.ModLog(embed)
			return nil
		},
	}
}

func newUnbanCommand(b *Bot) *Command {
	return &Command{
		Name:        "unban",
		Description: "Unban a user",
		Usage:       "unban <user>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vunban <user>`", c.gc.Prefix)
				return nil
			}

			uid := TrimUserString(c.Args()[0])
			if err := c.s.GuildBanDelete(c.GuildID(), uid); err != nil {
				c.Reply("Could not unban that user.")
				return nil
			}

			c.Reply("Unbanned <@%v>.", uid)
			c.ModLog(modActionEmbed("User unbanned", uid, c.Author().ID, "", Green))
			return nil
		},
	}
}

func newPurgeCommand(b *Bot) *Command {
	return &Command{
		Name:        "purge",
		Aliases:     []string{"clear"},
		Description: "Delete the last N messages and upload a transcript",
		Usage:       "purge <count>",
		AdminOnly:   true,
		Cooldown:    10 * time.Second,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vpurge <count>`", c.gc.Prefix)
				return nil
			}

			count, err := strconv.Atoi(c.Args()[0])
			if err != nil || count < 1 || count > 100 {
				c.Reply("Give me a number between 1 and 100.")
				return nil
			}

			msgs, err := c.s.ChannelMessages(c.ChannelID(), count, c.msg.ID, "", "")
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(msgs))
			for _, m := range msgs {
				ids = append(ids, m.ID)
			}
			if err := c.s.ChannelMessagesBulkDelete(c.ChannelID(), ids); err != nil {
				return err
			}

			reply, err := c.s.ChannelMessageSend(c.ChannelID(), fmt.Sprintf("Deleted %v message(s).", len(ids)))
			if err != nil {
				c.b.log.Error("failed to send purge confirmation", zap.Error(err))
			}
			deleteAfter(c.s, c.ChannelID(), reply, 5*time.Second)

			embed := modActionEmbed("Messages purged", "", c.Author().ID, "", White)
			AddEmbedField(embed, "Channel", fmt.Sprintf("<#%v>", c.ChannelID()), true)
			AddEmbedField(embed, "Count", fmt.Sprint(len(ids)), true)

			if c.b.owo != nil {
				text := transcript(msgs)
				link, err := c.b.owo.Upload(text)
				if err != nil {
					c.b.log.Error("failed to upload purge transcript", zap.Error(err))
				} else {
					AddEmbedField(embed, "Transcript", link, false)
				}
			}
			c.ModLog(embed)
			return nil
		},
	}
}

// deleteAfter removes a message after the delay. A nil message (the
// send itself failed) is a no-op rather than a deferred panic.
func deleteAfter(s *discordgo.Session, chID string, msg *discordgo.Message, d time.Duration) {
	if msg == nil {
		return
	}
	time.AfterFunc(d, func() {
		_ = s.ChannelMessageDelete(chID, msg.ID)
	})
}

func modActionEmbed(title, uid, modID, reason string, color Color) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     title,
		Color:     int(color),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if uid != "" {
		AddEmbedField(e, "User", fmt.Sprintf("<@%v> (%v)", uid, uid), false)
	}
	AddEmbedField(e, "Moderator", fmt.Sprintf("<@%v>", modID), false)
	if reason != "" {
		AddEmbedField(e, "Reason", reason, false)
	}
	return e
}

// transcript renders fetched messages oldest first, one block each.
func transcript(msgs []*discordgo.Message) string {
	sorted := make([]*discordgo.Message, len(msgs))
	copy(sorted, msgs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	text := strings.Builder{}
	for _, m := range sorted {
		if len(m.Attachments) > 0 {
			text.WriteString(fmt.Sprintf("\nUser: %v (%v)\nContent: %v\nMessage had attachment\n",
				m.Author.String(), m.Author.ID, m.Content))
		} else {
			text.WriteString(fmt.Sprintf("\nUser: %v (%v)\nContent: %v\n",
				m.Author.String(), m.Author.ID, m.Content))
		}
	}
	return text.String()
}

// uploadUserLog collects a user's cached messages for a channel and
// uploads them, returning the paste link.
func (b *Bot) uploadUserLog(gid, cid, uid string) (string, error) {
	if b.owo == nil {
		return "", nil
	}

	messageLog, err := b.store.GetChannelLog(gid, cid)
	if err != nil {
		return "", err
	}

	sort.Sort(kvstore.ByID(messageLog))

	text := strings.Builder{}
	for _, cmsg := range messageLog {
		if cmsg.Message.Author == nil || cmsg.Message.Author.ID != uid {
			continue
		}
		if len(cmsg.Attachments) > 0 {
			text.WriteString(fmt.Sprintf("\nUser: %v (%v)\nContent: %v\nMessage had attachment\n",
				cmsg.Message.Author.String(), cmsg.Message.Author.ID, cmsg.Message.Content))
		} else {
			text.WriteString(fmt.Sprintf("\nUser: %v (%v)\nContent: %v\n",
				cmsg.Message.Author.String(), cmsg.Message.Author.ID, cmsg.Message.Content))
		}
	}

	if text.Len() == 0 {
		return "", nil
	}
	return b.owo.Upload(text.String())
}
