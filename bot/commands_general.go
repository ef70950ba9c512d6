package bot

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

func newPingCommand(b *Bot) *Command {
	return &Command{
		Name:        "ping",
		Description: "Check the bot latency",
		Usage:       "ping",
		Run: func(c *Context) error {
			startTime := time.Now()
			first, err := c.s.ChannelMessageSend(c.ChannelID(), "Ping")
			if err != nil {
				return err
			}
			_, err = c.s.ChannelMessageEdit(c.ChannelID(), first.ID,
				fmt.Sprintf("Pong!\nDelay: %v", time.Since(startTime).Round(time.Millisecond)))
			return err
		},
	}
}

func newInfoCommand(b *Bot) *Command {
	return &Command{
		Name:        "info",
		Aliases:     []string{"about"},
		Description: "Information about the bot",
		Usage:       "info",
		Run: func(c *Context) error {
			c.ReplyEmbed(&discordgo.MessageEmbed{
				Title: "Info",
				Color: int(Blue),
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:  "Golang version",
						Value: runtime.Version(),
					},
					{
						Name:  "Running since",
						Value: fmt.Sprintf("<t:%v:R>", c.b.startTime.Unix()),
					},
					{
						Name:  "Commands",
						Value: fmt.Sprint(len(c.b.registry.Commands())),
					},
				},
			})
			return nil
		},
	}
}

func newServerInfoCommand(b *Bot) *Command {
	return &Command{
		Name:        "serverinfo",
		Aliases:     []string{"server"},
		Description: "Information about the server",
		Usage:       "serverinfo",
		Run: func(c *Context) error {
			g, err := c.s.State.Guild(c.GuildID())
			if err != nil {
				return err
			}

			ts, _ := ParseSnowflake(g.ID)
			c.ReplyEmbed(&discordgo.MessageEmbed{
				Title: g.Name,
				Color: int(Blue),
				Thumbnail: &discordgo.MessageEmbedThumbnail{
					URL: discordgo.EndpointGuildIcon(g.ID, g.Icon),
				},
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Owner", Value: fmt.Sprintf("<@%v>", g.OwnerID), Inline: true},
					{Name: "Members", Value: fmt.Sprint(g.MemberCount), Inline: true},
					{Name: "Created", Value: fmt.Sprintf("<t:%v:R>", ts.Unix()), Inline: true},
				},
			})
			return nil
		},
	}
}

func newUserInfoCommand(b *Bot) *Command {
	return &Command{
		Name:        "userinfo",
		Aliases:     []string{"whois"},
		Description: "Information about a user",
		Usage:       "userinfo <user>",
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

			ts, _ := ParseSnowflake(target.ID)
			embed := &discordgo.MessageEmbed{
				Title: target.String(),
				Color: int(Blue),
				Thumbnail: &discordgo.MessageEmbedThumbnail{
					URL: target.AvatarURL("256"),
				},
				Fields: []*discordgo.MessageEmbedField{
					{Name: "ID", Value: target.ID, Inline: true},
					{Name: "Created", Value: fmt.Sprintf("<t:%v:R>", ts.Unix()), Inline: true},
				},
			}

			if mem, err := c.b.store.GetMember(c.GuildID(), target.ID); err == nil && !mem.JoinedAt.IsZero() {
				AddEmbedField(embed, "Joined", fmt.Sprintf("<t:%v:R>", mem.JoinedAt.Unix()), true)
			}

			c.ReplyEmbed(embed)
			return nil
		},
	}
}

func newAvatarCommand(b *Bot) *Command {
	return &Command{
		Name:        "avatar",
		Aliases:     []string{"av"},
		Description: "Show a user's avatar",
		Usage:       "avatar <user>",
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

			c.ReplyEmbed(&discordgo.MessageEmbed{
				Title: target.String(),
				Color: int(Blue),
				Image: &discordgo.MessageEmbedImage{
					URL: target.AvatarURL("1024"),
				},
			})
			return nil
		},
	}
}

func newSnipeCommand(b *Bot) *Command {
	return &Command{
		Name:        "snipe",
		Description: "Show the most recently deleted message in this channel",
		Usage:       "snipe",
		Cooldown:    5 * time.Second,
		Run: func(c *Context) error {
			return snipeReply(c, "snipe", "deleted")
		},
	}
}

func newEditSnipeCommand(b *Bot) *Command {
	return &Command{
		Name:        "editsnipe",
		Description: "Show the original of the most recently edited message in this channel",
		Usage:       "editsnipe",
		Cooldown:    5 * time.Second,
		Run: func(c *Context) error {
			return snipeReply(c, "editsnipe", "edited")
		},
	}
}

func snipeReply(c *Context, kind, verb string) error {
	msg, err := c.b.store.GetSnipe(kind, c.GuildID(), c.ChannelID())
	if err != nil {
		c.Reply("There is nothing to snipe.")
		return nil
	}

	content := msg.Message.Content
	if content == "" {
		content = "No content"
	}

	embed := &discordgo.MessageEmbed{
		Color:       int(White),
		Description: content,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    msg.Message.Author.String() + " - " + verb,
			IconURL: msg.Message.Author.AvatarURL("64"),
		},
	}
	if len(msg.Attachments) > 0 {
		AddEmbedField(embed, "Attachments", fmt.Sprint(len(msg.Attachments)), false)
	}
	c.ReplyEmbed(embed)
	return nil
}

func newHelpCommand(b *Bot) *Command {
	return &Command{
		Name:        "help",
		Aliases:     []string{"commands"},
		Description: "List commands, or show help for one command",
		Usage:       "help <command>",
		Run: func(c *Context) error {
			if len(c.Args()) > 0 {
				cmd, ok := c.b.registry.Get(c.Args()[0])
				if !ok {
					c.Reply("No such command.")
					return nil
				}

				embed := &discordgo.MessageEmbed{
					Title:       cmd.Name,
					Color:       int(Blue),
					Description: cmd.Description,
				}
				AddEmbedField(embed, "Usage", fmt.Sprintf("`%v%v`", c.gc.Prefix, cmd.Usage), false)
				if len(cmd.Aliases) > 0 {
					AddEmbedField(embed, "Aliases", strings.Join(cmd.Aliases, ", "), false)
				}
				if cmd.Cooldown > 0 {
					AddEmbedField(embed, "Cooldown", c.b.cooldowns.Window(cmd.Name).String(), false)
				}
				c.ReplyEmbed(embed)
				return nil
			}

			text := strings.Builder{}
			for _, cmd := range c.b.registry.Commands() {
				if cmd.OwnerOnly && !c.b.isOwner(c.Author().ID) {
					continue
				}
				text.WriteString(fmt.Sprintf("`%v%v` - %v\n", c.gc.Prefix, cmd.Name, cmd.Description))
			}

			c.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "Commands",
				Color:       int(Blue),
				Description: text.String(),
			})
			return nil
		},
	}
}
