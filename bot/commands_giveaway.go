package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/maxybot/maxy/database"
)

func newGiveawayStartCommand(b *Bot) *Command {
	return &Command{
		Name:        "gstart",
		Description: "Start a giveaway",
		Usage:       "gstart <duration> <winners> <prize>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 3 {
				c.Reply("Usage: `%vgstart <duration> <winners> <prize>`, e.g. `%vgstart 1h 2 Nitro`",
					c.gc.Prefix, c.gc.Prefix)
				return nil
			}

			dur, err := parseDuration(c.Args()[0])
			if err != nil {
				c.Reply("Bad duration. Use something like `30s`, `10m`, `2h`, `1d` or `1w`.")
				return nil
			}

			winners, err := strconv.Atoi(c.Args()[1])
			if err != nil || winners < 1 {
				c.Reply("The winner count needs to be 1 or higher.")
				return nil
			}

			gw := &database.Giveaway{
				GuildID:     c.GuildID(),
				ChannelID:   c.ChannelID(),
				HostID:      c.Author().ID,
				Prize:       strings.Join(c.Args()[2:], " "),
				WinnerCount: winners,
				EndsAt:      time.Now().Add(dur),
			}

			msg, err := c.s.ChannelMessageSendEmbed(c.ChannelID(), giveawayEmbed(gw))
			if err != nil {
				return err
			}
			gw.MessageID = msg.ID

			if err := c.b.db.CreateGiveaway(gw); err != nil {
				return err
			}

			return c.s.MessageReactionAdd(c.ChannelID(), msg.ID, giveawayEmoji)
		},
	}
}

func newGiveawayEndCommand(b *Bot) *Command {
	return &Command{
		Name:        "gend",
		Description: "End a giveaway early",
		Usage:       "gend <message id>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vgend <message id>`", c.gc.Prefix)
				return nil
			}

			gw, err := c.b.db.GetGiveaway(c.Args()[0])
			if err != nil || gw.GuildID != c.GuildID() {
				c.Reply("No giveaway found for that message.")
				return nil
			}
			if gw.Ended {
				c.Reply("That giveaway has already ended.")
				return nil
			}

			c.b.endGiveaway(gw, false)
			return nil
		},
	}
}

func newGiveawayRerollCommand(b *Bot) *Command {
	return &Command{
		Name:        "greroll",
		Description: "Redraw the winners of an ended giveaway",
		Usage:       "greroll <message id>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vgreroll <message id>`", c.gc.Prefix)
				return nil
			}

			gw, err := c.b.db.GetGiveaway(c.Args()[0])
			if err != nil || gw.GuildID != c.GuildID() {
				c.Reply("No giveaway found for that message.")
				return nil
			}
			if !gw.Ended {
				c.Reply("That giveaway is still running.")
				return nil
			}

			c.b.endGiveaway(gw, true)
			return nil
		},
	}
}

func newGiveawayListCommand(b *Bot) *Command {
	return &Command{
		Name:        "glist",
		Description: "List the running giveaways",
		Usage:       "glist",
		Run: func(c *Context) error {
			active, err := c.b.db.GetActiveGiveaways(c.GuildID())
			if err != nil {
				return err
			}
			if len(active) == 0 {
				c.Reply("No running giveaways.")
				return nil
			}

			text := strings.Builder{}
			for _, gw := range active {
				text.WriteString(fmt.Sprintf("**%v** in <#%v> - %v winner(s), ends <t:%v:R> (`%v`)\n",
					gw.Prize, gw.ChannelID, gw.WinnerCount, gw.EndsAt.Unix(), gw.MessageID))
			}

			c.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "Giveaways",
				Color:       int(Blue),
				Description: text.String(),
			})
			return nil
		},
	}
}
