package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/maxybot/maxy/database"
)

func newAutoResponderCommand(b *Bot) *Command {
	return &Command{
		Name:        "ar",
		Aliases:     []string{"autoresponder"},
		Description: "Manage auto responses",
		Usage:       "ar add <trigger> | <response> / ar remove <trigger> / ar list",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%var add <trigger> | <response>`", c.gc.Prefix)
				return nil
			}

			switch strings.ToLower(c.Args()[0]) {
			case "add":
				return arAdd(c)
			case "remove", "delete":
				return arRemove(c)
			case "list":
				return arList(c)
			default:
				c.Reply("Subcommands: `add`, `remove`, `list`.")
				return nil
			}
		},
	}
}

// arAdd parses "ar add [matchtype] <trigger> | <response>". The match
// type is optional and defaults to exact.
func arAdd(c *Context) error {
	rest := strings.Join(c.Args()[1:], " ")

	matchType := database.MatchExact
	for _, mt := range []string{database.MatchExact, database.MatchContains, database.MatchPrefix, database.MatchSuffix} {
		if strings.HasPrefix(rest, mt+" ") {
			matchType = mt
			rest = strings.TrimPrefix(rest, mt+" ")
			break
		}
	}

	parts := strings.SplitN(rest, "|", 2)
	if len(parts) != 2 {
		c.Reply("Usage: `%var add <trigger> | <response>`", c.gc.Prefix)
		return nil
	}

	trigger := strings.TrimSpace(parts[0])
	response := strings.TrimSpace(parts[1])
	if trigger == "" || response == "" {
		c.Reply("Both trigger and response are needed.")
		return nil
	}

	err := c.b.db.AddAutoResponse(&database.AutoResponse{
		GuildID:   c.GuildID(),
		Trigger:   trigger,
		Response:  response,
		CreatorID: c.Author().ID,
		MatchType: matchType,
	})
	if err == database.ErrDuplicate {
		c.Reply("There is already a response for that trigger.")
		return nil
	}
	if err != nil {
		return err
	}

	c.b.responders.Invalidate(c.GuildID())
	c.Reply("Added a %v response for `%v`.", matchType, trigger)
	return nil
}

func arRemove(c *Context) error {
	if len(c.Args()) < 2 {
		c.Reply("Usage: `%var remove <trigger>`", c.gc.Prefix)
		return nil
	}

	trigger := strings.Join(c.Args()[1:], " ")
	err := c.b.db.RemoveAutoResponse(c.GuildID(), trigger)
	if err == database.ErrNotFound {
		c.Reply("No response found for that trigger.")
		return nil
	}
	if err != nil {
		return err
	}

	c.b.responders.Invalidate(c.GuildID())
	c.Reply("Removed the response for `%v`.", trigger)
	return nil
}

func arList(c *Context) error {
	responses, err := c.b.db.GetAutoResponses(c.GuildID())
	if err != nil {
		return err
	}
	if len(responses) == 0 {
		c.Reply("No auto responses set.")
		return nil
	}

	text := strings.Builder{}
	for _, r := range responses {
		text.WriteString(fmt.Sprintf("`%v` (%v) - %v\n", r.Trigger, r.MatchType, r.Response))
	}

	c.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "Auto responses",
		Color:       int(Blue),
		Description: text.String(),
	})
	return nil
}
