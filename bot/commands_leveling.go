package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/maxybot/maxy/database"
)

func newRankCommand(b *Bot) *Command {
	return &Command{
		Name:        "rank",
		Aliases:     []string{"level", "xp"},
		Description: "Show a user's level and XP",
		Usage:       "rank <user>",
		Run: func(c *Context) error {
			if !c.gc.LevelingEnabled {
				return nil
			}

			target := c.Author()
			if len(c.Args()) > 0 {
				u, err := c.s.User(TrimUserString(c.Args()[0]))
				if err != nil {
					c.Reply("Could not find that user.")
					return nil
				}
				target = u
			}

			entry, err := c.b.db.GetLevelEntry(c.GuildID(), target.ID)
			if err == database.ErrNotFound {
				c.Reply("%v has not earned any XP yet.", target.Username)
				return nil
			}
			if err != nil {
				return err
			}

			next := xpForLevel(entry.Level + 1)
			c.ReplyEmbed(&discordgo.MessageEmbed{
				Title: fmt.Sprintf("%v's rank", target.Username),
				Color: int(Blue),
				Thumbnail: &discordgo.MessageEmbedThumbnail{
					URL: target.AvatarURL("256"),
				},
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Level", Value: fmt.Sprint(entry.Level), Inline: true},
					{Name: "XP", Value: fmt.Sprintf("%v / %v", entry.XP, next), Inline: true},
				},
			})
			return nil
		},
	}
}

func newLevelRoleCommand(b *Bot) *Command {
	return &Command{
		Name:        "levelrole",
		Description: "Bind a role reward to a level",
		Usage:       "levelrole <level> <role id> | levelrole list",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vlevelrole <level> <role id>`", c.gc.Prefix)
				return nil
			}

			if strings.EqualFold(c.Args()[0], "list") {
				roles, err := c.b.db.GetLevelRoles(c.GuildID())
				if err != nil {
					return err
				}
				if len(roles) == 0 {
					c.Reply("No level roles set.")
					return nil
				}

				text := strings.Builder{}
				for _, lr := range roles {
					text.WriteString(fmt.Sprintf("Level %v - <@&%v>\n", lr.Level, lr.RoleID))
				}
				c.ReplyEmbed(&discordgo.MessageEmbed{
					Title:       "Level roles",
					Color:       int(Blue),
					Description: text.String(),
				})
				return nil
			}

			if len(c.Args()) < 2 {
				c.Reply("Usage: `%vlevelrole <level> <role id>`", c.gc.Prefix)
				return nil
			}

			level, err := strconv.Atoi(c.Args()[0])
			if err != nil || level < 1 {
				c.Reply("Give me a level of 1 or higher.")
				return nil
			}

			roleID := strings.TrimSuffix(strings.TrimPrefix(c.Args()[1], "<@&"), ">")
			if err := c.b.db.SetLevelRole(c.GuildID(), level, roleID); err != nil {
				return err
			}

			c.Reply("Members reaching level %v now get <@&%v>.", level, roleID)
			return nil
		},
	}
}
