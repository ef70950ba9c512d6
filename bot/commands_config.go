package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

func newPrefixCommand(b *Bot) *Command {
	return &Command{
		Name:        "prefix",
		Description: "Show or change the command prefix",
		Usage:       "prefix <new prefix>",
		Run: func(c *Context) error {
			if len(c.Args()) == 0 {
				c.Reply("The prefix here is `%v`.", c.gc.Prefix)
				return nil
			}

			uperms, err := c.s.State.UserChannelPermissions(c.Author().ID, c.ChannelID())
			if err != nil || uperms&discordgo.PermissionAdministrator == 0 {
				c.Reply("This is admin only, sorry!")
				return nil
			}

			prefix := c.Args()[0]
			if len(prefix) > 8 {
				c.Reply("Keep the prefix under 8 characters.")
				return nil
			}

			c.gc.Prefix = prefix
			if err := c.SaveGuild(); err != nil {
				return err
			}
			c.Reply("Prefix set to `%v`.", prefix)
			return nil
		},
	}
}

func newSetWelcomeCommand(b *Bot) *Command {
	return &Command{
		Name:        "setwelcome",
		Description: "Configure the welcome message for this channel",
		Usage:       "setwelcome <message with {user}, {user.name}, {guild}> | setwelcome off",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) == 0 {
				c.Reply("Usage: `%vsetwelcome <message>` or `%vsetwelcome off`", c.gc.Prefix, c.gc.Prefix)
				return nil
			}

			if strings.EqualFold(c.Args()[0], "off") {
				c.gc.WelcomeEnabled = false
				if err := c.SaveGuild(); err != nil {
					return err
				}
				c.Reply("Welcome messages disabled.")
				return nil
			}

			c.gc.WelcomeEnabled = true
			c.gc.WelcomeChannel = c.ChannelID()
			c.gc.WelcomeMessage = strings.Join(c.Args(), " ")
			if err := c.SaveGuild(); err != nil {
				return err
			}
			c.Reply("Welcome messages will be sent here.")
			return nil
		},
	}
}

func newSetGoodbyeCommand(b *Bot) *Command {
	return &Command{
		Name:        "setgoodbye",
		Description: "Configure the goodbye message for this channel",
		Usage:       "setgoodbye <message> | setgoodbye off",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) == 0 {
				c.Reply("Usage: `%vsetgoodbye <message>` or `%vsetgoodbye off`", c.gc.Prefix, c.gc.Prefix)
				return nil
			}

			if strings.EqualFold(c.Args()[0], "off") {
				c.gc.GoodbyeEnabled = false
				if err := c.SaveGuild(); err != nil {
					return err
				}
				c.Reply("Goodbye messages disabled.")
				return nil
			}

			c.gc.GoodbyeEnabled = true
			c.gc.GoodbyeChannel = c.ChannelID()
			c.gc.GoodbyeMessage = strings.Join(c.Args(), " ")
			if err := c.SaveGuild(); err != nil {
				return err
			}
			c.Reply("Goodbye messages will be sent here.")
			return nil
		},
	}
}

func newSetModLogCommand(b *Bot) *Command {
	return &Command{
		Name:        "setmodlog",
		Description: "Set or clear the mod log channel",
		Usage:       "setmodlog <channel> | setmodlog off",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) > 0 && strings.EqualFold(c.Args()[0], "off") {
				c.gc.ModLogChannel = ""
				if err := c.SaveGuild(); err != nil {
					return err
				}
				c.Reply("Mod log disabled.")
				return nil
			}

			chID := c.ChannelID()
			if len(c.Args()) > 0 {
				ch, err := c.s.State.Channel(TrimChannelString(c.Args()[0]))
				if err != nil || ch.GuildID != c.GuildID() {
					c.Reply("Could not find that channel.")
					return nil
				}
				chID = ch.ID
			}

			c.gc.ModLogChannel = chID
			if err := c.SaveGuild(); err != nil {
				return err
			}
			c.Reply("Mod log set to <#%v>.", chID)
			return nil
		},
	}
}

func newToggleCommandCommand(b *Bot) *Command {
	return &Command{
		Name:        "togglecommand",
		Aliases:     []string{"toggle"},
		Description: "Enable or disable a command in this server",
		Usage:       "togglecommand <name>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vtogglecommand <name>`", c.gc.Prefix)
				return nil
			}

			cmd, ok := c.b.registry.Get(c.Args()[0])
			if !ok {
				c.Reply("No such command.")
				return nil
			}
			if cmd.Name == "togglecommand" {
				c.Reply("You cannot disable this one.")
				return nil
			}

			var disabled []string
			for _, d := range strings.Split(c.gc.DisabledCommands, ",") {
				if d = strings.TrimSpace(d); d != "" {
					disabled = append(disabled, d)
				}
			}

			if commandDisabled(c.gc, cmd.Name) {
				kept := disabled[:0]
				for _, d := range disabled {
					if !strings.EqualFold(d, cmd.Name) {
						kept = append(kept, d)
					}
				}
				c.gc.DisabledCommands = strings.Join(kept, ",")
				if err := c.SaveGuild(); err != nil {
					return err
				}
				c.Reply("Enabled `%v`.", cmd.Name)
				return nil
			}

			c.gc.DisabledCommands = strings.Join(append(disabled, cmd.Name), ",")
			if err := c.SaveGuild(); err != nil {
				return err
			}
			c.Reply("Disabled `%v`.", cmd.Name)
			return nil
		},
	}
}

func newSetCooldownCommand(b *Bot) *Command {
	return &Command{
		Name:        "setcooldown",
		Description: "Override a command's cooldown window in this server",
		Usage:       "setcooldown <command> <duration|0|default>",
		AdminOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 2 {
				c.Reply("Usage: `%vsetcooldown <command> <duration|0|default>`", c.gc.Prefix)
				return nil
			}

			cmd, ok := c.b.registry.Get(c.Args()[0])
			if !ok {
				c.Reply("No such command.")
				return nil
			}

			// keep the other overrides, drop this command's
			var kept []string
			for _, pair := range strings.Split(c.gc.CooldownOverrides, ",") {
				name, _, ok := strings.Cut(strings.TrimSpace(pair), ":")
				if ok && !strings.EqualFold(name, cmd.Name) {
					kept = append(kept, strings.TrimSpace(pair))
				}
			}

			if strings.EqualFold(c.Args()[1], "default") {
				c.gc.CooldownOverrides = strings.Join(kept, ",")
				if err := c.SaveGuild(); err != nil {
					return err
				}
				c.Reply("Cooldown for `%v` back to the default (%v).",
					cmd.Name, c.b.cooldowns.Window(cmd.Name))
				return nil
			}

			var window time.Duration
			if c.Args()[1] != "0" {
				dur, err := parseDuration(c.Args()[1])
				if err != nil {
					c.Reply("Bad duration. Use something like `5s`, `10m`, `0` or `default`.")
					return nil
				}
				window = dur
			}

			kept = append(kept, fmt.Sprintf("%v:%v", strings.ToLower(cmd.Name), int(window.Seconds())))
			c.gc.CooldownOverrides = strings.Join(kept, ",")
			if err := c.SaveGuild(); err != nil {
				return err
			}

			if window == 0 {
				c.Reply("Cooldown for `%v` disabled here.", cmd.Name)
			} else {
				c.Reply("Cooldown for `%v` set to %v here.", cmd.Name, window)
			}
			return nil
		},
	}
}

func newCooldownResetCommand(b *Bot) *Command {
	return &Command{
		Name:        "cdreset",
		Description: "Clear a user's cooldown for a command",
		Usage:       "cdreset <command> <user>",
		OwnerOnly:   true,
		Run: func(c *Context) error {
			if len(c.Args()) < 2 {
				c.Reply("Usage: `%vcdreset <command> <user>`", c.gc.Prefix)
				return nil
			}

			cmd, ok := c.b.registry.Get(c.Args()[0])
			if !ok {
				c.Reply("No such command.")
				return nil
			}

			uid := TrimUserString(c.Args()[1])
			if err := c.b.cooldowns.Reset(cmd.Name, uid, c.GuildID()); err != nil {
				return err
			}
			c.Reply("Cooldown cleared for <@%v> on `%v`.", uid, cmd.Name)
			return nil
		},
	}
}
