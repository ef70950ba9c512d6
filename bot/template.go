package bot

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// TemplateData holds the values a welcome, goodbye or level-up message
// can reference.
type TemplateData struct {
	User  *discordgo.User
	Guild *discordgo.Guild
	Level int
}

// RenderTemplate substitutes the {user}, {user.name}, {guild} and
// {level} placeholders. Unknown placeholders pass through untouched.
func RenderTemplate(tmpl string, d *TemplateData) string {
	r := strings.NewReplacer(
		"{user}", mention(d.User),
		"{user.name}", username(d.User),
		"{guild}", guildName(d.Guild),
		"{level}", strconv.Itoa(d.Level),
	)
	return r.Replace(tmpl)
}

func mention(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	return u.Mention()
}

func username(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}

func guildName(g *discordgo.Guild) string {
	if g == nil {
		return ""
	}
	return g.Name
}
