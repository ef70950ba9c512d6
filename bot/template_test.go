package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	d := &TemplateData{
		User:  &discordgo.User{ID: "123", Username: "jeff"},
		Guild: &discordgo.Guild{ID: "456", Name: "cool server"},
		Level: 5,
	}

	assert.Equal(t, "Welcome <@123> to cool server!", RenderTemplate("Welcome {user} to {guild}!", d))
	assert.Equal(t, "Goodbye jeff!", RenderTemplate("Goodbye {user.name}!", d))
	assert.Equal(t, "jeff hit level 5", RenderTemplate("{user.name} hit level {level}", d))
}

func TestRenderTemplateUnknownPlaceholder(t *testing.T) {
	got := RenderTemplate("hello {wat}", &TemplateData{})
	assert.Equal(t, "hello {wat}", got)
}

func TestRenderTemplateNilData(t *testing.T) {
	got := RenderTemplate("{user} {user.name} {guild}", &TemplateData{})
	assert.Equal(t, "  ", got)
}
