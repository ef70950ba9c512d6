package bot

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

type Color int

const (
	Red    Color = 0xC80000
	Orange       = 0xF08152
	Blue         = 0x61D1ED
	Green        = 0x00C800
	White        = 0xFFFFFF
)

func TrimChannelString(chStr string) string {
	chStr = strings.TrimPrefix(chStr, "<#")
	chStr = strings.TrimSuffix(chStr, ">")
	return chStr
}

func TrimUserString(userStr string) string {
	userStr = strings.TrimPrefix(userStr, "<@")
	userStr = strings.TrimPrefix(userStr, "!")
	userStr = strings.TrimSuffix(userStr, ">")
	return userStr
}

func ParseSnowflake(id string) (time.Time, error) {
	n, err := strconv.ParseInt(id, 0, 63)
	if err != nil {
		return time.Now(), err
	}
	return time.Unix(((n>>22)+1420070400000)/1000, 0), nil
}

func AddEmbedField(e *discordgo.MessageEmbed, name, value string, inline bool) *discordgo.MessageEmbed {
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline})
	return e
}

func AddMessageFileString(m *discordgo.MessageSend, filename, data string) *discordgo.MessageSend {
	m.Files = append(m.Files, &discordgo.File{
		Name:   filename,
		Reader: bytes.NewBuffer([]byte(data)),
	})
	return m
}
