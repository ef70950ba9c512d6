package bot

import (
	"reflect"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestTrimChannelString(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{
			name: "mention",
			args: "<#1234>",
			want: "1234",
		},
		{
			name: "plain id",
			args: "1234",
			want: "1234",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimChannelString(tt.args); got != tt.want {
				t.Errorf("TrimChannelString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrimUserString(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{
			name: "mention",
			args: "<@1234>",
			want: "1234",
		},
		{
			name: "nickname mention",
			args: "<@!1234>",
			want: "1234",
		},
		{
			name: "plain id",
			args: "1234",
			want: "1234",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimUserString(tt.args); got != tt.want {
				t.Errorf("TrimUserString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSnowflake(t *testing.T) {
	got, err := ParseSnowflake("163454407999094786")
	if err != nil {
		t.Fatalf("ParseSnowflake() error = %v", err)
	}
	if want := time.Unix(1459040967, 0); got != want {
		t.Errorf("ParseSnowflake() = %v, want %v", got, want)
	}

	if _, err := ParseSnowflake("asdf"); err == nil {
		t.Errorf("ParseSnowflake() expected error for bad input")
	}
}

func TestAddEmbedField(t *testing.T) {
	got := AddEmbedField(&discordgo.MessageEmbed{}, "name", "value", false)
	want := &discordgo.MessageEmbed{Fields: []*discordgo.MessageEmbedField{{Name: "name", Value: "value", Inline: false}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AddEmbedField() = %v, want %v", got, want)
	}
}
