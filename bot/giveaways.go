package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/maxybot/maxy/database"
)

const giveawayEmoji = "🎉"

var durationPattern = regexp.MustCompile(`^(\d+)([smhdw])$`)

var ErrBadDuration = errors.New("giveaway: bad duration")

// parseDuration reads giveaway durations like 30s, 10m, 2h, 1d or 1w.
func parseDuration(s string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, ErrBadDuration
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, ErrBadDuration
	}

	var unit time.Duration
	switch m[2] {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	}
	return time.Duration(n) * unit, nil
}

// watchGiveaways ends expired giveaways. Runs until Close.
func (b *Bot) watchGiveaways() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-b.giveawayQuit:
			return
		case now := <-ticker.C:
			expired, err := b.db.GetExpiredGiveaways(now)
			if err != nil {
				b.log.Error("failed to get expired giveaways", zap.Error(err))
				continue
			}
			for _, gw := range expired {
				b.endGiveaway(gw, false)
			}
		}
	}
}

// endGiveaway draws the winners and announces them. With reroll set it
// only redraws, it does not mark the giveaway ended again.
func (b *Bot) endGiveaway(gw *database.Giveaway, reroll bool) {
	if !reroll {
		if err := b.db.EndGiveaway(gw.MessageID); err != nil {
			b.log.Error("failed to end giveaway", zap.Error(err))
			return
		}
		gw.Ended = true
		_, err := b.sess.ChannelMessageEditEmbed(gw.ChannelID, gw.MessageID, endedGiveawayEmbed(gw))
		if err != nil {
			b.log.Error("failed to edit giveaway message", zap.Error(err))
		}
	}

	entrants, err := b.db.GetEntrants(gw.MessageID)
	if err != nil {
		b.log.Error("failed to get entrants", zap.Error(err))
		return
	}

	winners := drawWinners(entrants, gw.WinnerCount)
	if len(winners) == 0 {
		_, _ = b.sess.ChannelMessageSend(gw.ChannelID,
			fmt.Sprintf("Nobody entered the giveaway for **%v**.", gw.Prize))
		return
	}

	mentions := make([]string, 0, len(winners))
	for _, w := range winners {
		mentions = append(mentions, "<@"+w+">")
	}

	_, err = b.sess.ChannelMessageSend(gw.ChannelID,
		fmt.Sprintf("%v Congratulations %v! You won **%v**!",
			giveawayEmoji, strings.Join(mentions, ", "), gw.Prize))
	if err != nil {
		b.log.Error("failed to announce winners", zap.Error(err))
	}
}

// drawWinners picks up to count unique entrants at random.
func drawWinners(entrants []string, count int) []string {
	if count <= 0 || len(entrants) == 0 {
		return nil
	}

	pool := make([]string, len(entrants))
	copy(pool, entrants)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}

func endedGiveawayEmbed(gw *database.Giveaway) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       int(White),
		Title:       giveawayEmoji + " Giveaway ended " + giveawayEmoji,
		Description: fmt.Sprintf("Prize: **%v**", gw.Prize),
		Timestamp:   gw.EndsAt.Format(time.RFC3339),
	}
}

func giveawayEmbed(gw *database.Giveaway) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: Blue,
		Title: giveawayEmoji + " Giveaway " + giveawayEmoji,
		Description: fmt.Sprintf("Prize: **%v**\nWinners: %v\nReact with %v to enter!\nEnds: <t:%v:R>",
			gw.Prize, gw.WinnerCount, giveawayEmoji, gw.EndsAt.Unix()),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Hosted by " + gw.HostID,
		},
		Timestamp: gw.EndsAt.Format(time.RFC3339),
	}
}
