package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/maxybot/maxy/database"
)

const dailyReward = 250

// account fetches an economy account, creating it with the guild's
// start balance on first use.
func (b *Bot) account(gc *database.Guild, uid string) (*database.Account, error) {
	a, err := b.db.GetAccount(gc.ID, uid)
	if err == database.ErrNotFound {
		if err := b.db.CreateAccount(gc.ID, uid, gc.StartBalance); err != nil {
			return nil, err
		}
		a, err = b.db.GetAccount(gc.ID, uid)
	}
	return a, err
}

func parseAmount(arg string, available int64) (int64, error) {
	if strings.EqualFold(arg, "all") {
		return available, nil
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("bad amount: %v", arg)
	}
	return n, nil
}

func newBalanceCommand(b *Bot) *Command {
	return &Command{
		Name:        "balance",
		Aliases:     []string{"bal", "money"},
		Description: "Check a wallet and bank balance",
		Usage:       "balance <user>",
		Run: func(c *Context) error {
			if !c.gc.EconomyEnabled {
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

			a, err := c.b.account(c.gc, target.ID)
			if err != nil {
				return err
			}

			c.ReplyEmbed(&discordgo.MessageEmbed{
				Title: fmt.Sprintf("%v's balance", target.Username),
				Color: int(Green),
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Wallet", Value: fmt.Sprintf("%v %v", a.Wallet, c.gc.CurrencySymbol), Inline: true},
					{Name: "Bank", Value: fmt.Sprintf("%v %v", a.Bank, c.gc.CurrencySymbol), Inline: true},
				},
			})
			return nil
		},
	}
}

func newDailyCommand(b *Bot) *Command {
	return &Command{
		Name:        "daily",
		Description: "Claim your daily reward",
		Usage:       "daily",
		Cooldown:    dailyWindow,
		Run: func(c *Context) error {
			if !c.gc.EconomyEnabled {
				return nil
			}

			a, err := c.b.account(c.gc, c.Author().ID)
			if err != nil {
				return err
			}

			a.Wallet += dailyReward
			if err := c.b.db.UpdateAccount(a); err != nil {
				return err
			}

			c.Reply("You claimed your daily %v %v! Come back in 24 hours.",
				dailyReward, c.gc.CurrencyName)
			return nil
		},
	}
}

func newDepositCommand(b *Bot) *Command {
	return &Command{
		Name:        "deposit",
		Aliases:     []string{"dep"},
		Description: "Move money from your wallet to your bank",
		Usage:       "deposit <amount|all>",
		Run: func(c *Context) error {
			if !c.gc.EconomyEnabled {
				return nil
			}
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vdeposit <amount|all>`", c.gc.Prefix)
				return nil
			}

			a, err := c.b.account(c.gc, c.Author().ID)
			if err != nil {
				return err
			}

			amount, err := parseAmount(c.Args()[0], a.Wallet)
			if err != nil || amount > a.Wallet {
				c.Reply("You do not have that much in your wallet.")
				return nil
			}

			a.Wallet -= amount
			a.Bank += amount
			if err := c.b.db.UpdateAccount(a); err != nil {
				return err
			}

			c.Reply("Deposited %v %v. Bank: %v", amount, c.gc.CurrencySymbol, a.Bank)
			return nil
		},
	}
}

func newWithdrawCommand(b *Bot) *Command {
	return &Command{
		Name:        "withdraw",
		Aliases:     []string{"with"},
		Description: "Move money from your bank to your wallet",
		Usage:       "withdraw <amount|all>",
		Run: func(c *Context) error {
			if !c.gc.EconomyEnabled {
				return nil
			}
			if len(c.Args()) < 1 {
				c.Reply("Usage: `%vwithdraw <amount|all>`", c.gc.Prefix)
				return nil
			}

			a, err := c.b.account(c.gc, c.Author().ID)
			if err != nil {
				return err
			}

			amount, err := parseAmount(c.Args()[0], a.Bank)
			if err != nil || amount > a.Bank {
				c.Reply("You do not have that much in your bank.")
				return nil
			}

			a.Bank -= amount
			a.Wallet += amount
			if err := c.b.db.UpdateAccount(a); err != nil {
				return err
			}

			c.Reply("Withdrew %v %v. Wallet: %v", amount, c.gc.CurrencySymbol, a.Wallet)
			return nil
		},
	}
}

func newTransferCommand(b *Bot) *Command {
	return &Command{
		Name:        "transfer",
		Aliases:     []string{"pay", "give"},
		Description: "Give money to another user",
		Usage:       "transfer <user> <amount>",
		Cooldown:    10 * time.Second,
		Run: func(c *Context) error {
			if !c.gc.EconomyEnabled {
				return nil
			}
			if len(c.Args()) < 2 {
				c.Reply("Usage: `%vtransfer <user> <amount>`", c.gc.Prefix)
				return nil
			}

			target, err := c.s.User(TrimUserString(c.Args()[0]))
			if err != nil || target.Bot || target.ID == c.Author().ID {
				c.Reply("You cannot transfer to that user.")
				return nil
			}

			from, err := c.b.account(c.gc, c.Author().ID)
			if err != nil {
				return err
			}

			amount, err := parseAmount(c.Args()[1], from.Wallet)
			if err != nil || amount > from.Wallet {
				c.Reply("You do not have that much in your wallet.")
				return nil
			}

			to, err := c.b.account(c.gc, target.ID)
			if err != nil {
				return err
			}

			from.Wallet -= amount
			to.Wallet += amount
			if err := c.b.db.UpdateAccount(from); err != nil {
				return err
			}
			if err := c.b.db.UpdateAccount(to); err != nil {
				return err
			}

			c.Reply("Sent %v %v to %v.", amount, c.gc.CurrencySymbol, target.Username)
			return nil
		},
	}
}
