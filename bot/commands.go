package bot

import "time"

// registerCommands wires every command into the registry and applies
// default cooldown windows.
func (b *Bot) registerCommands() error {
	cmds := []*Command{
		newPingCommand(b),
		newInfoCommand(b),
		newServerInfoCommand(b),
		newUserInfoCommand(b),
		newAvatarCommand(b),
		newSnipeCommand(b),
		newEditSnipeCommand(b),
		newHelpCommand(b),

		newWarnCommand(b),
		newWarningsCommand(b),
		newClearWarnsCommand(b),
		newKickCommand(b),
		newBanCommand(b),
		newUnbanCommand(b),
		newPurgeCommand(b),

		newBalanceCommand(b),
		newDailyCommand(b),
		newDepositCommand(b),
		newWithdrawCommand(b),
		newTransferCommand(b),

		newRankCommand(b),
		newLevelRoleCommand(b),

		newAutoResponderCommand(b),

		newGiveawayStartCommand(b),
		newGiveawayEndCommand(b),
		newGiveawayRerollCommand(b),
		newGiveawayListCommand(b),

		newTicketCommand(b),

		newPrefixCommand(b),
		newSetWelcomeCommand(b),
		newSetGoodbyeCommand(b),
		newSetModLogCommand(b),
		newToggleCommandCommand(b),
		newSetCooldownCommand(b),
		newCooldownResetCommand(b),
	}

	for _, cmd := range cmds {
		if err := b.registry.Register(cmd); err != nil {
			return err
		}
		if cmd.Cooldown > 0 {
			b.cooldowns.SetWindow(cmd.Name, cmd.Cooldown)
		}
	}
	return nil
}

const dailyWindow = 24 * time.Hour
