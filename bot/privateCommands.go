package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateCommandReceived(message *tgbotapi.Message) {
	cmd := message.Command()
	args := message.CommandArguments()
	name := utils.FormatTgUser(message.From)

	user := b.getOrCreateUser(message.From)
	log.Info("private command received", "command", cmd, "args", args, "user", name)

	switch cmd {
	case "start":
		msg := tgbotapi.NewMessage(user.ID, b.help)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tg.Send(msg)
		b.mainMenu(user)
		return
	case "params", "endgame", "fund", "operator":
		if !b.isOperator(user) {
			b.sendMessage(user.ID, operatorOnly)
			return
		}
	default:
		return
	}

	switch cmd {
	case "operator":
		b.sendMessage(user.ID, operatorHelp)
	case "params":
		b.changeParams(user, strings.Fields(args))
	case "endgame":
		b.operatorEndGame(user)
	case "fund":
		b.fund(user, strings.Fields(args))
	}
}

func (b *Bot) operatorEndGame(user *data.User) {
	receipt, err := b.endGame()
	if err != nil {
		return
	}
	b.sendReceipt(user, receipt)
}

func (b *Bot) changeParams(user *data.User, args []string) {
	if len(args) != 2 {
		b.sendMessage(user.ID, "❕ Usage: /params <ticket cost in mutez> <max tickets>")
		return
	}

	cost, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		b.sendMessage(user.ID, "❕ Invalid ticket cost")
		return
	}
	maxTickets, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		b.sendMessage(user.ID, "❕ Invalid max tickets")
		return
	}

	receipt, err := b.networkManager.SendTransaction(b.operatorKey, 0, lottery.ChangeParamsData(cost, maxTickets))
	if err != nil {
		b.reportError("error sending change params tx: " + err.Error())
		return
	}

	b.sendReceipt(user, receipt)
}

func (b *Bot) fund(user *data.User, args []string) {
	if len(args) != 2 {
		b.sendMessage(user.ID, "❕ Usage: /fund <address> <tez>")
		return
	}

	amount, err := utils.ParseTez(args[1])
	if err != nil {
		b.sendMessage(user.ID, "❕ Invalid amount")
		return
	}

	account, err := b.networkManager.Deposit(args[0], amount)
	if err != nil {
		b.sendMessage(user.ID, fmt.Sprintf("⛔️ Deposit failed: %s", err))
		return
	}

	b.sendMessage(user.ID, fmt.Sprintf("✅ `%s` now has %s tez", utils.ShortenAddress(args[0]), utils.FormatTez(account.Balance)))
}

func (b *Bot) sendReceipt(user *data.User, receipt *data.Receipt) {
	if receipt.Status == data.StatusSuccess {
		b.sendMessage(user.ID, fmt.Sprintf("✅ `%s` succeeded", receipt.Entrypoint))
		return
	}

	b.sendMessage(user.ID, fmt.Sprintf("⛔️ `%s` failed: `%s`", receipt.Entrypoint, receipt.Error))
}
