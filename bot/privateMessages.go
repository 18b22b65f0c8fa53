package bot

import (
	"fmt"

	"github.com/DrDelphi/LotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateMessageReceived(message *tgbotapi.Message) {
	user := b.getOrCreateUser(message.From)
	name := utils.FormatTgUser(message.From)
	log.Info("private message received", "message", message.Text, "user", name)

	switch message.Text {
	case menuAbout:
		msg := tgbotapi.NewMessage(user.ID, aboutMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tg.Send(msg)
		return
	case menuMainHelp:
		msg := tgbotapi.NewMessage(user.ID, b.help)
		msg.ParseMode = tgbotapi.ModeMarkdown
		_, err := b.tg.Send(msg)
		if err != nil {
			log.Error("unable to send message", "message", b.help, "error", err)
		}
		if b.isOperator(user) {
			b.sendMessage(user.ID, operatorHelp)
		}
		return
	case menuGameInfo:
		b.sendGameInfo(user)
		return
	case menuBalance:
		balance, err := b.networkManager.GetBalance(user.Wallet)
		if err != nil {
			b.reportError("can not get wallet balance")
			return
		}
		text := fmt.Sprintf("`Wallet:` [%s](%s%s)\n`Balance:` %s tez",
			utils.ShortenAddress(user.Wallet), b.cfg.Network.ExplorerAccount, user.Wallet, utils.FormatTez(balance))
		keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔑 PEM file", callbackPem),
		))
		msg := tgbotapi.NewMessage(user.ID, text)
		msg.ReplyMarkup = keyboard
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true
		b.tg.Send(msg)
		return
	case menuBuyTicket:
		b.buyTicket(user, 1)
		return
	case menuMyTickets:
		b.sendMyTickets(user)
		return
	case menuEndGame, menuOperator:
		if !b.isOperator(user) {
			b.sendMessage(user.ID, operatorOnly)
			return
		}
		if message.Text == menuEndGame {
			b.operatorEndGame(user)
		} else {
			b.sendMessage(user.ID, operatorHelp)
		}
		return
	}

	if count, ok := buyMenuCount(message.Text); ok {
		b.buyTicket(user, count)
	}
}
