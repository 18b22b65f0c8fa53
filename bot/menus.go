package bot

import (
	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// buyMenus maps the quick buy buttons to the number of tickets they buy
var buyMenus = []struct {
	text  string
	count uint64
}{
	{menuBuy2, 2},
	{menuBuy3, 3},
	{menuBuy4, 4},
	{menuBuy5, 5},
	{menuBuy6, utils.MaxTicketsPerBuy},
}

// lotteryKeyboard - builds the reply keyboard of user. The operator gets an
// extra row with the round management buttons.
func (b *Bot) lotteryKeyboard(user *data.User) tgbotapi.ReplyKeyboardMarkup {
	buyRow := make([]tgbotapi.KeyboardButton, 0, len(buyMenus))
	for _, m := range buyMenus {
		buyRow = append(buyRow, tgbotapi.NewKeyboardButton(m.text))
	}

	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuGameInfo),
			tgbotapi.NewKeyboardButton(menuBalance),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuBuyTicket),
			tgbotapi.NewKeyboardButton(menuMyTickets),
		),
		buyRow,
	}
	if b.isOperator(user) {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuEndGame),
			tgbotapi.NewKeyboardButton(menuOperator),
		))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(menuMainHelp),
		tgbotapi.NewKeyboardButton(menuAbout),
	))

	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) mainMenu(user *data.User) {
	msg := tgbotapi.NewMessage(user.ID, "`🎰 Lottery menu`")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.lotteryKeyboard(user)
	b.tg.Send(msg)
}

// buyMenuCount returns the number of tickets bought by a quick buy button
func buyMenuCount(text string) (uint64, bool) {
	for _, m := range buyMenus {
		if m.text == text {
			return m.count, true
		}
	}

	return 0, false
}
