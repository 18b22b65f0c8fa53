package bot

import (
	"fmt"
	"strings"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) gameInfo(user *data.User) string {
	info := b.getContractInfo()
	if info == nil {
		return ""
	}

	text := "`Game Info`\n\n"
	text += fmt.Sprintf("`Ticket price:` %s tez\n", utils.FormatTez(info.TicketCost))
	text += fmt.Sprintf("`Tickets sold:` %v / %v\n", info.TicketsSold, info.MaxTickets)
	text += fmt.Sprintf("`Prize pool:` %s tez\n", utils.FormatTez(info.Balance))
	if info.Open() {
		text += "`Status:` Open\n"
	} else {
		text += "`Status:` Sold out, waiting for the draw\n"
	}
	if user != nil {
		tickets, err := b.networkManager.GetPlayerTickets(user.Wallet)
		if err == nil && len(tickets) > 0 {
			if len(tickets) > 1 {
				text += fmt.Sprintf("\nYou have `%v` tickets: %s", len(tickets), utils.FormatTickets(tickets))
			} else {
				text += fmt.Sprintf("\nYou have `1` ticket: %s", utils.FormatTickets(tickets))
			}
		}
	}

	return text
}

func (b *Bot) sendGameInfo(user *data.User) (tgbotapi.Message, error) {
	text := b.gameInfo(user)
	if user == nil {
		return b.sendToGroup(text)
	}

	return b.sendMessage(user.ID, text)
}

func (b *Bot) buyTicket(user *data.User, count uint64) {
	info := b.getContractInfo()
	if info == nil {
		return
	}

	if !info.Open() {
		b.sendMessage(user.ID, "⌛️ All tickets are sold. Please wait for the draw")
		return
	}

	cost, ok := info.TicketCost.MulNat(count)
	if !ok {
		b.sendMessage(user.ID, "⛔️ Ticket price too high")
		return
	}

	balance, err := b.networkManager.GetBalance(user.Wallet)
	if err != nil {
		b.sendMessage(user.ID, "❗️ Network error. Please contact an administrator ("+err.Error()+")")
		return
	}

	if balance < cost {
		b.sendMessage(user.ID, fmt.Sprintf("⛔️ Not enough balance. You have %s tez and you need %s for the ticket(s)",
			utils.FormatTez(balance), utils.FormatTez(cost)))
		return
	}

	pk := utils.GetPrivateKeyFromSeed(user.ID)
	receipt, err := b.networkManager.SendTransaction(pk, cost, lottery.BuyTicketData(count))
	if err != nil {
		b.sendMessage(user.ID, fmt.Sprintf("⛔️ Error sending transaction: %s", err))
		return
	}

	if receipt.Status != data.StatusSuccess {
		b.sendMessage(user.ID, fmt.Sprintf("⛔️ Transaction failed: `%s`", receipt.Error))
		return
	}

	// the purchased tickets are the last slots of the round
	sold := receipt.Storage.Sold()
	for number := sold - count; number < sold; number++ {
		res, err := b.sendMessage(user.ID, formatTicket(number, ""))
		if err != nil {
			continue
		}
		b.usersMut.Lock()
		user.AddTicket(number, res.MessageID)
		b.usersMut.Unlock()
	}
}

func (b *Bot) sendMyTickets(user *data.User) {
	tickets, err := b.networkManager.GetPlayerTickets(user.Wallet)
	if err != nil {
		log.Warn("can not get player tickets", "error", err)
		return
	}

	if len(tickets) == 0 {
		b.sendMessage(user.ID, "🚫 You have no tickets in this round")
		return
	}

	b.usersMut.Lock()
	old := user.TakeTickets()
	b.usersMut.Unlock()

	for _, ticket := range old {
		msg := tgbotapi.NewDeleteMessage(user.ID, ticket.MessageID)
		b.tg.Send(msg)
	}

	for _, number := range tickets {
		res, err := b.sendMessage(user.ID, formatTicket(number, ""))
		if err == nil {
			b.usersMut.Lock()
			user.AddTicket(number, res.MessageID)
			b.usersMut.Unlock()
		}
	}
}

func formatTicket(number uint64, status string) string {
	text := fmt.Sprintf("🎟 `Ticket #%v`", number)
	if status != "" {
		text += " - " + status
	}

	return text
}

// endGame draws the winner with the operator wallet and announces the result
func (b *Bot) endGame() (*data.Receipt, error) {
	receipt, err := b.networkManager.SendTransaction(b.operatorKey, 0, lottery.EndGameData())
	if err != nil {
		b.reportError("error sending end game tx: " + err.Error())
		return nil, err
	}

	if receipt.Status != data.StatusSuccess {
		log.Warn("end game failed", "error", receipt.Error)
		return receipt, nil
	}

	text := ""
	for _, tr := range receipt.Transfers {
		user, tgUser := b.getUserByAddress(tr.Receiver)
		name := utils.ShortenAddress(tr.Receiver)
		if tgUser != nil {
			name = utils.FormatDbTgUser(tgUser)
		}
		if user != nil {
			b.sendMessage(user.ID, fmt.Sprintf("🤑 You won %s tez", utils.FormatTez(tr.Amount)))
		}
		text += fmt.Sprintf("🎉 %s has won %s tez\n", name, utils.FormatTez(tr.Amount))
	}
	if text == "" {
		text = "😔 The round ended with an empty pool"
	}
	text = strings.ReplaceAll(text, "_", "\\_")
	b.sendToGroup(text)

	b.closeTickets()

	return receipt, nil
}

func (b *Bot) autoEndGame() {
	info, err := b.networkManager.GetContractInfo()
	if err != nil {
		log.Warn("autoEndGame - GetContractInfo", "error", err)
		return
	}
	b.setContractInfo(info)

	if info.Open() || info.TicketsSold == 0 {
		return
	}

	receipt, err := b.endGame()
	if err == nil && receipt.Status != data.StatusSuccess {
		b.reportError("automatic end game failed: " + receipt.Error)
	}
}

// closeTickets marks the ticket messages of the finished round
func (b *Bot) closeTickets() {
	edits := make([]tgbotapi.Chattable, 0)

	b.usersMut.Lock()
	for _, user := range b.users {
		for _, ticket := range user.TakeTickets() {
			msg := tgbotapi.NewEditMessageText(user.ID, ticket.MessageID, formatTicket(ticket.Number, "round closed"))
			msg.ParseMode = tgbotapi.ModeMarkdown
			edits = append(edits, msg)
		}
	}
	b.usersMut.Unlock()

	for _, msg := range edits {
		b.tg.Send(msg)
	}
}
