package bot

import (
	"os"
	"path/filepath"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) callbackQueryReceived(callback *tgbotapi.CallbackQuery) {
	cb := callback.Data
	b.tg.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, cb))
	user := b.getOrCreateUser(callback.From)
	name := utils.FormatTgUser(callback.From)
	log.Info("callback received", "callback", callback.Data, "user", name)

	if callback.Data == callbackPem {
		b.sendPemFile(user)
		return
	}
}

func (b *Bot) sendPemFile(user *data.User) {
	dir, err := os.MkdirTemp("", "lottery-pem")
	if err != nil {
		log.Warn("sendPemFile - MkdirTemp", "error", err)
		return
	}
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, user.Wallet+".pem")
	if err = utils.SavePrivateKeyToPem(utils.GetPrivateKeyFromSeed(user.ID), filename); err != nil {
		log.Warn("sendPemFile - SavePrivateKeyToPem", "error", err)
		return
	}

	fileable := tgbotapi.NewDocumentUpload(user.ID, filename)
	b.tg.Send(fileable)
}
