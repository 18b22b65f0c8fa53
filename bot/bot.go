package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DrDelphi/LotteryBot/config"
	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

var log = logger.GetOrCreate("bot")

var errUserNotFound = errors.New("user not found")

// Network is the part of the network manager used by the bot
type Network interface {
	GetContractInfo() (*data.ContractInfo, error)
	GetBalance(address string) (data.Mutez, error)
	GetPlayerTickets(player string) ([]uint64, error)
	SendTransaction(privateKey []byte, value data.Mutez, function string) (*data.Receipt, error)
	Deposit(address string, amount data.Mutez) (data.Account, error)
}

// sender is the subset of the Telegram API the handlers talk to
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error)
}

// Bot - holds the required fields of the bot application
type Bot struct {
	tgBot          *tgbotapi.BotAPI
	tg             sender
	cfg            *data.AppConfig
	networkManager Network
	operatorKey    []byte
	cron           *cron.Cron

	infoMut      sync.RWMutex
	contractInfo *data.ContractInfo

	usersMut sync.Mutex
	users    map[int64]*data.User
	tgUsers  map[int64]*data.Telegram

	// guards cfg.Bot.GroupID, learned from the first message seen in the group
	groupMut sync.RWMutex

	// help text with the configured group name
	help string

	// group message showing the current round, edited as tickets are sold
	lastInfoMessage int
}

// NewBot - creates a new Bot object. operatorKey signs the operator calls.
func NewBot(cfg *data.AppConfig, networkManager Network, operatorKey []byte) (*Bot, error) {
	tgBot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Error("can not create telegram bot", "error", err)
		return nil, err
	}

	b := newBot(cfg, networkManager, operatorKey, tgBot)
	b.tgBot = tgBot

	return b, nil
}

func newBot(cfg *data.AppConfig, networkManager Network, operatorKey []byte, tg sender) *Bot {
	help := helpMessage
	if cfg.Bot.Group != "" {
		help = strings.ReplaceAll(help, "LotteryGroup", cfg.Bot.Group)
	}

	return &Bot{
		help:           help,
		tg:             tg,
		cfg:            cfg,
		networkManager: networkManager,
		operatorKey:    operatorKey,
		cron:           cron.New(),
		users:          make(map[int64]*data.User),
		tgUsers:        make(map[int64]*data.Telegram),
	}
}

// StartTasks - starts bot's tasks. They stop when ctx is done.
func (b *Bot) StartTasks(ctx context.Context) error {
	if b.cfg.Bot.AutoEndGame {
		_, err := b.cron.AddFunc(b.cfg.Bot.EndGameSchedule, b.autoEndGame)
		if err != nil {
			return errors.Wrapf(err, "invalid end game schedule %q", b.cfg.Bot.EndGameSchedule)
		}
		b.cron.Start()
		log.Info("automatic end game enabled", "schedule", b.cfg.Bot.EndGameSchedule)
	}

	go func() {
		var last *data.ContractInfo
		for {
			last = b.refreshContractInfo(last)
			select {
			case <-ctx.Done():
				<-b.cron.Stop().Done()
				return
			case <-time.After(time.Second * utils.RefreshInterval):
			}
		}
	}()

	if b.tgBot == nil {
		return nil
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.tgBot.GetUpdatesChan(u)
	if err != nil {
		log.Error("can not get Telegram bot updates", "error", err)
		return err
	}
	updates.Clear()

	go func() {
		<-ctx.Done()
		b.tgBot.StopReceivingUpdates()
	}()

	go func() {
		for update := range updates {
			if ctx.Err() != nil {
				return
			}
			b.updateReceived(update)
		}
	}()

	return nil
}

func (b *Bot) updateReceived(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.Chat.IsPrivate() {
			// private
			if update.Message.IsCommand() {
				b.privateCommandReceived(update.Message)
				return
			}
			b.privateMessageReceived(update.Message)
		} else {
			// public
			b.discoverGroup(update.Message.Chat)
			if update.Message.IsCommand() {
				b.tg.Send(tgbotapi.DeleteMessageConfig{ChatID: update.Message.Chat.ID, MessageID: update.Message.MessageID})
			}
		}
		return
	}

	if update.CallbackQuery != nil {
		b.callbackQueryReceived(update.CallbackQuery)
	}
}

// discoverGroup remembers the id of the configured group the first time a message arrives from it
func (b *Bot) discoverGroup(chat *tgbotapi.Chat) {
	b.groupMut.Lock()
	defer b.groupMut.Unlock()

	if b.cfg.Bot.GroupID != 0 || b.cfg.Bot.Group == "" || chat.UserName != b.cfg.Bot.Group {
		return
	}

	b.cfg.Bot.GroupID = chat.ID
	log.Info("group discovered", "group", chat.UserName, "id", chat.ID)
	if err := config.Save(b.cfg); err != nil {
		log.Warn("can not save group id", "error", err)
	}
}

func (b *Bot) groupID() int64 {
	b.groupMut.RLock()
	defer b.groupMut.RUnlock()

	return b.cfg.Bot.GroupID
}

// refreshContractInfo reloads the contract and announces round changes to the group
func (b *Bot) refreshContractInfo(last *data.ContractInfo) *data.ContractInfo {
	info, err := b.networkManager.GetContractInfo()
	if err != nil {
		b.reportError("Unable to get contract info. Error: " + err.Error())
		return last
	}
	b.setContractInfo(info)

	switch {
	case last == nil || (info.TicketsSold < last.TicketsSold) || info.MaxTickets != last.MaxTickets:
		msg, err := b.sendGameInfo(nil)
		if err == nil {
			b.lastInfoMessage = msg.MessageID
		}
	case info.TicketsSold != last.TicketsSold && b.lastInfoMessage != 0:
		msg := tgbotapi.NewEditMessageText(b.groupID(), b.lastInfoMessage, b.gameInfo(nil))
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tg.Send(msg)
	}

	return info
}

func (b *Bot) setContractInfo(info *data.ContractInfo) {
	b.infoMut.Lock()
	b.contractInfo = info
	b.infoMut.Unlock()
}

func (b *Bot) getContractInfo() *data.ContractInfo {
	b.infoMut.RLock()
	defer b.infoMut.RUnlock()

	return b.contractInfo
}

func (b *Bot) isOperator(user *data.User) bool {
	return b.cfg.Bot.Owner != 0 && user.ID == b.cfg.Bot.Owner
}

func (b *Bot) reportError(text string) {
	log.Warn("reported error", "error", text)
	if b.cfg.Bot.Owner == 0 {
		return
	}
	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, "⛔️ "+text)
	b.tg.Send(msg)
}

func (b *Bot) sendToGroup(text string) (tgbotapi.Message, error) {
	groupID := b.groupID()
	if groupID == 0 {
		return tgbotapi.Message{}, nil
	}

	msg := tgbotapi.NewMessage(groupID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tg.Send(msg)
	if err != nil {
		log.Warn("error sending message to group", "message", text, "error", err)
	}

	return res, err
}

func (b *Bot) sendMessage(userID int64, text string) (tgbotapi.Message, error) {
	b.usersMut.Lock()
	user := b.users[userID]
	tgUser := b.tgUsers[userID]
	b.usersMut.Unlock()
	if user == nil {
		return tgbotapi.Message{}, errUserNotFound
	}

	name := fmt.Sprint(userID)
	if tgUser != nil {
		name = fmt.Sprintf("@%s (%s %s)", tgUser.UserName, tgUser.FirstName, tgUser.LastName)
	}
	log.Info("sent message", "user", name, "message", text)

	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tg.Send(msg)
	if err != nil {
		log.Warn("error sending message", "user", name, "message", text, "error", err.Error())
	}

	return res, err
}

func (b *Bot) getOrCreateUser(tgUser *tgbotapi.User) *data.User {
	id := int64(tgUser.ID)

	b.usersMut.Lock()
	defer b.usersMut.Unlock()

	user, ok := b.users[id]
	if !ok {
		user = &data.User{
			ID:      id,
			Wallet:  utils.GetAddressFromPrivateKey(utils.GetPrivateKeyFromSeed(id)),
			Tickets: make([]*data.TelegramTicket, 0),
		}
		b.users[id] = user
	}

	tg, ok := b.tgUsers[id]
	if !ok || tg.UserName != tgUser.UserName || tg.FirstName != tgUser.FirstName || tg.LastName != tgUser.LastName {
		b.tgUsers[id] = &data.Telegram{
			ID:        id,
			UserName:  tgUser.UserName,
			FirstName: tgUser.FirstName,
			LastName:  tgUser.LastName,
		}
	}

	return user
}

func (b *Bot) getUserByAddress(address string) (*data.User, *data.Telegram) {
	b.usersMut.Lock()
	defer b.usersMut.Unlock()

	for _, user := range b.users {
		if user.Wallet == address {
			return user, b.tgUsers[user.ID]
		}
	}

	return nil, nil
}
