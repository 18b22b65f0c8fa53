package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DrDelphi/LotteryBot/api"
	"github.com/DrDelphi/LotteryBot/bot"
	"github.com/DrDelphi/LotteryBot/config"
	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/host"
	"github.com/DrDelphi/LotteryBot/metrics"
	"github.com/DrDelphi/LotteryBot/network"
	"github.com/DrDelphi/LotteryBot/store"
	"github.com/DrDelphi/LotteryBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/urfave/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = logger.GetOrCreate("main")

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the json or toml configuration file",
		Value: utils.DefaultConfigPath,
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "logger level(s), e.g. *:INFO or *:INFO,host:DEBUG",
		Value: "*:INFO",
	}
	logFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "also write logs to this file, rotated every 100 MB",
	}
	indexFlag = cli.Int64Flag{
		Name:  "index",
		Usage: "wallet index (the Telegram user id of a player)",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "output file",
		Value: "wallet.pem",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "erd1 address to credit",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount in tez",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "lottery-bot"
	app.Usage = "Telegram lottery bot backed by a persistent lottery contract"
	app.Flags = []cli.Flag{configFlag, logLevelFlag, logFileFlag}
	app.Before = initLogger
	app.Action = run
	app.Commands = []cli.Command{
		{
			Name:   "new-wallet",
			Usage:  "generate a seed phrase and print its first address",
			Action: newWallet,
		},
		{
			Name:   "export-pem",
			Usage:  "write the PEM file of a wallet derived from the configured seed",
			Flags:  []cli.Flag{indexFlag, outFlag},
			Action: exportPem,
		},
		{
			Name:   "storage",
			Usage:  "print the contract storage",
			Action: printStorage,
		},
		{
			Name:   "deposit",
			Usage:  "credit an account",
			Flags:  []cli.Flag{addressFlag, amountFlag},
			Action: deposit,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}

func initLogger(c *cli.Context) error {
	if err := logger.SetLogLevel(c.GlobalString(logLevelFlag.Name)); err != nil {
		return err
	}

	file := c.GlobalString(logFileFlag.Name)
	if file == "" {
		return nil
	}

	return logger.AddLogObserver(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 10,
		MaxAge:     30,
		Compress:   true,
	}, &logger.PlainFormatter{})
}

func loadConfig(c *cli.Context) (*data.AppConfig, error) {
	cfg, err := config.NewConfig(c.GlobalString(configFlag.Name))
	if err != nil {
		log.Error("can not load config", "error", err)
		return nil, err
	}
	utils.Seedphrase = cfg.Seedphrase

	return cfg, nil
}

func operatorKey(cfg *data.AppConfig) ([]byte, error) {
	if cfg.OperatorPem != "" {
		return utils.LoadPrivateKeyFromPem(cfg.OperatorPem)
	}

	return utils.GetPrivateKeyFromSeed(utils.OperatorIndex), nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	opKey, err := operatorKey(cfg)
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	m := metrics.New()
	h, err := host.New(s, cfg.ContractAddress, host.WithMetrics(m))
	if err != nil {
		return err
	}

	nm, err := network.NewNetworkManager(h)
	if err != nil {
		return err
	}

	operator, err := nm.AddressFromPrivateKey(opKey)
	if err != nil {
		return err
	}
	ticketCost, ok := data.MutezFromNat(cfg.Contract.TicketCost)
	if !ok {
		return fmt.Errorf("ticket cost %d mutez is out of range", cfg.Contract.TicketCost)
	}
	st, err := h.Originate(operator, ticketCost, cfg.Contract.MaxTickets)
	if err != nil {
		return err
	}
	if st.Operator != operator {
		log.Warn("configured operator key does not own the contract", "operator", st.Operator, "key", operator)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	apiErr := make(chan error, 1)
	go func() {
		apiErr <- api.NewServer(nm, m.Handler()).ListenAndServe(ctx, cfg.API.Listen)
	}()

	if cfg.Bot.Token != "" {
		b, err := bot.NewBot(cfg, nm, opKey)
		if err != nil {
			return err
		}
		if err = b.StartTasks(ctx); err != nil {
			return err
		}
	} else {
		log.Warn("no telegram token configured, running without the bot")
	}

	log.Info("lottery started", "contract", cfg.ContractAddress, "operator", st.Operator)

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		return <-apiErr
	case err = <-apiErr:
		return err
	}
}

func newWallet(_ *cli.Context) error {
	mnemonic, err := utils.NewMnemonic()
	if err != nil {
		return err
	}
	utils.Seedphrase = mnemonic

	fmt.Println("seed:    ", mnemonic)
	fmt.Println("operator:", utils.GetAddressFromPrivateKey(utils.GetPrivateKeyFromSeed(utils.OperatorIndex)))

	return nil
}

func exportPem(c *cli.Context) error {
	if _, err := loadConfig(c); err != nil {
		return err
	}

	pk := utils.GetPrivateKeyFromSeed(c.Int64(indexFlag.Name))
	if err := utils.SavePrivateKeyToPem(pk, c.String(outFlag.Name)); err != nil {
		return err
	}

	log.Info("pem file written", "address", utils.GetAddressFromPrivateKey(pk), "file", c.String(outFlag.Name))

	return nil
}

func openHost(c *cli.Context) (*host.Host, *store.Store, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	s, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}

	h, err := host.New(s, cfg.ContractAddress)
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}

	return h, s, nil
}

func printStorage(c *cli.Context) error {
	h, s, err := openHost(c)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := h.Storage()
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))

	return nil
}

func deposit(c *cli.Context) error {
	amount, err := utils.ParseTez(c.String(amountFlag.Name))
	if err != nil {
		return err
	}

	h, s, err := openHost(c)
	if err != nil {
		return err
	}
	defer s.Close()

	nm, err := network.NewNetworkManager(h)
	if err != nil {
		return err
	}

	account, err := nm.Deposit(c.String(addressFlag.Name), amount)
	if err != nil {
		return err
	}

	log.Info("deposit done", "address", c.String(addressFlag.Name), "balance", utils.FormatTez(account.Balance))

	return nil
}
