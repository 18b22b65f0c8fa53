package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/utils"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

var (
	cfgPath string
)

// NewConfig - reads the application configuration from the provided path
// and returns an AppConfig struct or an error if something goes wrong.
// Files ending in .toml are decoded as TOML, anything else as JSON. LOTTERY_*
// environment variables override the file values.
func NewConfig(configPath string) (*data.AppConfig, error) {
	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &data.AppConfig{}
	if isToml(configPath) {
		err = toml.Unmarshal(b, cfg)
	} else {
		err = json.Unmarshal(b, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", configPath)
	}

	if err = env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "environment overrides")
	}

	setDefaults(cfg)
	cfgPath = configPath

	return cfg, nil
}

func Save(cfg *data.AppConfig) error {
	var b []byte
	var err error
	if isToml(cfgPath) {
		buf := &bytes.Buffer{}
		err = toml.NewEncoder(buf).Encode(cfg)
		b = buf.Bytes()
	} else {
		b, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(cfgPath, b, 0644)
}

func isToml(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func setDefaults(cfg *data.AppConfig) {
	if cfg.ContractAddress == "" {
		cfg.ContractAddress = utils.DefaultContractAddress
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = utils.DefaultStoragePath
	}
	if cfg.API.Listen == "" {
		cfg.API.Listen = utils.DefaultAPIListen
	}
	if cfg.Bot.EndGameSchedule == "" {
		cfg.Bot.EndGameSchedule = utils.DefaultEndGameSchedule
	}
	if cfg.Contract.TicketCost == 0 {
		cfg.Contract.TicketCost = utils.DefaultTicketCost
	}
	if cfg.Contract.MaxTickets == 0 {
		cfg.Contract.MaxTickets = utils.DefaultMaxTickets
	}
}
