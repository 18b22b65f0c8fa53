package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DrDelphi/LotteryBot/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonConfig = `{
  "bot": {"token": "123:abc", "owner": 42, "group": "lotterygroup", "autoEndGame": true},
  "seed": "moral volcano",
  "contract": {"ticketCost": 500000, "maxTickets": 20},
  "storage": {"path": "/tmp/lottery.db"}
}`

const tomlConfig = `
seed = "moral volcano"
operatorPem = "operator.pem"

[bot]
token = "123:abc"
owner = 42
endGameSchedule = "@every 30s"

[api]
listen = "127.0.0.1:9000"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestNewConfig_JSON(t *testing.T) {
	cfg, err := NewConfig(writeFile(t, "config.json", jsonConfig))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, int64(42), cfg.Bot.Owner)
	assert.True(t, cfg.Bot.AutoEndGame)
	assert.Equal(t, "moral volcano", cfg.Seedphrase)
	assert.Equal(t, uint64(500000), cfg.Contract.TicketCost)
	assert.Equal(t, uint64(20), cfg.Contract.MaxTickets)
	assert.Equal(t, "/tmp/lottery.db", cfg.Storage.Path)

	assert.Equal(t, utils.DefaultContractAddress, cfg.ContractAddress)
	assert.Equal(t, utils.DefaultEndGameSchedule, cfg.Bot.EndGameSchedule)
	assert.Equal(t, utils.DefaultAPIListen, cfg.API.Listen)
}

func TestNewConfig_TOML(t *testing.T) {
	cfg, err := NewConfig(writeFile(t, "config.toml", tomlConfig))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, "operator.pem", cfg.OperatorPem)
	assert.Equal(t, "@every 30s", cfg.Bot.EndGameSchedule)
	assert.Equal(t, "127.0.0.1:9000", cfg.API.Listen)
	assert.Equal(t, uint64(utils.DefaultTicketCost), cfg.Contract.TicketCost)
	assert.Equal(t, utils.DefaultStoragePath, cfg.Storage.Path)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LOTTERY_BOT_TOKEN", "999:zzz")
	t.Setenv("LOTTERY_AUTO_END_GAME", "false")
	t.Setenv("LOTTERY_STORAGE_PATH", "env.db")

	cfg, err := NewConfig(writeFile(t, "config.json", jsonConfig))
	require.NoError(t, err)

	assert.Equal(t, "999:zzz", cfg.Bot.Token)
	assert.False(t, cfg.Bot.AutoEndGame)
	assert.Equal(t, "env.db", cfg.Storage.Path)
	assert.Equal(t, int64(42), cfg.Bot.Owner)
}

func TestNewConfig_Errors(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = NewConfig(writeFile(t, "config.json", "{"))
	require.Error(t, err)
}

func TestSave(t *testing.T) {
	for _, name := range []string{"config.json", "config.toml"} {
		path := writeFile(t, name, map[string]string{"config.json": jsonConfig, "config.toml": tomlConfig}[name])

		cfg, err := NewConfig(path)
		require.NoError(t, err)

		cfg.Bot.GroupID = -100123
		require.NoError(t, Save(cfg))

		reloaded, err := NewConfig(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, reloaded, name)
	}
}
