package utils

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/DrDelphi/LotteryBot/data"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

const testMnemonic = "moral volcano peasant pass circle pen over picture flat shop clap goat never lyrics gather prepare woman film husband gravity behind test tiger improve"

func withSeedphrase(t *testing.T, seed string) {
	t.Helper()

	old := Seedphrase
	Seedphrase = seed
	t.Cleanup(func() { Seedphrase = old })
}

func TestGetPrivateKeyFromSeed(t *testing.T) {
	withSeedphrase(t, testMnemonic)

	sk0 := GetPrivateKeyFromSeed(0)
	require.Len(t, sk0, 32)
	assert.Equal(t, "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th", GetAddressFromPrivateKey(sk0))

	assert.Equal(t, sk0, GetPrivateKeyFromSeed(0))
	assert.NotEqual(t, sk0, GetPrivateKeyFromSeed(1))
	assert.NotEqual(t, GetPrivateKeyFromSeed(1), GetPrivateKeyFromSeed(1<<32+1))
}

func TestNewMnemonic(t *testing.T) {
	m, err := NewMnemonic()
	require.NoError(t, err)
	assert.True(t, bip39.IsMnemonicValid(m))
	assert.Len(t, strings.Fields(m), 24)
}

func TestPem_RoundTrip(t *testing.T) {
	withSeedphrase(t, testMnemonic)
	sk := GetPrivateKeyFromSeed(3)
	file := filepath.Join(t.TempDir(), "wallet.pem")

	require.NoError(t, SavePrivateKeyToPem(sk, file))
	loaded, err := LoadPrivateKeyFromPem(file)
	require.NoError(t, err)
	assert.Equal(t, GetAddressFromPrivateKey(sk), GetAddressFromPrivateKey(loaded))

	_, err = LoadPrivateKeyFromPem(filepath.Join(t.TempDir(), "missing.pem"))
	require.Error(t, err)
}

func TestFormatTez(t *testing.T) {
	assert.Equal(t, "0", FormatTez(0))
	assert.Equal(t, "1", FormatTez(data.Tez(1)))
	assert.Equal(t, "0.5", FormatTez(500000))
	assert.Equal(t, "12.000001", FormatTez(12000001))
}

func TestParseTez(t *testing.T) {
	cases := map[string]data.Mutez{
		"1":        1000000,
		"0.5":      500000,
		" 2.25 ":   2250000,
		"0.000001": 1,
		"0":        0,
	}
	for in, want := range cases {
		got, err := ParseTez(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "-1", "0.0000001", "9223372036855"} {
		_, err := ParseTez(in)
		assert.ErrorIs(t, err, ErrInvalidTezAmount, in)
	}
}

func TestShortenAddress(t *testing.T) {
	assert.Equal(t, "erd1qyu5...ycr6th", ShortenAddress("erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"))
	assert.Equal(t, "", ShortenAddress("erd1short"))
}

func TestFormatTickets(t *testing.T) {
	assert.Equal(t, "none", FormatTickets(nil))
	assert.Equal(t, "#0, #4", FormatTickets([]uint64{0, 4}))
}

func TestFormatUsers(t *testing.T) {
	assert.Equal(t, "@alice (Alice [7])", FormatTgUser(&tgbotapi.User{ID: 7, FirstName: "Alice", UserName: "alice"}))
	assert.Equal(t, "Bob Smith [8]", FormatTgUser(&tgbotapi.User{ID: 8, FirstName: "Bob", LastName: "Smith"}))

	assert.Equal(t, "@alice", FormatDbTgUser(&data.Telegram{ID: 7, UserName: "alice"}))
	assert.Equal(t, "[Bob](tg://user?id=8)", FormatDbTgUser(&data.Telegram{ID: 8, FirstName: "Bob"}))
}
