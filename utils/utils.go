package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/ElrondNetwork/elrond-go-crypto/signing"
	"github.com/ElrondNetwork/elrond-go-crypto/signing/ed25519"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/interactors"
	"github.com/btcsuite/btcutil/bech32"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tyler-smith/go-bip39"
)

const hardened = uint32(0x80000000)

var (
	ErrInvalidTezAmount = errors.New("invalid tez amount")

	maxMutez = decimal.NewFromInt(math.MaxInt64)
)

type bip32Path []uint32

type bip32 struct {
	Key       []byte
	ChainCode []byte
}

var path = bip32Path{
	44 + hardened,
	508 + hardened,
	hardened,
	hardened,
	hardened,
}

func FormatTgUser(user *tgbotapi.User) string {
	name := fmt.Sprintf("%s %s [%v]", user.FirstName, user.LastName, user.ID)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	if user.UserName != "" {
		name = fmt.Sprintf("@%s (%s)", user.UserName, name)
	}

	return name
}

func FormatDbTgUser(user *data.Telegram) string {
	if user.UserName != "" {
		return "@" + user.UserName
	}

	name := fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	name = fmt.Sprintf("[%s](tg://user?id=%v)", name, user.ID)

	return name
}

// NewMnemonic - generates a fresh 24 words seed phrase
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}

	return bip39.NewMnemonic(entropy)
}

// GetPrivateKeyFromSeed - derives the wallet with the given index from Seedphrase
func GetPrivateKeyFromSeed(index int64) []byte {
	seed := bip39.NewSeed(Seedphrase, "")
	walletPath := make(bip32Path, len(path))
	copy(walletPath, path)
	walletPath[3] = hardened + uint32(index>>32)
	walletPath[4] = hardened + uint32(index&0xFFFFFFFF)
	keyData := derivePrivateKey(seed, walletPath)

	return keyData.Key
}

func GetAddressFromPrivateKey(privBytes []byte) string {
	_suite := ed25519.NewEd25519()
	keyGen := signing.NewKeyGenerator(_suite)
	txSignPrivKey, err := keyGen.PrivateKeyFromByteArray(privBytes)
	if err != nil {
		return ""
	}
	pubKey := txSignPrivKey.GeneratePublic()
	pubBytes, _ := pubKey.ToByteArray()
	b, _ := bech32.ConvertBits(pubBytes, 8, 5, true)
	s, _ := bech32.Encode("erd", b)

	return s
}

func derivePrivateKey(seed []byte, path bip32Path) *bip32 {
	b := &bip32{}
	digest := hmac.New(sha512.New, []byte("ed25519 seed"))
	digest.Write(seed)
	intermediary := digest.Sum(nil)
	b.Key = intermediary[:32]
	b.ChainCode = intermediary[32:]
	for _, childIdx := range path {
		data := make([]byte, 1+32+4)
		data[0] = 0x00
		copy(data[1:1+32], b.Key)
		binary.BigEndian.PutUint32(data[1+32:1+32+4], childIdx)
		digest = hmac.New(sha512.New, b.ChainCode)
		digest.Write(data)
		intermediary = digest.Sum(nil)
		b.Key = intermediary[:32]
		b.ChainCode = intermediary[32:]
	}
	return b
}

// LoadPrivateKeyFromPem - reads a wallet key from an Elrond PEM file
func LoadPrivateKeyFromPem(file string) ([]byte, error) {
	w := interactors.NewWallet()
	pk, err := w.LoadPrivateKeyFromPemFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "load pem %s", file)
	}

	return pk, nil
}

// SavePrivateKeyToPem - writes privateKey to file in the Elrond PEM format
func SavePrivateKeyToPem(privateKey []byte, file string) error {
	w := interactors.NewWallet()

	return errors.Wrapf(w.SavePrivateKeyToPemFile(privateKey, file), "save pem %s", file)
}

// FormatTez - renders a mutez amount in tez, without trailing zeros
func FormatTez(amount data.Mutez) string {
	return decimal.New(int64(amount), -6).String()
}

// ParseTez - converts a tez amount like "1.5" to mutez
func ParseTez(s string) (data.Mutez, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrap(ErrInvalidTezAmount, s)
	}

	d = d.Shift(6)
	if d.IsNegative() || !d.Equal(d.Truncate(0)) || d.GreaterThan(maxMutez) {
		return 0, errors.Wrap(ErrInvalidTezAmount, s)
	}

	return data.Mutez(d.IntPart()), nil
}

func ShortenAddress(address string) string {
	l := len(address)
	if l < 14 {
		return ""
	}

	return address[:8] + "..." + address[l-6:]
}

// FormatTickets - lists ticket numbers as #n, #m
func FormatTickets(tickets []uint64) string {
	if len(tickets) == 0 {
		return "none"
	}

	res := make([]string, 0, len(tickets))
	for _, t := range tickets {
		res = append(res, fmt.Sprintf("#%d", t))
	}

	return strings.Join(res, ", ")
}
