package lottery

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/DrDelphi/LotteryBot/data"
)

// Entrypoint names
const (
	EntrypointBuyTicket    = "buy_ticket"
	EntrypointChangeParams = "change_lottery_params"
	EntrypointEndGame      = "end_game"
	EntrypointDefault      = "default"
)

// ParseData splits a call data field into the function name and its decoded
// natural number arguments
func ParseData(callData string) (string, []uint64, error) {
	if callData == "" {
		return EntrypointDefault, nil, nil
	}

	parts := strings.Split(callData, "@")
	args := make([]uint64, 0, len(parts)-1)
	for _, p := range parts[1:] {
		n, err := decodeNat(p)
		if err != nil {
			return parts[0], nil, err
		}
		args = append(args, n)
	}

	return parts[0], args, nil
}

func decodeNat(arg string) (uint64, error) {
	if arg == "" {
		return 0, nil
	}
	if len(arg)%2 == 1 {
		arg = "0" + arg
	}

	b, err := hex.DecodeString(arg)
	if err != nil {
		return 0, ErrInvalidArguments
	}

	n := big.NewInt(0).SetBytes(b)
	if !n.IsUint64() {
		return 0, ErrInvalidArguments
	}

	return n.Uint64(), nil
}

func encodeNat(n uint64) string {
	if n == 0 {
		return ""
	}

	return hex.EncodeToString(big.NewInt(0).SetUint64(n).Bytes())
}

// BuyTicketData builds the data field of a buy_ticket call
func BuyTicketData(ticketCount uint64) string {
	return EntrypointBuyTicket + "@" + encodeNat(ticketCount)
}

// ChangeParamsData builds the data field of a change_lottery_params call
func ChangeParamsData(ticketCost, newMaxTickets uint64) string {
	return EntrypointChangeParams + "@" + encodeNat(ticketCost) + "@" + encodeNat(newMaxTickets)
}

// EndGameData builds the data field of an end_game call
func EndGameData() string {
	return EntrypointEndGame
}

// Dispatch runs the entrypoint named by callData against st. It returns the
// resolved entrypoint name so failed calls can still be reported per entrypoint.
func (c *Contract) Dispatch(st *data.Storage, ctx Context, callData string) (string, []data.Transfer, error) {
	function, args, err := ParseData(callData)
	if err != nil {
		if !isEntrypoint(function) {
			transfers, err := c.Default(st, ctx)
			return EntrypointDefault, transfers, err
		}
		return function, nil, err
	}

	switch function {
	case EntrypointBuyTicket:
		if len(args) != 1 {
			return function, nil, ErrInvalidArguments
		}
		transfers, err := c.BuyTicket(st, ctx, args[0])
		return function, transfers, err
	case EntrypointChangeParams:
		if len(args) != 2 {
			return function, nil, ErrInvalidArguments
		}
		transfers, err := c.ChangeLotteryParams(st, ctx, args[0], args[1])
		return function, transfers, err
	case EntrypointEndGame:
		if len(args) != 0 {
			return function, nil, ErrInvalidArguments
		}
		transfers, err := c.EndGame(st, ctx)
		return function, transfers, err
	default:
		transfers, err := c.Default(st, ctx)
		return EntrypointDefault, transfers, err
	}
}

func isEntrypoint(function string) bool {
	switch function {
	case EntrypointBuyTicket, EntrypointChangeParams, EntrypointEndGame:
		return true
	}

	return false
}
