package lottery

import (
	"testing"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseData(t *testing.T) {
	function, args, err := ParseData("")
	require.NoError(t, err)
	assert.Equal(t, EntrypointDefault, function)
	assert.Empty(t, args)

	function, args, err = ParseData(ChangeParamsData(500000, 10))
	require.NoError(t, err)
	assert.Equal(t, EntrypointChangeParams, function)
	assert.Equal(t, []uint64{500000, 10}, args)

	function, args, err = ParseData("buy_ticket@3")
	require.NoError(t, err)
	assert.Equal(t, EntrypointBuyTicket, function)
	assert.Equal(t, []uint64{3}, args)

	_, _, err = ParseData("buy_ticket@zz")
	require.ErrorIs(t, err, ErrInvalidArguments)

	_, _, err = ParseData("buy_ticket@010000000000000000")
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestDataBuilders(t *testing.T) {
	assert.Equal(t, "buy_ticket@03", BuyTicketData(3))
	assert.Equal(t, "buy_ticket@", BuyTicketData(0))
	assert.Equal(t, "change_lottery_params@07a120@0a", ChangeParamsData(500000, 10))
	assert.Equal(t, "end_game", EndGameData())
}

func TestDispatch(t *testing.T) {
	c := NewContract(FixedSeed(0))

	t.Run("routes to the entrypoints", func(t *testing.T) {
		st := newStorage(data.Tez(1), 5)

		name, _, err := c.Dispatch(st, call(operator, 0), ChangeParamsData(10, 1))
		require.NoError(t, err)
		assert.Equal(t, EntrypointChangeParams, name)

		name, transfers, err := c.Dispatch(st, call(alice, 15), BuyTicketData(1))
		require.NoError(t, err)
		assert.Equal(t, EntrypointBuyTicket, name)
		assert.Equal(t, []data.Transfer{{Receiver: alice, Amount: 5}}, transfers)

		ctx := call(operator, 0)
		ctx.Balance = 10
		name, transfers, err = c.Dispatch(st, ctx, EndGameData())
		require.NoError(t, err)
		assert.Equal(t, EntrypointEndGame, name)
		assert.Equal(t, []data.Transfer{{Receiver: alice, Amount: 10}}, transfers)
	})

	t.Run("bare payment", func(t *testing.T) {
		st := newStorage(1, 5)
		name, _, err := c.Dispatch(st, call(alice, 100), "")
		require.ErrorIs(t, err, ErrNotAllowed)
		assert.Equal(t, EntrypointDefault, name)
	})

	t.Run("unknown function", func(t *testing.T) {
		st := newStorage(1, 5)
		name, _, err := c.Dispatch(st, call(alice, 0), "withdraw@01")
		require.ErrorIs(t, err, ErrNotAllowed)
		assert.Equal(t, EntrypointDefault, name)

		name, _, err = c.Dispatch(st, call(alice, 0), "withdraw@xx")
		require.ErrorIs(t, err, ErrNotAllowed)
		assert.Equal(t, EntrypointDefault, name)
	})

	t.Run("wrong arguments", func(t *testing.T) {
		st := newStorage(1, 5)
		_, _, err := c.Dispatch(st, call(alice, 1), "buy_ticket")
		require.ErrorIs(t, err, ErrInvalidArguments)
		_, _, err = c.Dispatch(st, call(operator, 0), "change_lottery_params@01")
		require.ErrorIs(t, err, ErrInvalidArguments)
		_, _, err = c.Dispatch(st, call(operator, 0), "end_game@01")
		require.ErrorIs(t, err, ErrInvalidArguments)
		assert.Equal(t, newStorage(1, 5), st)
	})

	t.Run("zero ticket count", func(t *testing.T) {
		st := newStorage(1, 5)
		_, _, err := c.Dispatch(st, call(alice, 1), BuyTicketData(0))
		require.ErrorIs(t, err, ErrTicketCount)
	})
}
