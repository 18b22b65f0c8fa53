// Package lottery implements the lottery contract: ticket sales against a fixed
// price, operator controlled round parameters and a single winner taking the
// whole pooled balance at the end of each round.
//
// Every entrypoint either fails without touching the storage or applies all of
// its effects and returns the outgoing transfers the host has to execute.
package lottery

import (
	"time"

	"github.com/DrDelphi/LotteryBot/data"
	logger "github.com/ElrondNetwork/elrond-go-logger"
)

var log = logger.GetOrCreate("lottery")

// Context describes the call being executed
type Context struct {
	Sender string
	// Amount attached to the call
	Amount data.Mutez
	// Balance of the contract, Amount included
	Balance data.Mutez
	// Now is the timestamp of the block including the call
	Now time.Time
}

// Contract holds the entrypoints of the lottery
type Contract struct {
	seed SeedSource
}

// NewContract - creates a Contract drawing winners with the provided seed source.
// A nil source falls back to the block timestamp.
func NewContract(seed SeedSource) *Contract {
	if seed == nil {
		seed = TimestampSeed{}
	}

	return &Contract{seed: seed}
}

// BuyTicket assigns ticketCount consecutive tickets to the sender and refunds
// whatever was paid above the tickets cost
func (c *Contract) BuyTicket(st *data.Storage, ctx Context, ticketCount uint64) ([]data.Transfer, error) {
	if ticketCount == 0 {
		return nil, ErrTicketCount
	}
	if ticketCount > st.TicketsAvailable {
		return nil, ErrNoTickets
	}
	totalCost, ok := st.TicketCost.MulNat(ticketCount)
	if !ok {
		return nil, ErrMutezOverflow
	}
	if ctx.Amount < totalCost {
		return nil, ErrInvalidAmount
	}

	first := st.Sold()
	for i := uint64(0); i < ticketCount; i++ {
		st.Players = append(st.Players, ctx.Sender)
	}
	st.TicketsAvailable -= ticketCount

	log.Debug("tickets bought", "player", ctx.Sender, "first", first, "count", ticketCount, "available", st.TicketsAvailable)

	extra, _ := ctx.Amount.Sub(totalCost)
	if extra == 0 {
		return nil, nil
	}

	return []data.Transfer{{Receiver: ctx.Sender, Amount: extra}}, nil
}

// ChangeLotteryParams sets the ticket cost (in mutez) and the round capacity.
// Only the operator may call it and only before the first ticket of a round is sold.
func (c *Contract) ChangeLotteryParams(st *data.Storage, ctx Context, ticketCost uint64, newMaxTickets uint64) ([]data.Transfer, error) {
	if ctx.Sender != st.Operator {
		return nil, ErrNotAuthorized
	}
	if st.MaxTickets != st.TicketsAvailable {
		return nil, ErrAlreadyRunning
	}
	cost, ok := data.MutezFromNat(ticketCost)
	if !ok {
		return nil, ErrMutezOverflow
	}

	st.MaxTickets = newMaxTickets
	st.TicketsAvailable = newMaxTickets
	st.TicketCost = cost
	st.Players = nil

	log.Debug("lottery params changed", "ticketCost", cost, "maxTickets", newMaxTickets)

	return nil, nil
}

// EndGame pays the whole contract balance to the owner of the drawn ticket and
// opens a new round with the same parameters
func (c *Contract) EndGame(st *data.Storage, ctx Context) ([]data.Transfer, error) {
	if ctx.Sender != st.Operator {
		return nil, ErrNotAuthorised
	}
	if st.TicketsAvailable != 0 {
		return nil, ErrGameNotEnded
	}

	winnerID, err := winnerIndex(c.seed.Seed(ctx.Now), st.MaxTickets)
	if err != nil {
		return nil, err
	}
	if winnerID >= uint64(len(st.Players)) || st.Players[winnerID] == "" {
		return nil, ErrEmptySlot
	}
	winner := st.Players[winnerID]

	var transfers []data.Transfer
	if ctx.Balance > 0 {
		transfers = []data.Transfer{{Receiver: winner, Amount: ctx.Balance}}
	}

	st.Players = nil
	st.TicketsAvailable = st.MaxTickets

	log.Debug("game ended", "winner", winner, "ticket", winnerID, "prize", ctx.Balance)

	return transfers, nil
}

// Default rejects every call that does not name an entrypoint, bare payments included
func (c *Contract) Default(*data.Storage, Context) ([]data.Transfer, error) {
	return nil, ErrNotAllowed
}
