// Package host runs the lottery contract the way a chain would: every
// transaction is checked against the sender account, executed in one database
// transaction and either fully applied or reduced to a nonce bump with a
// failed receipt.
package host

import (
	"time"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/DrDelphi/LotteryBot/metrics"
	"github.com/DrDelphi/LotteryBot/store"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var log = logger.GetOrCreate("host")

var (
	ErrEmptyAddress       = errors.New("empty address")
	ErrEmptyOperator      = errors.New("operator address is required")
	ErrInvalidTicketCost  = errors.New("ticket cost exceeds the largest amount")
	ErrSenderIsContract   = errors.New("the contract can not send transactions")
	ErrInvalidNonce       = errors.New("invalid nonce")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrBalanceOverflow    = errors.New("balance overflow")
	ErrTransferFailed     = errors.New("transfer failed")
	errContractUnderfunds = errors.New("contract balance too low")
)

// Ledger is the transactional storage the host executes against
type Ledger interface {
	Update(fn func(store.Tx) error) error
	View(fn func(store.Tx) error) error
}

// Option configures a Host
type Option func(*Host)

// WithClock sets the source of block timestamps
func WithClock(clock func() time.Time) Option {
	return func(h *Host) {
		h.clock = clock
	}
}

// WithSeedSource sets the randomness used to draw winners
func WithSeedSource(seed lottery.SeedSource) Option {
	return func(h *Host) {
		h.contract = lottery.NewContract(seed)
	}
}

// WithMetrics records executed calls in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Host) {
		h.metrics = m
	}
}

// Host executes transactions against the lottery contract
type Host struct {
	ledger   Ledger
	address  string
	contract *lottery.Contract
	clock    func() time.Time
	metrics  *metrics.Metrics
}

// New - creates a Host for the contract living at contractAddress
func New(ledger Ledger, contractAddress string, opts ...Option) (*Host, error) {
	if contractAddress == "" {
		return nil, ErrEmptyAddress
	}

	h := &Host{
		ledger:   ledger,
		address:  contractAddress,
		contract: lottery.NewContract(nil),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// ContractAddress returns the address holding the contract balance
func (h *Host) ContractAddress() string {
	return h.address
}

// Originate creates the contract record unless it already exists, in which case
// the stored record is returned untouched
func (h *Host) Originate(operator string, ticketCost data.Mutez, maxTickets uint64) (*data.Storage, error) {
	if operator == "" {
		return nil, ErrEmptyOperator
	}
	if _, ok := data.MutezFromNat(uint64(ticketCost)); !ok {
		return nil, ErrInvalidTicketCost
	}

	var st *data.Storage
	err := h.ledger.Update(func(tx store.Tx) error {
		existing, err := tx.Storage()
		if err == nil {
			st = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotOriginated) {
			return err
		}

		st = &data.Storage{
			TicketCost:       ticketCost,
			TicketsAvailable: maxTickets,
			MaxTickets:       maxTickets,
			Operator:         operator,
		}
		log.Info("contract originated", "address", h.address, "operator", operator,
			"ticketCost", ticketCost, "maxTickets", maxTickets)

		return tx.PutStorage(st)
	})
	if err != nil {
		return nil, errors.Wrap(err, "originate contract")
	}

	if h.metrics != nil {
		h.metrics.SetTicketsAvailable(st.TicketsAvailable)
	}

	return st, nil
}

// Deposit credits amount to the account of address
func (h *Host) Deposit(address string, amount data.Mutez) (data.Account, error) {
	if address == "" {
		return data.Account{}, ErrEmptyAddress
	}

	var account data.Account
	err := h.ledger.Update(func(tx store.Tx) error {
		var err error
		account, err = tx.Account(address)
		if err != nil {
			return err
		}

		balance, ok := account.Balance.Add(amount)
		if !ok {
			return ErrBalanceOverflow
		}
		account.Balance = balance

		return tx.PutAccount(address, account)
	})
	if err != nil {
		return data.Account{}, err
	}

	log.Debug("deposit", "address", address, "amount", amount, "balance", account.Balance)

	return account, nil
}

// Storage returns the current contract record
func (h *Host) Storage() (*data.Storage, error) {
	var st *data.Storage
	err := h.ledger.View(func(tx store.Tx) error {
		var err error
		st, err = tx.Storage()
		return err
	})

	return st, err
}

// Account returns the ledger entry of address
func (h *Host) Account(address string) (data.Account, error) {
	var account data.Account
	err := h.ledger.View(func(tx store.Tx) error {
		var err error
		account, err = tx.Account(address)
		return err
	})

	return account, err
}

// Invoke executes tx. An error means the transaction was rejected before
// execution and nothing changed. Otherwise the receipt tells whether the call
// succeeded; a failed call only consumes the sender nonce.
func (h *Host) Invoke(tx *data.Transaction) (*data.Receipt, error) {
	if tx.Sender == "" {
		return nil, ErrEmptyAddress
	}
	if tx.Sender == h.address {
		return nil, ErrSenderIsContract
	}

	receipt := &data.Receipt{
		ID:        uuid.New().String(),
		Sender:    tx.Sender,
		Value:     tx.Value,
		Timestamp: h.clock().UTC(),
	}

	var before, after *data.Storage
	err := h.ledger.Update(func(t store.Tx) error {
		sender, err := t.Account(tx.Sender)
		if err != nil {
			return err
		}
		if tx.Nonce != sender.Nonce {
			return errors.Wrapf(ErrInvalidNonce, "expected %d, got %d", sender.Nonce, tx.Nonce)
		}
		if sender.Balance < tx.Value {
			return ErrInsufficientFunds
		}

		st, err := t.Storage()
		if err != nil {
			return err
		}
		before = st

		sender.Nonce++
		c := newCall(t)
		work, entrypoint, transfers, execErr := h.execute(c, st, sender, tx, receipt.Timestamp)
		receipt.Entrypoint = entrypoint
		if execErr != nil {
			receipt.Status = data.StatusFail
			receipt.Error = execErr.Error()
			return t.PutAccount(tx.Sender, sender)
		}

		if err = c.commit(); err != nil {
			return err
		}
		if err = t.PutStorage(work); err != nil {
			return err
		}

		receipt.Status = data.StatusSuccess
		receipt.Transfers = transfers
		receipt.Storage = work
		after = work

		return nil
	})
	if err != nil {
		return nil, err
	}

	h.observe(receipt, before, after)

	log.Info("transaction executed", "id", receipt.ID, "sender", tx.Sender, "entrypoint", receipt.Entrypoint,
		"value", tx.Value, "status", receipt.Status, "error", receipt.Error)

	return receipt, nil
}

// execute runs the call on a copy of st, staging every balance change in c
func (h *Host) execute(c *call, st *data.Storage, sender data.Account, tx *data.Transaction, now time.Time) (*data.Storage, string, []data.Transfer, error) {
	sender.Balance -= tx.Value
	c.put(tx.Sender, sender)

	contractBalance, err := c.credit(h.address, tx.Value)
	if err != nil {
		return nil, "", nil, err
	}

	ctx := lottery.Context{
		Sender:  tx.Sender,
		Amount:  tx.Value,
		Balance: contractBalance,
		Now:     now,
	}

	work := st.Clone()
	entrypoint, transfers, err := h.contract.Dispatch(work, ctx, tx.Data)
	if err != nil {
		return nil, entrypoint, nil, err
	}

	for _, tr := range transfers {
		if err = c.transfer(h.address, tr); err != nil {
			return nil, entrypoint, nil, err
		}
	}

	return work, entrypoint, transfers, nil
}

func (h *Host) observe(receipt *data.Receipt, before, after *data.Storage) {
	if h.metrics == nil {
		return
	}

	h.metrics.ObserveCall(receipt.Entrypoint, receipt.Status)
	if after == nil {
		return
	}

	h.metrics.SetTicketsAvailable(after.TicketsAvailable)
	switch receipt.Entrypoint {
	case lottery.EntrypointBuyTicket:
		h.metrics.AddTicketsSold(before.TicketsAvailable - after.TicketsAvailable)
	case lottery.EntrypointEndGame:
		for _, tr := range receipt.Transfers {
			h.metrics.AddPayout(uint64(tr.Amount))
		}
	}
}
