package host

import (
	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/store"
	"github.com/pkg/errors"
)

// call stages the account changes of one execution until commit
type call struct {
	tx     store.Tx
	staged map[string]data.Account
	order  []string
}

func newCall(tx store.Tx) *call {
	return &call{
		tx:     tx,
		staged: make(map[string]data.Account),
	}
}

func (c *call) get(address string) (data.Account, error) {
	if account, ok := c.staged[address]; ok {
		return account, nil
	}

	return c.tx.Account(address)
}

func (c *call) put(address string, account data.Account) {
	if _, ok := c.staged[address]; !ok {
		c.order = append(c.order, address)
	}
	c.staged[address] = account
}

// credit adds amount to address and returns the new balance
func (c *call) credit(address string, amount data.Mutez) (data.Mutez, error) {
	account, err := c.get(address)
	if err != nil {
		return 0, err
	}

	balance, ok := account.Balance.Add(amount)
	if !ok {
		return 0, errors.Wrap(ErrBalanceOverflow, address)
	}
	account.Balance = balance
	c.put(address, account)

	return balance, nil
}

func (c *call) transfer(from string, tr data.Transfer) error {
	if tr.Receiver == "" {
		return errors.Wrap(ErrTransferFailed, "empty receiver")
	}

	source, err := c.get(from)
	if err != nil {
		return err
	}

	balance, ok := source.Balance.Sub(tr.Amount)
	if !ok {
		return errors.Wrap(ErrTransferFailed, errContractUnderfunds.Error())
	}
	source.Balance = balance
	c.put(from, source)

	if _, err = c.credit(tr.Receiver, tr.Amount); err != nil {
		return errors.Wrapf(ErrTransferFailed, "to %s: %v", tr.Receiver, err)
	}

	return nil
}

func (c *call) commit() error {
	for _, address := range c.order {
		if err := c.tx.PutAccount(address, c.staged[address]); err != nil {
			return err
		}
	}

	return nil
}
