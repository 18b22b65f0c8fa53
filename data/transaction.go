package data

import (
	"encoding/json"
	"time"
)

// Receipt statuses
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Transaction is a signed call of the lottery contract. Data holds the
// entrypoint and its hex encoded arguments: function@arg1@arg2
type Transaction struct {
	Nonce     uint64 `json:"nonce"`
	Value     Mutez  `json:"value"`
	Sender    string `json:"sender"`
	Data      string `json:"data"`
	Signature string `json:"signature,omitempty"`
}

// SigningBytes returns the canonical bytes covered by the signature
func (tx *Transaction) SigningBytes() []byte {
	unsigned := *tx
	unsigned.Signature = ""
	b, _ := json.Marshal(&unsigned)

	return b
}

// Account holds the ledger entry of an address
type Account struct {
	Balance Mutez  `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

// Transfer is an outgoing payment emitted by the contract
type Transfer struct {
	Receiver string `json:"receiver"`
	Amount   Mutez  `json:"amount"`
}

// Receipt describes the outcome of an executed transaction
type Receipt struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	Entrypoint string     `json:"entrypoint"`
	Sender     string     `json:"sender"`
	Value      Mutez      `json:"value"`
	Transfers  []Transfer `json:"transfers,omitempty"`
	Storage    *Storage   `json:"storage,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}
