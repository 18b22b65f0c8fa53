package network

import (
	"encoding/hex"
	"sync"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/ElrondNetwork/elrond-go-core/core"
	"github.com/ElrondNetwork/elrond-go-core/core/pubkeyConverter"
	crypto "github.com/ElrondNetwork/elrond-go-crypto"
	"github.com/ElrondNetwork/elrond-go-crypto/signing"
	"github.com/ElrondNetwork/elrond-go-crypto/signing/ed25519"
	"github.com/ElrondNetwork/elrond-go-crypto/signing/ed25519/singlesig"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/pkg/errors"
)

var log = logger.GetOrCreate("network")

// Chain is the ledger running the lottery contract
type Chain interface {
	ContractAddress() string
	Invoke(tx *data.Transaction) (*data.Receipt, error)
	Storage() (*data.Storage, error)
	Account(address string) (data.Account, error)
	Deposit(address string, amount data.Mutez) (data.Account, error)
}

// NetworkManager - holds the required fields of a network manager
type NetworkManager struct {
	chain  Chain
	conv   core.PubkeyConverter
	keyGen crypto.KeyGenerator
	signer crypto.SingleSigner

	// guards nonce assignment of locally signed transactions
	sendMut sync.Mutex
}

// NewNetworkManager - creates a new NetworkManager object
func NewNetworkManager(chain Chain) (*NetworkManager, error) {
	conv, err := pubkeyConverter.NewBech32PubkeyConverter(32, log)
	if err != nil {
		log.Error("can not create converter", "error", err)
		return nil, err
	}

	if _, err = conv.Decode(chain.ContractAddress()); err != nil {
		log.Error("invalid contract address", "address", chain.ContractAddress(), "error", err)
		return nil, errors.Wrap(ErrInvalidAddress, chain.ContractAddress())
	}

	return &NetworkManager{
		chain:  chain,
		conv:   conv,
		keyGen: signing.NewKeyGenerator(ed25519.NewEd25519()),
		signer: &singlesig.Ed25519Signer{},
	}, nil
}

// ContractAddress returns the bech32 address of the lottery contract
func (nm *NetworkManager) ContractAddress() string {
	return nm.chain.ContractAddress()
}

// ValidateAddress checks that address is a bech32 encoded public key
func (nm *NetworkManager) ValidateAddress(address string) error {
	if _, err := nm.conv.Decode(address); err != nil {
		return errors.Wrap(ErrInvalidAddress, address)
	}

	return nil
}

// AddressFromPrivateKey - returns the bech32 address owning privateKey
func (nm *NetworkManager) AddressFromPrivateKey(privateKey []byte) (string, error) {
	if len(privateKey) == 0 {
		return "", errEmptyPrivateKey
	}

	sk, err := nm.keyGen.PrivateKeyFromByteArray(privateKey)
	if err != nil {
		return "", err
	}

	pkBytes, err := sk.GeneratePublic().ToByteArray()
	if err != nil {
		return "", err
	}

	return nm.conv.Encode(pkBytes), nil
}

// Sign - signs tx with privateKey and stores the hex encoded signature in it
func (nm *NetworkManager) Sign(privateKey []byte, tx *data.Transaction) error {
	sk, err := nm.keyGen.PrivateKeyFromByteArray(privateKey)
	if err != nil {
		return err
	}

	sig, err := nm.signer.Sign(sk, tx.SigningBytes())
	if err != nil {
		return err
	}
	tx.Signature = hex.EncodeToString(sig)

	return nil
}

func (nm *NetworkManager) verify(tx *data.Transaction) error {
	pkBytes, err := nm.conv.Decode(tx.Sender)
	if err != nil {
		return errors.Wrap(ErrInvalidAddress, tx.Sender)
	}

	if tx.Signature == "" {
		return ErrMissingSignature
	}

	sig, err := hex.DecodeString(tx.Signature)
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}

	pk, err := nm.keyGen.PublicKeyFromByteArray(pkBytes)
	if err != nil {
		return errors.Wrap(ErrInvalidAddress, err.Error())
	}

	if err = nm.signer.Verify(pk, tx.SigningBytes(), sig); err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}

	return nil
}

// SubmitTransaction - verifies the signature of tx and executes it
func (nm *NetworkManager) SubmitTransaction(tx *data.Transaction) (*data.Receipt, error) {
	if tx.Value > data.MaxMutez {
		return nil, ErrInvalidAmount
	}

	if err := nm.verify(tx); err != nil {
		log.Debug("rejected transaction", "sender", tx.Sender, "error", err)
		return nil, err
	}

	return nm.chain.Invoke(tx)
}

// SendTransaction - signs and submits a contract call from the owner of privateKey
func (nm *NetworkManager) SendTransaction(privateKey []byte, value data.Mutez, function string) (*data.Receipt, error) {
	sender, err := nm.AddressFromPrivateKey(privateKey)
	if err != nil {
		log.Error("unable to load the address from the private key", "error", err)
		return nil, err
	}

	nm.sendMut.Lock()
	defer nm.sendMut.Unlock()

	nonce, err := nm.GetAddressNonce(sender)
	if err != nil {
		return nil, err
	}

	tx := &data.Transaction{
		Nonce:  nonce,
		Value:  value,
		Sender: sender,
		Data:   function,
	}
	if err = nm.Sign(privateKey, tx); err != nil {
		log.Error("unable to sign transaction", "error", err)
		return nil, err
	}

	return nm.SubmitTransaction(tx)
}

// Deposit - credits amount to address
func (nm *NetworkManager) Deposit(address string, amount data.Mutez) (data.Account, error) {
	if err := nm.ValidateAddress(address); err != nil {
		return data.Account{}, err
	}

	return nm.chain.Deposit(address, amount)
}

func (nm *NetworkManager) getAccount(address string) (data.Account, error) {
	if err := nm.ValidateAddress(address); err != nil {
		log.Error("getAccount - Decode", "address", address, "error", err)
		return data.Account{}, err
	}

	return nm.chain.Account(address)
}

func (nm *NetworkManager) GetBalance(address string) (data.Mutez, error) {
	account, err := nm.getAccount(address)

	return account.Balance, err
}

func (nm *NetworkManager) GetAddressNonce(address string) (uint64, error) {
	account, err := nm.getAccount(address)

	return account.Nonce, err
}

func (nm *NetworkManager) GetOperator() (string, error) {
	st, err := nm.chain.Storage()
	if err != nil {
		return "", err
	}

	return st.Operator, nil
}

// GetPlayerTickets - returns the ticket numbers owned by player in the current round
func (nm *NetworkManager) GetPlayerTickets(player string) ([]uint64, error) {
	if err := nm.ValidateAddress(player); err != nil {
		return nil, err
	}

	st, err := nm.chain.Storage()
	if err != nil {
		return nil, err
	}

	return st.TicketsOf(player), nil
}

func (nm *NetworkManager) GetContractInfo() (*data.ContractInfo, error) {
	st, err := nm.chain.Storage()
	if err != nil {
		return nil, err
	}

	account, err := nm.chain.Account(nm.chain.ContractAddress())
	if err != nil {
		return nil, err
	}

	return &data.ContractInfo{
		Address:          nm.chain.ContractAddress(),
		Operator:         st.Operator,
		Balance:          account.Balance,
		TicketCost:       st.TicketCost,
		TicketsAvailable: st.TicketsAvailable,
		MaxTickets:       st.MaxTickets,
		TicketsSold:      st.Sold(),
		Players:          st.Players,
	}, nil
}
