// Package store persists the contract record and the accounts ledger in a
// bbolt database. A read-write transaction covers one whole contract call, so a
// call that fails leaves nothing behind.
package store

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/DrDelphi/LotteryBot/data"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

var log = logger.GetOrCreate("store")

const (
	contractBucket = "contract"
	accountsBucket = "accounts"
	storageKey     = "storage"
)

var (
	// ErrNotOriginated is returned when the contract record does not exist yet
	ErrNotOriginated = errors.New("contract not originated")
	errEmptyPath     = errors.New("storage path is required")
	errMissingBucket = errors.New("bucket is missing")
)

// Tx gives access to the records inside one database transaction
type Tx interface {
	Storage() (*data.Storage, error)
	PutStorage(st *data.Storage) error
	Account(address string) (data.Account, error)
	PutAccount(address string, account data.Account) error
}

// Store provides a bbolt backed ledger
type Store struct {
	db *bbolt.DB
}

// Open - opens (or creates) the database at the provided path
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errEmptyPath
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open storage db")
	}

	s := &Store{db: db}
	if err = s.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug("storage opened", "path", path)

	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Update runs fn in a read-write transaction, committed only if fn returns nil
func (s *Store) Update(fn func(Tx) error) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

// View runs fn in a read-only transaction
func (s *Store) View(fn func(Tx) error) error {
	return s.db.View(func(btx *bbolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{contractBucket, accountsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return errors.Wrapf(err, "create %s bucket", name)
			}
		}
		return nil
	})
}

type boltTx struct {
	tx *bbolt.Tx
}

func (t *boltTx) bucket(name string) (*bbolt.Bucket, error) {
	b := t.tx.Bucket([]byte(name))
	if b == nil {
		return nil, errors.Wrap(errMissingBucket, name)
	}

	return b, nil
}

func (t *boltTx) Storage() (*data.Storage, error) {
	b, err := t.bucket(contractBucket)
	if err != nil {
		return nil, err
	}

	payload := b.Get([]byte(storageKey))
	if payload == nil {
		return nil, ErrNotOriginated
	}

	st := &data.Storage{}
	if err = json.Unmarshal(payload, st); err != nil {
		return nil, errors.Wrap(err, "unmarshal contract storage")
	}
	if err = st.Validate(); err != nil {
		return nil, err
	}

	return st, nil
}

func (t *boltTx) PutStorage(st *data.Storage) error {
	if err := st.Validate(); err != nil {
		return err
	}

	b, err := t.bucket(contractBucket)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "marshal contract storage")
	}

	return b.Put([]byte(storageKey), payload)
}

func (t *boltTx) Account(address string) (data.Account, error) {
	b, err := t.bucket(accountsBucket)
	if err != nil {
		return data.Account{}, err
	}

	payload := b.Get([]byte(address))
	if payload == nil {
		return data.Account{}, nil
	}

	account := data.Account{}
	if err = json.Unmarshal(payload, &account); err != nil {
		return data.Account{}, errors.Wrapf(err, "unmarshal account %s", address)
	}

	return account, nil
}

func (t *boltTx) PutAccount(address string, account data.Account) error {
	b, err := t.bucket(accountsBucket)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(account)
	if err != nil {
		return errors.Wrapf(err, "marshal account %s", address)
	}

	return b.Put([]byte(address), payload)
}
