// Package api exposes the lottery ledger over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/host"
	"github.com/DrDelphi/LotteryBot/network"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

var log = logger.GetOrCreate("api")

const (
	maxBodySize     = 1 << 16
	shutdownTimeout = 5 * time.Second
)

// Network is the part of the network manager served over HTTP
type Network interface {
	GetContractInfo() (*data.ContractInfo, error)
	GetBalance(address string) (data.Mutez, error)
	GetAddressNonce(address string) (uint64, error)
	SubmitTransaction(tx *data.Transaction) (*data.Receipt, error)
}

// Server - holds the HTTP router of the lottery API
type Server struct {
	nm      Network
	metrics http.Handler
	router  *mux.Router
}

// NewServer - creates the API routes. metrics may be nil.
func NewServer(nm Network, metrics http.Handler) *Server {
	s := &Server{
		nm:      nm,
		metrics: metrics,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/contract", s.handleContract).Methods(http.MethodGet)
	s.router.HandleFunc("/accounts/{address}", s.handleAccount).Methods(http.MethodGet)
	s.router.HandleFunc("/transactions", s.handleSubmit).Methods(http.MethodPost)
	if metrics != nil {
		s.router.Handle("/metrics", metrics).Methods(http.MethodGet)
	}

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe - serves the API on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("api shutdown", "error", err)
		}
	}()

	log.Info("api listening", "address", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	info, err := s.nm.GetContractInfo()
	if err != nil {
		log.Error("handleContract", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load contract")
		return
	}

	writeJSON(w, http.StatusOK, &data.ContractResponse{
		Address:          info.Address,
		Operator:         info.Operator,
		Balance:          info.Balance,
		TicketCost:       info.TicketCost,
		TicketsAvailable: info.TicketsAvailable,
		MaxTickets:       info.MaxTickets,
		TicketsSold:      info.TicketsSold,
		Players:          info.Players,
	})
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	balance, err := s.nm.GetBalance(address)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	nonce, err := s.nm.GetAddressNonce(address)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &data.AccountResponse{
		Address: address,
		Balance: balance,
		Nonce:   nonce,
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	tx := &data.Transaction{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(tx); err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction")
		return
	}

	receipt, err := s.nm.SubmitTransaction(tx)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			log.Error("handleSubmit", "sender", tx.Sender, "error", err)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

// statusOf maps rejected input to 400, everything else to 500
func statusOf(err error) int {
	for _, target := range []error{
		network.ErrInvalidAddress,
		network.ErrMissingSignature,
		network.ErrInvalidSignature,
		network.ErrInvalidAmount,
		host.ErrEmptyAddress,
		host.ErrSenderIsContract,
		host.ErrInvalidNonce,
		host.ErrInsufficientFunds,
	} {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("writeJSON", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, &data.ErrorResponse{Error: msg})
}
