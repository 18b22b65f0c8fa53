package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DrDelphi/LotteryBot/data"
	"github.com/DrDelphi/LotteryBot/host"
	"github.com/DrDelphi/LotteryBot/metrics"
	"github.com/DrDelphi/LotteryBot/network"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNetwork struct {
	info      *data.ContractInfo
	accounts  map[string]data.Account
	submitted []*data.Transaction
	submitErr error
	err       error
}

func (f *fakeNetwork) GetContractInfo() (*data.ContractInfo, error) {
	return f.info, f.err
}

func (f *fakeNetwork) GetBalance(address string) (data.Mutez, error) {
	account, ok := f.accounts[address]
	if !ok {
		return 0, errors.Wrap(network.ErrInvalidAddress, address)
	}

	return account.Balance, nil
}

func (f *fakeNetwork) GetAddressNonce(address string) (uint64, error) {
	return f.accounts[address].Nonce, nil
}

func (f *fakeNetwork) SubmitTransaction(tx *data.Transaction) (*data.Receipt, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, tx)

	return &data.Receipt{ID: "r1", Status: data.StatusFail, Error: "NOT ALLOWED", Entrypoint: "default", Sender: tx.Sender}, nil
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandleContract(t *testing.T) {
	nm := &fakeNetwork{info: &data.ContractInfo{
		Address:          "erd1contract",
		Operator:         "erd1operator",
		Balance:          1500000,
		TicketCost:       500000,
		TicketsAvailable: 7,
		MaxTickets:       10,
		TicketsSold:      3,
		Players:          data.Players{"erd1a", "erd1b", "erd1b"},
	}}
	s := NewServer(nm, nil)

	rec := serve(s, http.MethodGet, "/contract", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := data.ContractResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, data.Mutez(500000), resp.TicketCost)
	assert.Equal(t, uint64(3), resp.TicketsSold)
	assert.Equal(t, data.Players{"erd1a", "erd1b", "erd1b"}, resp.Players)
	assert.Contains(t, rec.Body.String(), `"players":{"0":"erd1a","1":"erd1b","2":"erd1b"}`)

	nm.err = errors.New("bolt closed")
	rec = serve(s, http.MethodGet, "/contract", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleAccount(t *testing.T) {
	nm := &fakeNetwork{accounts: map[string]data.Account{"erd1alice": {Balance: 42, Nonce: 3}}}
	s := NewServer(nm, nil)

	rec := serve(s, http.MethodGet, "/accounts/erd1alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := data.AccountResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, data.AccountResponse{Address: "erd1alice", Balance: 42, Nonce: 3}, resp)

	rec = serve(s, http.MethodGet, "/accounts/bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(s, http.MethodPost, "/accounts/erd1alice", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleSubmit(t *testing.T) {
	nm := &fakeNetwork{}
	s := NewServer(nm, nil)

	rec := serve(s, http.MethodPost, "/transactions", `{"nonce":0,"value":5,"sender":"erd1alice","data":"","signature":"ab"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	receipt := data.Receipt{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, data.StatusFail, receipt.Status)
	assert.Equal(t, "NOT ALLOWED", receipt.Error)
	require.Len(t, nm.submitted, 1)
	assert.Equal(t, data.Mutez(5), nm.submitted[0].Value)

	rec = serve(s, http.MethodPost, "/transactions", `{"nonce":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = serve(s, http.MethodPost, "/transactions", `{"gas":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for err, status := range map[error]int{
		network.ErrInvalidSignature:                     http.StatusBadRequest,
		errors.Wrap(host.ErrInvalidNonce, "expected 1"): http.StatusBadRequest,
		host.ErrInsufficientFunds:                       http.StatusBadRequest,
		errors.New("disk full"):                         http.StatusInternalServerError,
	} {
		nm.submitErr = err
		rec = serve(s, http.MethodPost, "/transactions", `{"sender":"erd1alice"}`)
		assert.Equal(t, status, rec.Code, err.Error())
	}
}

func TestMetricsRoute(t *testing.T) {
	m := metrics.New()
	m.ObserveCall("buy_ticket", "success")

	rec := serve(NewServer(&fakeNetwork{}, m.Handler()), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lottery_calls_total{entrypoint="buy_ticket",status="success"} 1`)

	rec = serve(NewServer(&fakeNetwork{}, nil), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServer(&fakeNetwork{}, nil).ListenAndServe(ctx, addr)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/accounts/x")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
