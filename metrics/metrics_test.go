package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Collect(t *testing.T) {
	m := New()
	m.ObserveCall("buy_ticket", "success")
	m.ObserveCall("buy_ticket", "success")
	m.ObserveCall("end_game", "fail")
	m.AddTicketsSold(3)
	m.AddPayout(1500000)
	m.SetTicketsAvailable(7)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.calls.WithLabelValues("buy_ticket", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.calls.WithLabelValues("end_game", "fail")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ticketsSold))
	assert.Equal(t, float64(1500000), testutil.ToFloat64(m.payouts))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.ticketsAvailable))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.AddTicketsSold(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "lottery_tickets_sold_total 1"))
}
