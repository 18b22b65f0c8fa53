package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soldOut() *Storage {
	return &Storage{
		Players:          Players{"alice", "bob", "alice"},
		TicketCost:       Tez(1),
		TicketsAvailable: 0,
		MaxTickets:       3,
		Operator:         "operator",
	}
}

func TestPlayers_JSON(t *testing.T) {
	b, err := json.Marshal(soldOut())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"players":{"0":"alice","1":"bob","2":"alice"}`)

	st := &Storage{}
	require.NoError(t, json.Unmarshal(b, st))
	assert.Equal(t, soldOut(), st)

	var players Players
	require.NoError(t, json.Unmarshal([]byte(`{}`), &players))
	assert.Nil(t, players)
}

func TestPlayers_UnmarshalRejectsSparseKeys(t *testing.T) {
	for name, raw := range map[string]string{
		"gap":         `{"0":"a","2":"b"}`,
		"no zero":     `{"1":"a"}`,
		"negative":    `{"-1":"a","0":"b"}`,
		"not numeric": `{"0":"a","one":"b"}`,
		"leading 0":   `{"0":"a","01":"b"}`,
		"plus sign":   `{"+0":"a"}`,
		"not object":  `["a","b"]`,
	} {
		t.Run(name, func(t *testing.T) {
			var players Players
			require.Error(t, json.Unmarshal([]byte(raw), &players))
			assert.Nil(t, players)
		})
	}
}

func TestStorage_Clone(t *testing.T) {
	st := soldOut()
	c := st.Clone()
	require.Equal(t, st, c)

	c.Players[1] = "john"
	c.Players = append(c.Players, "charles")
	c.TicketsAvailable = 7
	assert.Equal(t, Players{"alice", "bob", "alice"}, st.Players)
	assert.Equal(t, uint64(0), st.TicketsAvailable)

	empty := &Storage{Operator: "operator"}
	assert.Nil(t, empty.Clone().Players)
}

func TestStorage_Validate(t *testing.T) {
	require.NoError(t, soldOut().Validate())

	st := soldOut()
	st.Players, st.TicketsAvailable = nil, st.MaxTickets
	require.NoError(t, st.Validate())

	for name, mutate := range map[string]func(st *Storage){
		"available over max": func(st *Storage) { st.TicketsAvailable = 4 },
		"players mismatch":   func(st *Storage) { st.Players = st.Players[:2] },
		"empty slot":         func(st *Storage) { st.Players[1] = "" },
		"cost out of range":  func(st *Storage) { st.TicketCost = MaxMutez + 1 },
		"no operator":        func(st *Storage) { st.Operator = "" },
	} {
		t.Run(name, func(t *testing.T) {
			st := soldOut()
			mutate(st)
			require.ErrorIs(t, st.Validate(), errInconsistentStorage)
		})
	}
}

func TestStorage_TicketsOf(t *testing.T) {
	st := soldOut()
	assert.Equal(t, []uint64{0, 2}, st.TicketsOf("alice"))
	assert.Equal(t, []uint64{1}, st.TicketsOf("bob"))
	assert.Empty(t, st.TicketsOf("john"))
	assert.Equal(t, uint64(3), st.Sold())
}
