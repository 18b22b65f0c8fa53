package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var errInconsistentStorage = errors.New("inconsistent contract storage")

// Players holds the ticket owners of the current round, indexed by ticket number.
// Slots are filled in purchase order and the whole sequence is emptied on reset.
type Players []string

// Storage is the persistent record owned by the lottery contract
type Storage struct {
	Players          Players `json:"players"`
	TicketCost       Mutez   `json:"ticket_cost"`
	TicketsAvailable uint64  `json:"tickets_available"`
	MaxTickets       uint64  `json:"max_tickets"`
	Operator         string  `json:"operator"`
}

// Sold returns the number of tickets sold in the current round
func (s *Storage) Sold() uint64 {
	return s.MaxTickets - s.TicketsAvailable
}

// Clone returns a deep copy of the storage
func (s *Storage) Clone() *Storage {
	c := *s
	if s.Players != nil {
		c.Players = make(Players, len(s.Players))
		copy(c.Players, s.Players)
	}

	return &c
}

// Validate checks the round accounting invariants of the record
func (s *Storage) Validate() error {
	if s.TicketsAvailable > s.MaxTickets {
		return fmt.Errorf("%w: %d tickets available out of %d", errInconsistentStorage, s.TicketsAvailable, s.MaxTickets)
	}
	if uint64(len(s.Players)) != s.Sold() {
		return fmt.Errorf("%w: %d players for %d sold tickets", errInconsistentStorage, len(s.Players), s.Sold())
	}
	for i, p := range s.Players {
		if p == "" {
			return fmt.Errorf("%w: empty player slot %d", errInconsistentStorage, i)
		}
	}
	if s.TicketCost > MaxMutez {
		return fmt.Errorf("%w: ticket cost %d out of range", errInconsistentStorage, s.TicketCost)
	}
	if s.Operator == "" {
		return fmt.Errorf("%w: missing operator", errInconsistentStorage)
	}

	return nil
}

// TicketsOf returns the ticket numbers owned by address in the current round
func (s *Storage) TicketsOf(address string) []uint64 {
	tickets := make([]uint64, 0)
	for i, p := range s.Players {
		if p == address {
			tickets = append(tickets, uint64(i))
		}
	}

	return tickets
}

// MarshalJSON encodes the players as a ticket number -> address object
func (p Players) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(p))
	for i, addr := range p {
		m[strconv.Itoa(i)] = addr
	}

	return json.Marshal(m)
}

// UnmarshalJSON decodes a ticket number -> address object; the keys must be dense
func (p *Players) UnmarshalJSON(b []byte) error {
	m := make(map[string]string)
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	keys := make([]int, 0, len(m))
	for k := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || strconv.Itoa(i) != k {
			return fmt.Errorf("invalid ticket number %q", k)
		}
		keys = append(keys, i)
	}
	sort.Ints(keys)

	players := make(Players, len(keys))
	for idx, k := range keys {
		if k != idx {
			return fmt.Errorf("missing ticket number %d", idx)
		}
		players[idx] = m[strconv.Itoa(k)]
	}
	if len(players) == 0 {
		players = nil
	}
	*p = players

	return nil
}
