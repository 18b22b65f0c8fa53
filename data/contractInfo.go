package data

// ContractInfo is the snapshot of the lottery contract shown to players
type ContractInfo struct {
	Address          string
	Operator         string
	Balance          Mutez
	TicketCost       Mutez
	TicketsAvailable uint64
	MaxTickets       uint64
	TicketsSold      uint64
	Players          Players
}

// Open reports whether the current round still sells tickets
func (ci *ContractInfo) Open() bool {
	return ci.TicketsAvailable > 0
}
