package data

// AccountResponse is the API view of a ledger account
type AccountResponse struct {
	Address string `json:"address"`
	Balance Mutez  `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

// ContractResponse is the API view of the lottery contract
type ContractResponse struct {
	Address          string  `json:"address"`
	Operator         string  `json:"operator"`
	Balance          Mutez   `json:"balance"`
	TicketCost       Mutez   `json:"ticketCost"`
	TicketsAvailable uint64  `json:"ticketsAvailable"`
	MaxTickets       uint64  `json:"maxTickets"`
	TicketsSold      uint64  `json:"ticketsSold"`
	Players          Players `json:"players"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
