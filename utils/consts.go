package utils

const (
	DefaultConfigPath      = "config.json"
	DefaultStoragePath     = "lottery.db"
	DefaultAPIListen       = ":8080"
	DefaultEndGameSchedule = "@every 1m"

	// DefaultContractAddress is the ledger account holding the prize pool
	DefaultContractAddress = "erd1qqqqqqqqqqqqqpgqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqf38sk0glur"

	DefaultTicketCost = 1000000
	DefaultMaxTickets = 10

	// OperatorIndex is the wallet index of the operator when no PEM file is configured
	OperatorIndex = 0

	MaxTicketsPerBuy = 6
	RefreshInterval  = 5
)

var (
	Seedphrase string
)
