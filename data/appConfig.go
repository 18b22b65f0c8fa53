package data

// AppConfig holds the application configuration read from config.json (or config.toml)
type AppConfig struct {
	Bot struct {
		Token           string `json:"token" toml:"token" env:"LOTTERY_BOT_TOKEN"`
		Owner           int64  `json:"owner" toml:"owner" env:"LOTTERY_BOT_OWNER"`
		Group           string `json:"group" toml:"group" env:"LOTTERY_BOT_GROUP"`
		GroupID         int64  `json:"groupID" toml:"groupID"`
		AutoEndGame     bool   `json:"autoEndGame" toml:"autoEndGame" env:"LOTTERY_AUTO_END_GAME"`
		EndGameSchedule string `json:"endGameSchedule" toml:"endGameSchedule" env:"LOTTERY_END_GAME_SCHEDULE"`
	} `json:"bot" toml:"bot"`
	Seedphrase      string `json:"seed" toml:"seed" env:"LOTTERY_SEED"`
	ContractAddress string `json:"contractAddress" toml:"contractAddress" env:"LOTTERY_CONTRACT_ADDRESS"`
	OperatorPem     string `json:"operatorPem" toml:"operatorPem" env:"LOTTERY_OPERATOR_PEM"`
	Contract        struct {
		TicketCost uint64 `json:"ticketCost" toml:"ticketCost"`
		MaxTickets uint64 `json:"maxTickets" toml:"maxTickets"`
	} `json:"contract" toml:"contract"`
	Storage struct {
		Path string `json:"path" toml:"path" env:"LOTTERY_STORAGE_PATH"`
	} `json:"storage" toml:"storage"`
	API struct {
		Listen string `json:"listen" toml:"listen" env:"LOTTERY_API_LISTEN"`
	} `json:"api" toml:"api"`
	Network struct {
		ExplorerTransaction string `json:"explorerTransaction" toml:"explorerTransaction"`
		ExplorerAccount     string `json:"explorerAccount" toml:"explorerAccount"`
	} `json:"network" toml:"network"`
}
