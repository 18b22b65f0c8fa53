package data

// User is a Telegram player together with the wallet derived for them
type User struct {
	ID     int64
	Wallet string
	// ticket messages of the current round, in purchase order
	Tickets []*TelegramTicket
}

// AddTicket remembers the message showing ticket number
func (u *User) AddTicket(number uint64, messageID int) {
	u.Tickets = append(u.Tickets, &TelegramTicket{
		Number:    number,
		MessageID: messageID,
	})
}

// TakeTickets forgets the ticket messages of the user and returns them
func (u *User) TakeTickets() []*TelegramTicket {
	old := u.Tickets
	u.Tickets = make([]*TelegramTicket, 0)

	return old
}

type Telegram struct {
	ID        int64
	UserName  string
	FirstName string
	LastName  string
}

// TelegramTicket links a ticket of the current round to the message showing it
type TelegramTicket struct {
	Number    uint64
	MessageID int
}
