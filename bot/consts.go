package bot

const (
	menuGameInfo  = "ℹ️ Game Info"
	menuBalance   = "💰 Balance"
	menuMyTickets = "🎫 My Tickets"
	menuBuyTicket = "🎟 Buy Ticket"
	menuBuy2      = "2️⃣ x 🎟"
	menuBuy3      = "3️⃣ x 🎟"
	menuBuy4      = "4️⃣ x 🎟"
	menuBuy5      = "5️⃣ x 🎟"
	menuBuy6      = "6️⃣ x 🎟"
	menuMainHelp  = "📖 Help"
	menuAbout     = "©️ About"
	menuEndGame   = "🏁 End Game"
	menuOperator  = "🛠 Operator"

	callbackPem = "PEM"

	aboutMessage = "*Made with ❤️ by* [@DrDelphi](https://t.me/DrDelphi)"

	operatorOnly = "⛔️ Only the operator can do that"

	operatorHelp = "`Operator commands`\n\n" +
		"/params <ticket cost in mutez> <max tickets> - configure the next round\n" +
		"/endgame - draw the winner of a sold out round\n" +
		"/fund <address> <tez> - credit a wallet"
)

var (
	helpMessage = "`DISCLAIMER !`\n" +
		"\n" +
		"🔴 All prizes are considered friend gifts.\n" +
		"🟢 You agree to choose to join or stay in this group, you play on your own free will.\n" +
		"🔵 You also agree to release any and all admin‘s of all liability.\n" +
		"🟣 Must be 18 years old or older to play!\n" +
		"⚪️ Most importantly have fun and NO DRAMA!\n" +
		"\n" +
		"\n" +
		"`Instructions`\n" +
		"\n" +
		"This is a Lottery Telegram Bot playing against a lottery contract.\n\n" +
		"The bot will generate a wallet for you from which you can buy tickets and where you receive the prize.\n\n" +
		"Every round sells a fixed number of tickets. Once all of them are sold the operator draws one ticket and its owner receives the whole pool.\n\n" +
		"You can watch the game's progress and discuss free topics on @LotteryGroup\n\n" +
		"\n" +
		"🍀 Good luck!"
)
