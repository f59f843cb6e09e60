package domain

// DateLayout is the calendar date format used for trade entry and exit dates.
const DateLayout = "2006-01-02"

// Direction represents the side of a round-trip trade (Long or Short).
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// TradeStatus classifies the outcome of a trade.
type TradeStatus string

const (
	StatusWin       TradeStatus = "Win"
	StatusLoss      TradeStatus = "Loss"
	StatusBreakeven TradeStatus = "Breakeven"
	StatusOpen      TradeStatus = "Open" // Reserved for trades without both prices; never produced today
)

// UnknownSymbol is the placeholder symbol given to imported rows without a resolvable ticker.
const UnknownSymbol = "UNKNOWN"
