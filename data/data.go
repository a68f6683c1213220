// Package data holds the market data types delivered to a security's
// price cache: trade/quote ticks and trade/quote bars.
package data

import (
	"time"

	"github.com/shopspring/decimal"
)

// Point is a single piece of market data for one instrument.
// EndTime is the moment the data becomes known to the simulation;
// for ticks it equals Time, for bars it is Time plus the bar period.
type Point interface {
	Symbol() string
	Time() time.Time
	EndTime() time.Time
	Value() decimal.Decimal
}

// TickType distinguishes trade prints from quote updates.
type TickType int

const (
	TickTypeTrade TickType = iota
	TickTypeQuote
)

// Tick is a single trade print or quote update.
type Tick struct {
	TickSymbol string
	TickTime   time.Time
	Type       TickType
	LastPrice  decimal.Decimal
	Quantity   decimal.Decimal
	BidPrice   decimal.Decimal
	AskPrice   decimal.Decimal
	BidSize    decimal.Decimal
	AskSize    decimal.Decimal
}

// NewTradeTick returns a tick for a trade print.
func NewTradeTick(symbol string, t time.Time, price, quantity decimal.Decimal) *Tick {
	return &Tick{
		TickSymbol: symbol,
		TickTime:   t,
		Type:       TickTypeTrade,
		LastPrice:  price,
		Quantity:   quantity,
	}
}

// NewQuoteTick returns a quote tick. The tick value is the bid/ask midpoint
// when both sides are present, otherwise whichever side is set.
func NewQuoteTick(symbol string, t time.Time, bid, ask decimal.Decimal) *Tick {
	tick := &Tick{
		TickSymbol: symbol,
		TickTime:   t,
		Type:       TickTypeQuote,
		BidPrice:   bid,
		AskPrice:   ask,
	}
	switch {
	case bid.IsPositive() && ask.IsPositive():
		tick.LastPrice = bid.Add(ask).Div(decimal.NewFromInt(2))
	case bid.IsPositive():
		tick.LastPrice = bid
	default:
		tick.LastPrice = ask
	}
	return tick
}

func (t *Tick) Symbol() string         { return t.TickSymbol }
func (t *Tick) Time() time.Time        { return t.TickTime }
func (t *Tick) EndTime() time.Time     { return t.TickTime }
func (t *Tick) Value() decimal.Decimal { return t.LastPrice }

// IsQuote reports whether the tick carries bid/ask data.
func (t *Tick) IsQuote() bool { return t.Type == TickTypeQuote }
