package data

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is an open/high/low/close quadruple over some period.
type Bar struct {
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
}

// IsZero reports whether no field of the bar has been set.
func (b Bar) IsZero() bool {
	return b.Open.IsZero() && b.High.IsZero() && b.Low.IsZero() && b.Close.IsZero()
}

// TradeBar aggregates trade prints over a period.
type TradeBar struct {
	BarSymbol string
	BarTime   time.Time
	Period    time.Duration
	Bar
	Volume decimal.Decimal
}

// NewTradeBar returns a trade bar starting at t and spanning period.
func NewTradeBar(symbol string, t time.Time, period time.Duration, open, high, low, close, volume decimal.Decimal) *TradeBar {
	return &TradeBar{
		BarSymbol: symbol,
		BarTime:   t,
		Period:    period,
		Bar:       Bar{Open: open, High: high, Low: low, Close: close},
		Volume:    volume,
	}
}

func (b *TradeBar) Symbol() string         { return b.BarSymbol }
func (b *TradeBar) Time() time.Time        { return b.BarTime }
func (b *TradeBar) EndTime() time.Time     { return b.BarTime.Add(b.Period) }
func (b *TradeBar) Value() decimal.Decimal { return b.Close }

// QuoteBar aggregates bid and ask quotes over a period. Either side may be
// zero when the feed only published one side during the period.
type QuoteBar struct {
	BarSymbol   string
	BarTime     time.Time
	Period      time.Duration
	Bid         Bar
	Ask         Bar
	LastBidSize decimal.Decimal
	LastAskSize decimal.Decimal
}

// NewQuoteBar returns a quote bar starting at t and spanning period.
func NewQuoteBar(symbol string, t time.Time, period time.Duration, bid, ask Bar) *QuoteBar {
	return &QuoteBar{
		BarSymbol: symbol,
		BarTime:   t,
		Period:    period,
		Bid:       bid,
		Ask:       ask,
	}
}

func (b *QuoteBar) Symbol() string     { return b.BarSymbol }
func (b *QuoteBar) Time() time.Time    { return b.BarTime }
func (b *QuoteBar) EndTime() time.Time { return b.BarTime.Add(b.Period) }

// Value returns the bid/ask close midpoint, falling back to whichever side
// is present.
func (b *QuoteBar) Value() decimal.Decimal { return b.midpoint(b.Bid.Close, b.Ask.Close) }

// Open returns the bid/ask open midpoint.
func (b *QuoteBar) Open() decimal.Decimal { return b.midpoint(b.Bid.Open, b.Ask.Open) }

// High returns the bid/ask high midpoint.
func (b *QuoteBar) High() decimal.Decimal { return b.midpoint(b.Bid.High, b.Ask.High) }

// Low returns the bid/ask low midpoint.
func (b *QuoteBar) Low() decimal.Decimal { return b.midpoint(b.Bid.Low, b.Ask.Low) }

// Close returns the bid/ask close midpoint.
func (b *QuoteBar) Close() decimal.Decimal { return b.midpoint(b.Bid.Close, b.Ask.Close) }

func (b *QuoteBar) midpoint(bid, ask decimal.Decimal) decimal.Decimal {
	switch {
	case bid.IsPositive() && ask.IsPositive():
		return bid.Add(ask).Div(decimal.NewFromInt(2))
	case bid.IsPositive():
		return bid
	default:
		return ask
	}
}
