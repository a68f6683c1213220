package fills

import (
	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
)

// prices is the fill model's working view of the current bar: best-available
// data wins (tick over quote bar over trade bar over the raw cache), and any
// unset OHLC component falls back to the current price so a zero default is
// never mistaken for a real price.
type prices struct {
	current decimal.Decimal
	open    decimal.Decimal
	high    decimal.Decimal
	low     decimal.Decimal
	close   decimal.Decimal
}

func pricesFor(security *securities.Security, direction orders.OrderDirection) prices {
	cache := security.Cache
	p := prices{
		current: cache.Price,
		open:    cache.Open,
		high:    cache.High,
		low:     cache.Low,
		close:   cache.Close,
	}

	tick, hasTick := securities.DataOfType[*data.Tick](cache)
	quoteBar, hasQuote := securities.DataOfType[*data.QuoteBar](cache)
	tradeBar, hasTrade := securities.DataOfType[*data.TradeBar](cache)

	// Most recent end time wins; on a tie the more specific source does.
	switch {
	case hasTick && (!hasQuote || !tick.EndTime().Before(quoteBar.EndTime())) &&
		(!hasTrade || !tick.EndTime().Before(tradeBar.EndTime())):
		if tick.LastPrice.IsPositive() {
			p.current = tick.LastPrice
		}
	case hasQuote && (!hasTrade || !quoteBar.EndTime().Before(tradeBar.EndTime())):
		bar := quoteBar.Bid
		if direction == orders.Buy {
			bar = quoteBar.Ask
		}
		if bar.IsZero() {
			bar = data.Bar{Open: quoteBar.Open(), High: quoteBar.High(), Low: quoteBar.Low(), Close: quoteBar.Close()}
		}
		p.current = bar.Close
		p.open = bar.Open
		p.high = bar.High
		p.low = bar.Low
		p.close = bar.Close
	case hasTrade:
		p.current = tradeBar.Close
		p.open = tradeBar.Open
		p.high = tradeBar.High
		p.low = tradeBar.Low
		p.close = tradeBar.Close
	}

	if p.open.IsZero() {
		p.open = p.current
	}
	if p.high.IsZero() {
		p.high = p.current
	}
	if p.low.IsZero() {
		p.low = p.current
	}
	if p.close.IsZero() {
		p.close = p.current
	}
	return p
}

func decimalMin(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func decimalMax(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
