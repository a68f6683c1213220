package securities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/data"
)

// SecurityCache is the latest trade/quote snapshot for one instrument.
// It is owned by the Security it is attached to: written only by the data
// feed, read by the fill and slippage models. Not safe for concurrent
// writers.
type SecurityCache struct {
	Price    decimal.Decimal
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	BidPrice decimal.Decimal
	AskPrice decimal.Decimal
	BidSize  decimal.Decimal
	AskSize  decimal.Decimal
	Volume   decimal.Decimal

	lastData data.Point
	byType   map[string]data.Point
	// lastQuoteBarUpdate is the end time of the last quote bar applied to
	// the OHLC fields. A trade bar ending at the same instant must not
	// stomp the more specific quote snapshot.
	lastQuoteBarUpdate time.Time
}

// NewSecurityCache returns an empty cache.
func NewSecurityCache() *SecurityCache {
	return &SecurityCache{byType: map[string]data.Point{}}
}

// AddData updates the snapshot from one data point. Zero-valued tick fields
// never overwrite cached values; malformed data is ignored rather than
// rejected.
func (c *SecurityCache) AddData(point data.Point) {
	if point == nil {
		panic("securities: nil data point")
	}

	c.lastData = point
	c.byType[fmt.Sprintf("%T", point)] = point

	switch d := point.(type) {
	case *data.Tick:
		if d.LastPrice.IsPositive() {
			c.Price = d.LastPrice
		}
		if d.BidPrice.IsPositive() {
			c.BidPrice = d.BidPrice
		}
		if d.AskPrice.IsPositive() {
			c.AskPrice = d.AskPrice
		}
		if d.BidSize.IsPositive() {
			c.BidSize = d.BidSize
		}
		if d.AskSize.IsPositive() {
			c.AskSize = d.AskSize
		}
		if d.Type == data.TickTypeTrade && d.Quantity.IsPositive() {
			c.Volume = d.Quantity
		}
	case *data.TradeBar:
		// A quote bar ending at the same instant already holds a more
		// specific snapshot.
		if !d.EndTime().Equal(c.lastQuoteBarUpdate) {
			c.Open = d.Open
			c.High = d.High
			c.Low = d.Low
			c.Close = d.Close
		}
		if d.Close.IsPositive() {
			c.Price = d.Close
		}
		if d.Volume.IsPositive() {
			c.Volume = d.Volume
		}
	case *data.QuoteBar:
		c.lastQuoteBarUpdate = d.EndTime()
		c.Open = d.Open()
		c.High = d.High()
		c.Low = d.Low()
		c.Close = d.Close()
		if v := d.Value(); v.IsPositive() {
			c.Price = v
		}
		if d.Bid.Close.IsPositive() {
			c.BidPrice = d.Bid.Close
		}
		if d.Ask.Close.IsPositive() {
			c.AskPrice = d.Ask.Close
		}
		if d.LastBidSize.IsPositive() {
			c.BidSize = d.LastBidSize
		}
		if d.LastAskSize.IsPositive() {
			c.AskSize = d.LastAskSize
		}
	}
}

// GetData returns the most recent data point of any type, or nil.
func (c *SecurityCache) GetData() data.Point { return c.lastData }

// DataOfType returns the most recent cached point of the concrete type T.
func DataOfType[T data.Point](c *SecurityCache) (T, bool) {
	var zero T
	point, ok := c.byType[fmt.Sprintf("%T", zero)]
	if !ok {
		return zero, false
	}
	typed, ok := point.(T)
	return typed, ok
}

// Reset clears the per-type history. The scalar snapshot fields survive.
func (c *SecurityCache) Reset() {
	c.lastData = nil
	c.byType = map[string]data.Point{}
	c.lastQuoteBarUpdate = time.Time{}
}
