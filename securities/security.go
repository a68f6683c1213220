// Package securities models the instrument view the execution simulator
// runs against: the price/quote cache, the exchange calendar and the
// fee/slippage/fill model composition attached to each instrument.
package securities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/indicators"
	"github.com/oarkflow/tradesim/orders"
)

// SecurityType enumerates the supported asset classes.
type SecurityType int

const (
	Equity SecurityType = iota
	Forex
	Cfd
	Crypto
)

func (t SecurityType) String() string {
	switch t {
	case Equity:
		return "Equity"
	case Forex:
		return "Forex"
	case Cfd:
		return "Cfd"
	case Crypto:
		return "Crypto"
	}
	return fmt.Sprintf("SecurityType(%d)", int(t))
}

// FeeModel computes the commission of an order against a security.
// Implementations always return a non-negative amount in the account
// currency and never fail: unknown security types cost zero.
type FeeModel interface {
	OrderFee(security *Security, order *orders.Order) decimal.Decimal
}

// SlippageModel approximates the price slippage of an order. Missing market
// data degrades to zero slippage, never to an error.
type SlippageModel interface {
	SlippageApproximation(security *Security, order *orders.Order) decimal.Decimal
}

// FillModel decides whether and at what price an order fills against the
// security's current price state. Every method returns a well-formed event;
// "no fill" is an event whose status is not Filled or whose quantity is
// zero. The only mutation a fill model may perform is latching the
// stop-triggered flag of a stop-limit order.
type FillModel interface {
	MarketFill(security *Security, order *orders.Order) *orders.OrderEvent
	StopMarketFill(security *Security, order *orders.Order) *orders.OrderEvent
	StopLimitFill(security *Security, order *orders.Order) *orders.OrderEvent
	LimitFill(security *Security, order *orders.Order) *orders.OrderEvent
	MarketOnOpenFill(security *Security, order *orders.Order) *orders.OrderEvent
	MarketOnCloseFill(security *Security, order *orders.Order) *orders.OrderEvent
}

// TransactionModel is the per-security execution policy: one fee model, one
// slippage model and one fill model behind a single façade.
type TransactionModel interface {
	FillModel
	FeeModel
	SlippageModel
}

// Security is the read-only instrument view consumed by the fill core. The
// cache is written only through SetMarketPrice, by a single data-feed
// writer, strictly in increasing time order.
type Security struct {
	Symbol        string
	Type          SecurityType
	QuoteCurrency string
	Cache         *SecurityCache
	Exchange      *Exchange
	FeeModel      FeeModel
	SlippageModel SlippageModel
	FillModel     FillModel
	// History keeps the most recent trade bars for indicator helpers.
	History *indicators.RollingWindow[*data.TradeBar]

	localTime time.Time
}

// NewSecurity returns a security with an empty cache and a small bar
// history. Models start nil; attach them directly or via a transaction
// model composition.
func NewSecurity(symbol string, securityType SecurityType, quoteCurrency string, exchange *Exchange) *Security {
	if exchange == nil {
		panic("securities: nil exchange")
	}
	return &Security{
		Symbol:        symbol,
		Type:          securityType,
		QuoteCurrency: quoteCurrency,
		Cache:         NewSecurityCache(),
		Exchange:      exchange,
		History:       indicators.NewRollingWindow[*data.TradeBar](lookbackBars),
	}
}

const lookbackBars = 64

// Price returns the current market price from the cache.
func (s *Security) Price() decimal.Decimal { return s.Cache.Price }

// LocalTime returns the security's current time in the exchange time zone.
// It advances with each data point applied through SetMarketPrice.
func (s *Security) LocalTime() time.Time { return s.localTime }

// SetMarketPrice applies one data point to the cache and advances the
// security's local clock to the point's end time. The caller must deliver
// points in increasing time order.
func (s *Security) SetMarketPrice(point data.Point) {
	s.Cache.AddData(point)
	s.localTime = point.EndTime().In(s.Exchange.Location())
	if bar, ok := point.(*data.TradeBar); ok {
		s.History.Add(bar)
	}
}

// IsMarketOpen reports whether the exchange is open at the security's local
// time. When the current data bar spans more than a minute the check falls
// back to whether the bar overlaps an open period on its calendar date, so
// hourly and daily bars still count as tradeable.
func (s *Security) IsMarketOpen() bool {
	if s.Exchange.IsOpen(s.localTime) {
		return true
	}
	point := s.Cache.GetData()
	if point == nil {
		return false
	}
	start, end := point.Time(), point.EndTime()
	if end.Sub(start) > time.Minute {
		return s.Exchange.IsOpenBetween(start, end)
	}
	return false
}

// FillOrder is the single dispatch point from an order's type tag to the
// fill model entry point handling it.
func FillOrder(model FillModel, security *Security, order *orders.Order) *orders.OrderEvent {
	if model == nil || security == nil || order == nil {
		panic("securities: nil argument to FillOrder")
	}
	switch order.Type {
	case orders.Market:
		return model.MarketFill(security, order)
	case orders.Limit:
		return model.LimitFill(security, order)
	case orders.StopMarket:
		return model.StopMarketFill(security, order)
	case orders.StopLimit:
		return model.StopLimitFill(security, order)
	case orders.MarketOnOpen:
		return model.MarketOnOpenFill(security, order)
	case orders.MarketOnClose:
		return model.MarketOnCloseFill(security, order)
	}
	panic(fmt.Sprintf("securities: unknown order type %v", order.Type))
}
