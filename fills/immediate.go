// Package fills implements the execution simulator: the per-order-type
// state machine deciding fill/no-fill, fill price and fill quantity against
// a security's current price state.
package fills

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
)

// accountCurrency is the currency order fees are reported in.
const accountCurrency = "USD"

// ImmediateFillModel fills eligible orders fully, in one shot, against the
// current bar. It never blocks: every entry point is a pure computation
// over already-cached state, except for latching the stop-triggered flag
// of stop-limit orders.
type ImmediateFillModel struct{}

// NewImmediateFillModel returns the reference fill model.
func NewImmediateFillModel() *ImmediateFillModel { return &ImmediateFillModel{} }

// newNoFill builds the default event for an order: current status carried
// through, zero quantity, zero fee. Fill paths overwrite it.
func newNoFill(security *securities.Security, order *orders.Order) *orders.OrderEvent {
	event := orders.NewOrderEvent(order, security.LocalTime().UTC(), decimal.Zero, accountCurrency, "")
	event.FillPriceCurrency = security.QuoteCurrency
	return event
}

func checkArgs(security *securities.Security, order *orders.Order) {
	if security == nil || order == nil {
		panic("fills: nil argument to fill model")
	}
}

func fill(event *orders.OrderEvent, security *securities.Security, order *orders.Order, price decimal.Decimal) *orders.OrderEvent {
	event.Status = orders.Filled
	event.FillPrice = price
	event.FillQuantity = order.Quantity
	if security.FeeModel != nil {
		event.OrderFee = security.FeeModel.OrderFee(security, order).Abs()
	}
	return event
}

func slippageOf(security *securities.Security, order *orders.Order) decimal.Decimal {
	if security.SlippageModel == nil {
		return decimal.Zero
	}
	return security.SlippageModel.SlippageApproximation(security, order).Abs()
}

// MarketFill fills fully at the current price shifted by slippage: buys pay
// current plus slippage, sells receive current minus slippage. No fill when
// the order is canceled or the exchange is closed.
func (m *ImmediateFillModel) MarketFill(security *securities.Security, order *orders.Order) *orders.OrderEvent {
	checkArgs(security, order)
	event := newNoFill(security, order)
	if order.Status == orders.Canceled {
		return event
	}
	if !security.IsMarketOpen() {
		return event
	}

	p := pricesFor(security, order.Direction())
	slip := slippageOf(security, order)
	switch order.Direction() {
	case orders.Buy:
		return fill(event, security, order, p.current.Add(slip))
	case orders.Sell:
		return fill(event, security, order, p.current.Sub(slip))
	}
	return event
}

// StopMarketFill triggers when the bar crosses the stop price and then
// fills at the worse of the stop price and the slippage-adjusted current
// price, modeling worst-case execution through the stop.
func (m *ImmediateFillModel) StopMarketFill(security *securities.Security, order *orders.Order) *orders.OrderEvent {
	checkArgs(security, order)
	event := newNoFill(security, order)
	if order.Status == orders.Canceled {
		return event
	}

	p := pricesFor(security, order.Direction())
	slip := slippageOf(security, order)
	switch order.Direction() {
	case orders.Sell:
		if p.low.LessThan(order.StopPrice) {
			return fill(event, security, order, decimalMin(order.StopPrice, p.current.Sub(slip)))
		}
	case orders.Buy:
		if p.high.GreaterThan(order.StopPrice) {
			return fill(event, security, order, decimalMax(order.StopPrice, p.current.Add(slip)))
		}
	}
	return event
}

// StopLimitFill latches the stop trigger once the bar crosses the stop
// price, then fills at exactly the limit price once the current price has
// crossed it favorably. The latch survives across evaluations, so a stop
// that fired on an earlier bar stays eligible on later bars.
//
// The limit comparison deliberately reads the security's generic current
// price rather than the bar extremes used for triggering; regression
// expectations depend on that asymmetry.
func (m *ImmediateFillModel) StopLimitFill(security *securities.Security, order *orders.Order) *orders.OrderEvent {
	checkArgs(security, order)
	event := newNoFill(security, order)
	if order.Status == orders.Canceled {
		return event
	}

	p := pricesFor(security, order.Direction())
	switch order.Direction() {
	case orders.Buy:
		if p.high.GreaterThan(order.StopPrice) || order.StopTriggered {
			order.StopTriggered = true
			if security.Price().LessThan(order.LimitPrice) {
				return fill(event, security, order, order.LimitPrice)
			}
		}
	case orders.Sell:
		if p.low.LessThan(order.StopPrice) || order.StopTriggered {
			order.StopTriggered = true
			if security.Price().GreaterThan(order.LimitPrice) {
				return fill(event, security, order, order.LimitPrice)
			}
		}
	}
	return event
}

// LimitFill fills once the bar extreme crosses the limit price, at the
// worse of the opposite bar extreme and the limit price. Far-out-of-the-money
// limits therefore fill at the limit, not at an unrealistic bar extreme.
func (m *ImmediateFillModel) LimitFill(security *securities.Security, order *orders.Order) *orders.OrderEvent {
	checkArgs(security, order)
	event := newNoFill(security, order)
	if order.Status == orders.Canceled {
		return event
	}

	p := pricesFor(security, order.Direction())
	switch order.Direction() {
	case orders.Buy:
		if p.low.LessThan(order.LimitPrice) {
			return fill(event, security, order, decimalMin(p.high, order.LimitPrice))
		}
	case orders.Sell:
		if p.high.GreaterThan(order.LimitPrice) {
			return fill(event, security, order, decimalMax(p.low, order.LimitPrice))
		}
	}
	return event
}

// MarketOnOpenFill fills at the next session's opening price plus slippage.
// The order must wait for a bar newer than its submission, and an order
// submitted while the market was already open waits for the next session.
func (m *ImmediateFillModel) MarketOnOpenFill(security *securities.Security, order *orders.Order) *orders.OrderEvent {
	checkArgs(security, order)
	event := newNoFill(security, order)
	if order.Status == orders.Canceled {
		return event
	}

	point := security.Cache.GetData()
	if point == nil {
		return event
	}
	loc := security.Exchange.Location()
	orderLocalTime := order.Time.In(loc)
	if !point.EndTime().In(loc).After(orderLocalTime) {
		return event
	}
	if security.Exchange.IsOpen(orderLocalTime) && sameDate(orderLocalTime, security.LocalTime()) {
		return event
	}
	if !security.IsMarketOpen() {
		return event
	}

	p := pricesFor(security, order.Direction())
	slip := slippageOf(security, order)
	switch order.Direction() {
	case orders.Buy:
		return fill(event, security, order, p.open.Add(slip))
	case orders.Sell:
		return fill(event, security, order, p.open.Sub(slip))
	}
	return event
}

// MarketOnCloseFill fills at the bar close plus slippage once local time
// has reached the next scheduled market close after submission.
func (m *ImmediateFillModel) MarketOnCloseFill(security *securities.Security, order *orders.Order) *orders.OrderEvent {
	checkArgs(security, order)
	event := newNoFill(security, order)
	if order.Status == orders.Canceled {
		return event
	}

	nextClose := security.Exchange.NextMarketClose(order.Time)
	if nextClose.IsZero() || security.LocalTime().Before(nextClose) {
		return event
	}

	p := pricesFor(security, order.Direction())
	slip := slippageOf(security, order)
	switch order.Direction() {
	case orders.Buy:
		return fill(event, security, order, p.close.Add(slip))
	case orders.Sell:
		return fill(event, security, order, p.close.Sub(slip))
	}
	return event
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
