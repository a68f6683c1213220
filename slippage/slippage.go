// Package slippage implements the slippage approximation models. Absence
// of market data is never an error here, just zero slippage.
package slippage

import (
	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
)

var two = decimal.NewFromInt(2)

// SpreadSlippageModel estimates slippage as half the bid/ask spread of the
// latest cached tick.
type SpreadSlippageModel struct{}

// NewSpreadSlippageModel returns the default slippage model.
func NewSpreadSlippageModel() *SpreadSlippageModel { return &SpreadSlippageModel{} }

// SlippageApproximation returns (ask-bid)/2 from the most recent tick, or
// zero when no tick has been cached or the tick has no two-sided quote.
func (m *SpreadSlippageModel) SlippageApproximation(security *securities.Security, _ *orders.Order) decimal.Decimal {
	if security == nil {
		panic("slippage: nil security")
	}
	tick, ok := securities.DataOfType[*data.Tick](security.Cache)
	if !ok {
		return decimal.Zero
	}
	if !tick.BidPrice.IsPositive() || !tick.AskPrice.IsPositive() {
		return decimal.Zero
	}
	return tick.AskPrice.Sub(tick.BidPrice).Div(two).Abs()
}

// ConstantSlippageModel applies a fixed slippage amount to every fill.
type ConstantSlippageModel struct {
	Amount decimal.Decimal
}

// NewConstantSlippageModel returns a model with a fixed per-fill slippage.
func NewConstantSlippageModel(amount decimal.Decimal) *ConstantSlippageModel {
	return &ConstantSlippageModel{Amount: amount.Abs()}
}

// SlippageApproximation returns the fixed amount.
func (m *ConstantSlippageModel) SlippageApproximation(_ *securities.Security, _ *orders.Order) decimal.Decimal {
	return m.Amount
}
