// Package transaction composes one fee model, one slippage model and one
// fill model into the per-security execution policy invoked by the broker
// simulation layer.
package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/fees"
	"github.com/oarkflow/tradesim/fills"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
	"github.com/oarkflow/tradesim/slippage"
)

// SecurityTransactionModel is the façade implementing
// securities.TransactionModel by delegation.
type SecurityTransactionModel struct {
	fill securities.FillModel
	fee  securities.FeeModel
	slip securities.SlippageModel
}

// NewTransactionModel composes the three sub-models. All must be non-nil.
func NewTransactionModel(fill securities.FillModel, fee securities.FeeModel, slip securities.SlippageModel) *SecurityTransactionModel {
	if fill == nil || fee == nil || slip == nil {
		panic("transaction: nil sub-model")
	}
	return &SecurityTransactionModel{fill: fill, fee: fee, slip: slip}
}

// NewDefaultTransactionModel returns the default composition: immediate
// fill, spread-based slippage, zero flat fee.
func NewDefaultTransactionModel() *SecurityTransactionModel {
	return NewTransactionModel(
		fills.NewImmediateFillModel(),
		fees.NewConstantFeeModel(decimal.Zero),
		slippage.NewSpreadSlippageModel(),
	)
}

// NewEquityTransactionModel returns the equity composition: immediate fill,
// spread slippage and a percentage-of-notional fee with floor and cap.
func NewEquityTransactionModel(rate, minimum, maximum decimal.Decimal) *SecurityTransactionModel {
	return NewTransactionModel(
		fills.NewImmediateFillModel(),
		fees.NewEquityFeeModel(rate, minimum, maximum),
		slippage.NewSpreadSlippageModel(),
	)
}

// NewForexTransactionModel returns the forex/cfd composition: immediate
// fill, spread slippage and the tiered fee selected by trailing monthly
// volume.
func NewForexTransactionModel(monthlyVolume decimal.Decimal) *SecurityTransactionModel {
	return NewTransactionModel(
		fills.NewImmediateFillModel(),
		fees.NewForexFeeModel(monthlyVolume, fees.DefaultForexTiers()),
		slippage.NewSpreadSlippageModel(),
	)
}

// ForSecurityType returns the default composition for a security type.
// Equity clamps fees between equityMinimum and equityMaximum at equityRate
// of notional; forex and cfd use the tiered schedule; everything else pays
// no fee.
func ForSecurityType(securityType securities.SecurityType, equityRate, equityMinimum, equityMaximum, monthlyVolume decimal.Decimal) *SecurityTransactionModel {
	switch securityType {
	case securities.Equity:
		return NewEquityTransactionModel(equityRate, equityMinimum, equityMaximum)
	case securities.Forex, securities.Cfd:
		return NewForexTransactionModel(monthlyVolume)
	}
	return NewDefaultTransactionModel()
}

// MarketFill delegates to the fill model.
func (m *SecurityTransactionModel) MarketFill(s *securities.Security, o *orders.Order) *orders.OrderEvent {
	return m.fill.MarketFill(s, o)
}

// StopMarketFill delegates to the fill model.
func (m *SecurityTransactionModel) StopMarketFill(s *securities.Security, o *orders.Order) *orders.OrderEvent {
	return m.fill.StopMarketFill(s, o)
}

// StopLimitFill delegates to the fill model.
func (m *SecurityTransactionModel) StopLimitFill(s *securities.Security, o *orders.Order) *orders.OrderEvent {
	return m.fill.StopLimitFill(s, o)
}

// LimitFill delegates to the fill model.
func (m *SecurityTransactionModel) LimitFill(s *securities.Security, o *orders.Order) *orders.OrderEvent {
	return m.fill.LimitFill(s, o)
}

// MarketOnOpenFill delegates to the fill model.
func (m *SecurityTransactionModel) MarketOnOpenFill(s *securities.Security, o *orders.Order) *orders.OrderEvent {
	return m.fill.MarketOnOpenFill(s, o)
}

// MarketOnCloseFill delegates to the fill model.
func (m *SecurityTransactionModel) MarketOnCloseFill(s *securities.Security, o *orders.Order) *orders.OrderEvent {
	return m.fill.MarketOnCloseFill(s, o)
}

// OrderFee delegates to the fee model.
func (m *SecurityTransactionModel) OrderFee(s *securities.Security, o *orders.Order) decimal.Decimal {
	return m.fee.OrderFee(s, o)
}

// SlippageApproximation delegates to the slippage model.
func (m *SecurityTransactionModel) SlippageApproximation(s *securities.Security, o *orders.Order) decimal.Decimal {
	return m.slip.SlippageApproximation(s, o)
}

// Attach installs the composed sub-models on the security so direct reads
// of security.FeeModel and friends see the same policy.
func (m *SecurityTransactionModel) Attach(s *securities.Security) {
	s.FillModel = m.fill
	s.FeeModel = m.fee
	s.SlippageModel = m.slip
}
