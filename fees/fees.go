// Package fees implements the commission models attached to securities.
// Every model returns a non-negative amount in the account currency and
// never fails: fees are a best-effort approximation, not a fill gate.
package fees

import (
	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
)

// ConstantFeeModel charges the same flat fee for every order.
type ConstantFeeModel struct {
	Fee decimal.Decimal
}

// NewConstantFeeModel returns a model charging fee per order. A zero fee is
// the default composition of the transaction model.
func NewConstantFeeModel(fee decimal.Decimal) *ConstantFeeModel {
	return &ConstantFeeModel{Fee: fee}
}

// OrderFee returns the flat fee, regardless of security or order.
func (m *ConstantFeeModel) OrderFee(_ *securities.Security, _ *orders.Order) decimal.Decimal {
	return m.Fee.Abs()
}

// EquityFeeModel charges a percentage of notional clamped between a flat
// floor and a flat cap.
type EquityFeeModel struct {
	Rate    decimal.Decimal
	Minimum decimal.Decimal
	Maximum decimal.Decimal
}

// NewEquityFeeModel returns an equity commission model. Rate is a fraction
// of notional (0.0005 = 5 basis points).
func NewEquityFeeModel(rate, minimum, maximum decimal.Decimal) *EquityFeeModel {
	return &EquityFeeModel{Rate: rate, Minimum: minimum, Maximum: maximum}
}

// OrderFee computes rate × |quantity × price|, clamped to [Minimum, Maximum].
// Non-equity securities cost zero.
func (m *EquityFeeModel) OrderFee(security *securities.Security, order *orders.Order) decimal.Decimal {
	if security == nil || order == nil {
		panic("fees: nil argument to OrderFee")
	}
	if security.Type != securities.Equity {
		return decimal.Zero
	}
	notional := order.AbsoluteQuantity().Mul(security.Price())
	fee := notional.Mul(m.Rate)
	if fee.LessThan(m.Minimum) {
		fee = m.Minimum
	}
	if m.Maximum.IsPositive() && fee.GreaterThan(m.Maximum) {
		fee = m.Maximum
	}
	return fee.Abs()
}

// ForexTier is one commission tier of the forex model.
type ForexTier struct {
	// MonthlyVolume is the upper bound (exclusive) of trailing monthly
	// notional this tier applies to; zero means no bound.
	MonthlyVolume decimal.Decimal
	// Rate is the fraction of notional charged (0.00002 = 0.2 basis points).
	Rate decimal.Decimal
	// Minimum is the flat floor per order.
	Minimum decimal.Decimal
}

// ForexFeeModel charges a tiered percentage of notional with a per-tier
// minimum flat fee. The tier is selected once at construction from the
// trailing monthly volume, matching how brokers rate FX commissions.
type ForexFeeModel struct {
	rate    decimal.Decimal
	minimum decimal.Decimal
}

// DefaultForexTiers mirrors the interactive-broker style schedule:
// 0.20bps (min 2.00) up to 1e9 monthly, 0.15bps (min 1.50) up to 2e9,
// 0.10bps (min 1.25) up to 5e9, then 0.08bps (min 1.00).
func DefaultForexTiers() []ForexTier {
	return []ForexTier{
		{MonthlyVolume: decimal.NewFromInt(1_000_000_000), Rate: decimal.NewFromFloat(0.000020), Minimum: decimal.NewFromFloat(2.00)},
		{MonthlyVolume: decimal.NewFromInt(2_000_000_000), Rate: decimal.NewFromFloat(0.000015), Minimum: decimal.NewFromFloat(1.50)},
		{MonthlyVolume: decimal.NewFromInt(5_000_000_000), Rate: decimal.NewFromFloat(0.000010), Minimum: decimal.NewFromFloat(1.25)},
		{Rate: decimal.NewFromFloat(0.000008), Minimum: decimal.NewFromFloat(1.00)},
	}
}

// NewForexFeeModel selects the tier matching monthlyVolume from tiers.
// Tiers must be ordered by ascending volume bound, the last one unbounded.
func NewForexFeeModel(monthlyVolume decimal.Decimal, tiers []ForexTier) *ForexFeeModel {
	if len(tiers) == 0 {
		panic("fees: forex fee model needs at least one tier")
	}
	selected := tiers[len(tiers)-1]
	for _, tier := range tiers {
		if tier.MonthlyVolume.IsPositive() && monthlyVolume.LessThan(tier.MonthlyVolume) {
			selected = tier
			break
		}
	}
	return &ForexFeeModel{rate: selected.Rate, minimum: selected.Minimum}
}

// OrderFee computes rate × |quantity × price| with the tier's flat floor.
// Non-forex, non-cfd securities cost zero.
func (m *ForexFeeModel) OrderFee(security *securities.Security, order *orders.Order) decimal.Decimal {
	if security == nil || order == nil {
		panic("fees: nil argument to OrderFee")
	}
	if security.Type != securities.Forex && security.Type != securities.Cfd {
		return decimal.Zero
	}
	notional := order.AbsoluteQuantity().Mul(security.Price())
	fee := notional.Mul(m.rate)
	if fee.LessThan(m.minimum) {
		fee = m.minimum
	}
	return fee.Abs()
}
