package fees_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/fees"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
)

func newSecurity(t *testing.T, securityType securities.SecurityType, price float64) *securities.Security {
	t.Helper()

	security := securities.NewSecurity("TEST", securityType, "USD", securities.NewAlwaysOpenExchange(nil))
	security.SetMarketPrice(data.NewTradeTick("TEST",
		time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		decimal.NewFromFloat(price), decimal.NewFromInt(1)))
	return security
}

func newOrder(t *testing.T, quantity int64) *orders.Order {
	t.Helper()

	order, err := orders.NewOrder("TEST", orders.Market, decimal.NewFromInt(quantity), time.Now(), "")
	assert.NoError(t, err)
	return order
}

func TestConstantFeeModel(t *testing.T) {
	assert := assert.New(t)

	model := fees.NewConstantFeeModel(decimal.NewFromFloat(-1.5))
	fee := model.OrderFee(newSecurity(t, securities.Equity, 100), newOrder(t, 10))

	// negative inputs still come out non-negative
	assert.True(fee.Equal(decimal.NewFromFloat(1.5)))
}

func TestEquityFeeModelClamps(t *testing.T) {
	assert := assert.New(t)

	model := fees.NewEquityFeeModel(decimal.NewFromFloat(0.0005), decimal.NewFromInt(1), decimal.NewFromInt(50))

	// tiny notional hits the floor
	fee := model.OrderFee(newSecurity(t, securities.Equity, 10), newOrder(t, 1))
	assert.True(fee.Equal(decimal.NewFromInt(1)), "got %v", fee)

	// 2000 * 100 * 0.0005 = 100, capped at 50
	fee = model.OrderFee(newSecurity(t, securities.Equity, 100), newOrder(t, 2000))
	assert.True(fee.Equal(decimal.NewFromInt(50)), "got %v", fee)

	// 1000 * 100 * 0.0005 = 50, inside the band
	fee = model.OrderFee(newSecurity(t, securities.Equity, 100), newOrder(t, 1000))
	assert.True(fee.Equal(decimal.NewFromInt(50)), "got %v", fee)

	// sells pay the same as buys
	fee = model.OrderFee(newSecurity(t, securities.Equity, 100), newOrder(t, -1000))
	assert.True(fee.Equal(decimal.NewFromInt(50)))
}

func TestEquityFeeModelIgnoresOtherTypes(t *testing.T) {
	assert := assert.New(t)

	model := fees.NewEquityFeeModel(decimal.NewFromFloat(0.0005), decimal.NewFromInt(1), decimal.NewFromInt(50))
	fee := model.OrderFee(newSecurity(t, securities.Forex, 1.1), newOrder(t, 1000))
	assert.True(fee.IsZero())
}

func TestForexFeeModelTiers(t *testing.T) {
	assert := assert.New(t)
	security := newSecurity(t, securities.Forex, 1.0)

	// lowest tier: 0.2bps, min 2.00
	model := fees.NewForexFeeModel(decimal.Zero, fees.DefaultForexTiers())
	fee := model.OrderFee(security, newOrder(t, 50_000_000))
	assert.True(fee.Equal(decimal.NewFromInt(1000)), "got %v", fee)

	// small notional hits the tier minimum
	fee = model.OrderFee(security, newOrder(t, 1000))
	assert.True(fee.Equal(decimal.NewFromInt(2)), "got %v", fee)

	// top tier: 0.08bps, min 1.00
	model = fees.NewForexFeeModel(decimal.NewFromInt(6_000_000_000), fees.DefaultForexTiers())
	fee = model.OrderFee(security, newOrder(t, 50_000_000))
	assert.True(fee.Equal(decimal.NewFromInt(400)), "got %v", fee)

	fee = model.OrderFee(security, newOrder(t, 1000))
	assert.True(fee.Equal(decimal.NewFromInt(1)), "got %v", fee)
}

func TestForexFeeModelIgnoresEquities(t *testing.T) {
	assert := assert.New(t)

	model := fees.NewForexFeeModel(decimal.Zero, fees.DefaultForexTiers())
	fee := model.OrderFee(newSecurity(t, securities.Equity, 100), newOrder(t, 100))
	assert.True(fee.IsZero())
}
