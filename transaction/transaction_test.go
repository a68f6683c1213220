package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
	"github.com/oarkflow/tradesim/transaction"
)

var monday = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func d(value float64) decimal.Decimal { return decimal.NewFromFloat(value) }

func TestDefaultCompositionFillsWithZeroFee(t *testing.T) {
	assert := assert.New(t)

	security := securities.NewSecurity("EURUSD", securities.Forex, "USD", securities.NewForexExchange(nil))
	model := transaction.NewDefaultTransactionModel()
	model.Attach(security)

	security.SetMarketPrice(data.NewQuoteTick("EURUSD", monday, d(1.13739), d(1.13746)))

	order, _ := orders.NewOrder("EURUSD", orders.Market, d(1), monday, "")
	order.SetStatus(orders.Submitted)

	// façade delegates the slippage and fee sub-models
	assert.True(model.SlippageApproximation(security, order).Equal(d(0.000035)))
	assert.True(model.OrderFee(security, order).IsZero())

	event := model.MarketFill(security, order)
	assert.Equal(orders.Filled, event.Status)
	assert.True(event.FillPrice.Equal(d(1.13746)))
	assert.True(event.OrderFee.IsZero())
}

func TestForSecurityTypeComposition(t *testing.T) {
	assert := assert.New(t)

	rate, minimum, maximum := d(0.0005), d(1), d(50)
	volume := decimal.Zero

	equity := transaction.ForSecurityType(securities.Equity, rate, minimum, maximum, volume)
	forex := transaction.ForSecurityType(securities.Forex, rate, minimum, maximum, volume)
	crypto := transaction.ForSecurityType(securities.Crypto, rate, minimum, maximum, volume)

	spy := securities.NewSecurity("SPY", securities.Equity, "USD", securities.NewAlwaysOpenExchange(nil))
	spy.SetMarketPrice(data.NewTradeTick("SPY", monday, d(100), d(1)))
	eurusd := securities.NewSecurity("EURUSD", securities.Forex, "USD", securities.NewForexExchange(nil))
	eurusd.SetMarketPrice(data.NewTradeTick("EURUSD", monday, d(1), d(1)))

	small, _ := orders.NewOrder("SPY", orders.Market, d(1), monday, "")
	assert.True(equity.OrderFee(spy, small).Equal(d(1)), "equity floor applies")

	fxOrder, _ := orders.NewOrder("EURUSD", orders.Market, d(1000), monday, "")
	assert.True(forex.OrderFee(eurusd, fxOrder).Equal(d(2)), "lowest forex tier minimum")

	// unrecognized types pay nothing
	btc := securities.NewSecurity("BTCUSD", securities.Crypto, "USD", securities.NewAlwaysOpenExchange(nil))
	btcOrder, _ := orders.NewOrder("BTCUSD", orders.Market, d(1), monday, "")
	assert.True(crypto.OrderFee(btc, btcOrder).IsZero())
}

func TestTransactionModelDispatch(t *testing.T) {
	assert := assert.New(t)

	security := securities.NewSecurity("SPY", securities.Equity, "USD", securities.NewAlwaysOpenExchange(nil))
	model := transaction.NewDefaultTransactionModel()
	model.Attach(security)
	security.SetMarketPrice(data.NewTradeBar("SPY", monday, time.Hour, d(100), d(101), d(99), d(100), d(10)))

	order, _ := orders.NewOrder("SPY", orders.Limit, d(1), monday, "")
	order.SetStatus(orders.Submitted)
	order.LimitPrice = d(100.5)

	// the façade serves the type-tag dispatch point too
	event := securities.FillOrder(model, security, order)
	assert.Equal(orders.Filled, event.Status)
	assert.True(event.FillPrice.Equal(d(100.5)))
}
