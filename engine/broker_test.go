package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/engine"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
	"github.com/oarkflow/tradesim/transaction"
)

var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func d(value float64) decimal.Decimal { return decimal.NewFromFloat(value) }

func newTestBroker(t *testing.T) (*engine.Broker, *securities.Security) {
	t.Helper()

	security := securities.NewSecurity("SPY", securities.Equity, "USD", securities.NewEquityExchange(nil))
	model := transaction.NewDefaultTransactionModel()
	model.Attach(security)

	broker := engine.NewBroker(d(100000))
	broker.AddSecurity(security, model)
	return broker, security
}

func dailyBar(day time.Time, open, high, low, close float64) *data.TradeBar {
	return data.NewTradeBar("SPY", day, 24*time.Hour, d(open), d(high), d(low), d(close), d(1000))
}

func TestSubmitAndFill(t *testing.T) {
	assert := assert.New(t)
	broker, security := newTestBroker(t)

	var fills []*orders.OrderEvent
	broker.SetEventHandler(func(event *orders.OrderEvent) {
		if event.IsFill() {
			fills = append(fills, event)
		}
	})

	response := broker.Submit(orders.NewSubmitOrderRequest("SPY", orders.Market, d(100), monday, ""))
	assert.False(response.IsError())
	assert.Equal(int64(1), response.OrderID)

	order, ok := broker.Order(1)
	assert.True(ok)
	assert.Equal(orders.Submitted, order.Status)
	assert.Len(broker.OpenOrders(), 1)

	broker.OnData(dailyBar(monday, 400, 404, 398, 402))

	assert.Len(fills, 1)
	assert.Equal(orders.Filled, order.Status)
	assert.True(fills[0].FillPrice.Equal(d(402)))
	assert.Len(broker.OpenOrders(), 0)

	// cash decreased by quantity times fill price
	assert.True(broker.Portfolio().Cash.Equal(d(100000-100*402)), "got %v", broker.Portfolio().Cash)
	assert.True(broker.Portfolio().Holding("SPY").Quantity.Equal(d(100)))
	assert.True(security.Price().Equal(d(402)))
}

func TestSubmitUnknownSymbol(t *testing.T) {
	assert := assert.New(t)
	broker, _ := newTestBroker(t)

	request := orders.NewSubmitOrderRequest("NOPE", orders.Market, d(1), monday, "")
	response := broker.Submit(request)
	assert.True(response.IsError())
	assert.Equal(orders.RequestError, request.Status())
}

func TestSubmitZeroQuantity(t *testing.T) {
	assert := assert.New(t)
	broker, _ := newTestBroker(t)

	request := orders.NewSubmitOrderRequest("SPY", orders.Market, decimal.Zero, monday, "")
	response := broker.Submit(request)
	assert.True(response.IsError())
	assert.Equal(orders.ErrorZeroQuantity, response.ErrorCode)
}

func TestUpdatePendingOrder(t *testing.T) {
	assert := assert.New(t)
	broker, _ := newTestBroker(t)

	submit := orders.NewSubmitOrderRequest("SPY", orders.Limit, d(10), monday, "")
	submit.LimitPrice = d(390)
	broker.Submit(submit)

	quantity := d(20)
	update := orders.NewUpdateOrderRequest(submit.OrderID, monday)
	update.Quantity = &quantity

	response := broker.Update(update)
	assert.False(response.IsError())

	order, _ := broker.Order(submit.OrderID)
	assert.True(order.Quantity.Equal(d(20)))
}

func TestUpdateFilledOrderIsAnError(t *testing.T) {
	assert := assert.New(t)
	broker, _ := newTestBroker(t)

	submit := orders.NewSubmitOrderRequest("SPY", orders.Market, d(100), monday, "")
	broker.Submit(submit)
	broker.OnData(dailyBar(monday, 400, 404, 398, 402))

	order, _ := broker.Order(submit.OrderID)
	assert.Equal(orders.Filled, order.Status)

	quantity := d(200)
	update := orders.NewUpdateOrderRequest(submit.OrderID, monday.Add(24*time.Hour))
	update.Quantity = &quantity

	response := broker.Update(update)
	assert.True(response.IsError())
	assert.Equal(orders.ErrorInvalidOrderStatus, response.ErrorCode)
	assert.Equal(orders.RequestError, update.Status())
	// the order's fields remain unmodified
	assert.True(order.Quantity.Equal(d(100)))
}

func TestCancelPendingOrder(t *testing.T) {
	assert := assert.New(t)
	broker, _ := newTestBroker(t)

	submit := orders.NewSubmitOrderRequest("SPY", orders.Limit, d(10), monday, "")
	submit.LimitPrice = d(1)
	broker.Submit(submit)

	response := broker.Cancel(orders.NewCancelOrderRequest(submit.OrderID, monday, ""))
	assert.False(response.IsError())

	order, _ := broker.Order(submit.OrderID)
	assert.Equal(orders.Canceled, order.Status)
	assert.Len(broker.OpenOrders(), 0)

	// canceled orders never fill, whatever the data says
	broker.OnData(dailyBar(monday, 0.5, 0.6, 0.4, 0.5))
	assert.Equal(orders.Canceled, order.Status)

	// and canceling twice is an error
	second := broker.Cancel(orders.NewCancelOrderRequest(submit.OrderID, monday, ""))
	assert.True(second.IsError())
}

func TestLimitOrderRestsUntilCrossed(t *testing.T) {
	assert := assert.New(t)
	broker, _ := newTestBroker(t)

	submit := orders.NewSubmitOrderRequest("SPY", orders.Limit, d(10), monday, "")
	submit.LimitPrice = d(395)
	broker.Submit(submit)

	// never trades through the limit
	broker.OnData(dailyBar(monday, 400, 404, 398, 402))
	order, _ := broker.Order(submit.OrderID)
	assert.Equal(orders.Submitted, order.Status)

	// gaps down through it the next day
	broker.OnData(dailyBar(monday.Add(24*time.Hour), 396, 397, 393, 394))
	assert.Equal(orders.Filled, order.Status)
	assert.True(order.Price.Equal(d(395)), "got %v", order.Price)
}

func TestSellReleasesCash(t *testing.T) {
	assert := assert.New(t)
	broker, _ := newTestBroker(t)

	broker.Submit(orders.NewSubmitOrderRequest("SPY", orders.Market, d(100), monday, ""))
	broker.OnData(dailyBar(monday, 400, 404, 398, 400))

	broker.Submit(orders.NewSubmitOrderRequest("SPY", orders.Market, d(-100), monday.Add(24*time.Hour), ""))
	broker.OnData(dailyBar(monday.Add(24*time.Hour), 400, 411, 399, 410))

	assert.True(broker.Portfolio().Holding("SPY").Quantity.IsZero())
	assert.True(broker.Portfolio().Cash.Equal(d(100000+100*10)), "got %v", broker.Portfolio().Cash)
}
