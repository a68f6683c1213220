// Package engine runs the deterministic single-threaded broker simulation:
// it funnels market data into the security caches in time order, scans the
// pending orders after every update and routes the resulting events into
// the portfolio.
package engine

import (
	"fmt"

	"github.com/google/btree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
)

// EventHandler receives every order event the broker produces.
type EventHandler func(event *orders.OrderEvent)

// Broker is the backtesting broker simulation. All mutation runs on the
// caller's goroutine; data must be delivered in increasing time order.
type Broker struct {
	securities map[string]*securities.Security
	models     map[string]securities.TransactionModel
	pending    *btree.BTreeG[*orders.Order]
	all        map[int64]*orders.Order
	nextID     int64
	portfolio  *Portfolio
	handler    EventHandler
}

// NewBroker returns a broker with the given starting cash.
func NewBroker(cash decimal.Decimal) *Broker {
	return &Broker{
		securities: map[string]*securities.Security{},
		models:     map[string]securities.TransactionModel{},
		pending: btree.NewG[*orders.Order](2, func(a, b *orders.Order) bool {
			return a.ID < b.ID
		}),
		all:       map[int64]*orders.Order{},
		portfolio: NewPortfolio(cash),
	}
}

// AddSecurity registers a security and its transaction model. The model's
// sub-models are installed on the security so fill evaluation sees them.
func (b *Broker) AddSecurity(security *securities.Security, model securities.TransactionModel) {
	if security == nil || model == nil {
		panic("engine: nil security or transaction model")
	}
	b.securities[security.Symbol] = security
	b.models[security.Symbol] = model
}

// Security returns the registered security for symbol, or nil.
func (b *Broker) Security(symbol string) *securities.Security { return b.securities[symbol] }

// Portfolio returns the broker's portfolio.
func (b *Broker) Portfolio() *Portfolio { return b.portfolio }

// SetEventHandler installs the order event sink.
func (b *Broker) SetEventHandler(handler EventHandler) { b.handler = handler }

// Order returns a previously submitted order by id.
func (b *Broker) Order(id int64) (*orders.Order, bool) {
	order, ok := b.all[id]
	return order, ok
}

// OpenOrders returns the pending orders in id order.
func (b *Broker) OpenOrders() []*orders.Order {
	open := make([]*orders.Order, 0, b.pending.Len())
	b.pending.Ascend(func(order *orders.Order) bool {
		open = append(open, order)
		return true
	})
	return open
}

func (b *Broker) emit(event *orders.OrderEvent) {
	if b.handler != nil {
		b.handler(event)
	}
}

// Submit processes a submit request: assigns the order id, validates the
// order and moves it to Submitted. The request is finalized exactly once.
func (b *Broker) Submit(request *orders.SubmitOrderRequest) *orders.OrderResponse {
	if request == nil {
		panic("engine: nil submit request")
	}
	request.MarkProcessing()

	security, ok := b.securities[request.Symbol]
	if !ok {
		request.SetResponse(orders.ErrorResponse(0, orders.ErrorProcessingError,
			fmt.Sprintf("unknown security %s", request.Symbol)), orders.RequestProcessed)
		return request.Response()
	}

	order, err := orders.NewOrder(request.Symbol, request.OrderType, request.Quantity, request.Time, request.Tag)
	if err != nil {
		request.SetResponse(orders.ErrorResponse(0, orders.ErrorZeroQuantity, err.Error()), orders.RequestProcessed)
		return request.Response()
	}

	b.nextID++
	order.ID = b.nextID
	order.LimitPrice = request.LimitPrice
	order.StopPrice = request.StopPrice
	switch request.OrderType {
	case orders.Limit, orders.StopLimit:
		order.Price = request.LimitPrice
	case orders.StopMarket:
		order.Price = request.StopPrice
	default:
		order.Price = security.Price()
	}
	request.OrderID = order.ID

	if err := order.SetStatus(orders.Submitted); err != nil {
		request.SetResponse(orders.ErrorResponse(order.ID, orders.ErrorProcessingError, err.Error()), orders.RequestProcessed)
		return request.Response()
	}

	b.all[order.ID] = order
	b.pending.ReplaceOrInsert(order)
	request.SetResponse(orders.SuccessResponse(order.ID), orders.RequestProcessed)

	b.emit(orders.NewOrderEvent(order, order.Time.UTC(), decimal.Zero, "USD", request.Tag))
	return request.Response()
}

// Update processes an update request against a pending order. Updates
// against unknown or terminal orders come back as error responses, never
// as mutations.
func (b *Broker) Update(request *orders.UpdateOrderRequest) *orders.OrderResponse {
	if request == nil {
		panic("engine: nil update request")
	}
	request.MarkProcessing()

	order, ok := b.all[request.OrderID]
	if !ok {
		request.SetResponse(orders.ErrorResponse(request.OrderID, orders.ErrorOrderNotFound,
			fmt.Sprintf("order %d not found", request.OrderID)), orders.RequestProcessed)
		return request.Response()
	}
	if order.Status.IsClosed() {
		request.SetResponse(orders.ErrorResponse(order.ID, orders.ErrorInvalidOrderStatus,
			fmt.Sprintf("order %d is %v and cannot be updated", order.ID, order.Status)), orders.RequestProcessed)
		return request.Response()
	}
	if err := order.ApplyUpdate(request); err != nil {
		request.SetResponse(orders.ErrorResponse(order.ID, orders.ErrorProcessingError, err.Error()), orders.RequestProcessed)
		return request.Response()
	}
	request.SetResponse(orders.SuccessResponse(order.ID), orders.RequestProcessed)
	return request.Response()
}

// Cancel processes a cancel request. Canceling a terminal order is an
// error response; otherwise the order leaves the pending set and a
// Canceled event is emitted.
func (b *Broker) Cancel(request *orders.CancelOrderRequest) *orders.OrderResponse {
	if request == nil {
		panic("engine: nil cancel request")
	}
	request.MarkProcessing()

	order, ok := b.all[request.OrderID]
	if !ok {
		request.SetResponse(orders.ErrorResponse(request.OrderID, orders.ErrorOrderNotFound,
			fmt.Sprintf("order %d not found", request.OrderID)), orders.RequestProcessed)
		return request.Response()
	}
	if order.Status.IsClosed() {
		request.SetResponse(orders.ErrorResponse(order.ID, orders.ErrorInvalidOrderStatus,
			fmt.Sprintf("order %d is %v and cannot be canceled", order.ID, order.Status)), orders.RequestProcessed)
		return request.Response()
	}
	if err := order.SetStatus(orders.Canceled); err != nil {
		request.SetResponse(orders.ErrorResponse(order.ID, orders.ErrorProcessingError, err.Error()), orders.RequestProcessed)
		return request.Response()
	}
	b.pending.Delete(order)
	request.SetResponse(orders.SuccessResponse(order.ID), orders.RequestProcessed)

	b.emit(orders.NewOrderEvent(order, request.Time.UTC(), decimal.Zero, "USD", request.Tag))
	return request.Response()
}

// OnData applies one market data point to its security's cache and then
// evaluates every pending order against the fresh snapshot. Points must
// arrive in increasing time order; the broker does not reorder them.
func (b *Broker) OnData(point data.Point) {
	if point == nil {
		panic("engine: nil data point")
	}
	security, ok := b.securities[point.Symbol()]
	if !ok {
		logrus.Warnf("data for unregistered symbol: %v", point.Symbol())
		return
	}
	security.SetMarketPrice(point)
	b.scanFills(security)
}

func (b *Broker) scanFills(security *securities.Security) {
	model := b.models[security.Symbol]

	var filled []*orders.Order
	b.pending.Ascend(func(order *orders.Order) bool {
		if order.Symbol != security.Symbol {
			return true
		}
		event := securities.FillOrder(model, security, order)
		if !event.IsFill() {
			return true
		}
		if err := order.SetStatus(orders.Filled); err != nil {
			logrus.Warnf("fill status transition failed: %v", err)
			return true
		}
		order.Price = event.FillPrice
		filled = append(filled, order)
		b.portfolio.ApplyFill(event)
		b.emit(event)
		return true
	})

	for _, order := range filled {
		b.pending.Delete(order)
	}
}
