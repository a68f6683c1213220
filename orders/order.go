// Package orders defines the order value objects, the order status state
// machine and the submit/update/cancel request lifecycle.
package orders

import (
	"fmt"
	"time"

	"github.com/oarkflow/errors"
	"github.com/shopspring/decimal"
)

// OrderType enumerates the supported order variants.
type OrderType int

const (
	Market OrderType = iota
	Limit
	StopMarket
	StopLimit
	MarketOnOpen
	MarketOnClose
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "Market"
	case Limit:
		return "Limit"
	case StopMarket:
		return "StopMarket"
	case StopLimit:
		return "StopLimit"
	case MarketOnOpen:
		return "MarketOnOpen"
	case MarketOnClose:
		return "MarketOnClose"
	}
	return fmt.Sprintf("OrderType(%d)", int(t))
}

// OrderDirection is derived from the sign of an order's quantity.
type OrderDirection int

const (
	Buy OrderDirection = iota
	Sell
	Hold
)

func (d OrderDirection) String() string {
	switch d {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	}
	return "Hold"
}

// OrderStatus enumerates the order lifecycle states.
type OrderStatus int

const (
	New OrderStatus = iota
	Submitted
	PartiallyFilled
	Filled
	Canceled
	Invalid
)

func (s OrderStatus) String() string {
	switch s {
	case New:
		return "New"
	case Submitted:
		return "Submitted"
	case PartiallyFilled:
		return "PartiallyFilled"
	case Filled:
		return "Filled"
	case Canceled:
		return "Canceled"
	case Invalid:
		return "Invalid"
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

// IsClosed reports whether the status is terminal. Terminal orders accept
// no further transitions or updates.
func (s OrderStatus) IsClosed() bool {
	return s == Filled || s == Canceled || s == Invalid
}

var allowedTransitions = map[OrderStatus][]OrderStatus{
	New:             {Submitted, Invalid},
	Submitted:       {PartiallyFilled, Filled, Canceled, Invalid},
	PartiallyFilled: {PartiallyFilled, Filled, Canceled},
}

// Order is a request to trade a signed quantity of one instrument. The type
// tag selects which limit/stop fields are meaningful; fill models dispatch
// on it rather than on concrete order types.
type Order struct {
	ID       int64
	Symbol   string
	Type     OrderType
	Quantity decimal.Decimal
	// Price is the reference price at submission: the market price for
	// market-style orders, the limit price otherwise.
	Price      decimal.Decimal
	LimitPrice decimal.Decimal
	StopPrice  decimal.Decimal
	// StopTriggered latches once the stop condition of a stop-limit order
	// has fired. It never reverts to false.
	StopTriggered bool
	Time          time.Time
	Tag           string
	Status        OrderStatus
}

// NewOrder constructs an order in status New. Quantity must be non-zero.
func NewOrder(symbol string, orderType OrderType, quantity decimal.Decimal, t time.Time, tag string) (*Order, error) {
	if quantity.IsZero() {
		return nil, errors.New("orders: quantity must be non-zero")
	}
	return &Order{
		Symbol:   symbol,
		Type:     orderType,
		Quantity: quantity,
		Time:     t,
		Tag:      tag,
		Status:   New,
	}, nil
}

// Direction returns Buy for positive quantity, Sell for negative.
func (o *Order) Direction() OrderDirection {
	switch {
	case o.Quantity.IsPositive():
		return Buy
	case o.Quantity.IsNegative():
		return Sell
	}
	return Hold
}

// AbsoluteQuantity returns the unsigned quantity.
func (o *Order) AbsoluteQuantity() decimal.Decimal { return o.Quantity.Abs() }

// Value returns the signed notional of the order at its reference price.
func (o *Order) Value() decimal.Decimal { return o.Quantity.Mul(o.Price) }

// SetStatus transitions the order status. Transitions are monotonic: once a
// terminal status is reached no further transition is accepted, and only the
// edges of the lifecycle graph are legal.
func (o *Order) SetStatus(status OrderStatus) error {
	if status == o.Status {
		return nil
	}
	if o.Status.IsClosed() {
		return errors.New(fmt.Sprintf("orders: order %d is %v and cannot become %v", o.ID, o.Status, status))
	}
	for _, next := range allowedTransitions[o.Status] {
		if next == status {
			o.Status = status
			return nil
		}
	}
	return errors.New(fmt.Sprintf("orders: illegal transition %v -> %v for order %d", o.Status, status, o.ID))
}

// ApplyUpdate mutates the order's quantity/limit/stop/tag fields from an
// update request. The order type never changes. Updating a terminal order
// is an error surfaced to the caller.
func (o *Order) ApplyUpdate(request *UpdateOrderRequest) error {
	if request == nil {
		panic("orders: nil update request")
	}
	if o.Status.IsClosed() {
		return errors.New(fmt.Sprintf("orders: cannot update order %d in terminal status %v", o.ID, o.Status))
	}
	if request.Quantity != nil {
		if request.Quantity.IsZero() {
			return errors.New("orders: updated quantity must be non-zero")
		}
		o.Quantity = *request.Quantity
	}
	if request.LimitPrice != nil {
		o.LimitPrice = *request.LimitPrice
	}
	if request.StopPrice != nil {
		o.StopPrice = *request.StopPrice
	}
	if request.Tag != nil {
		o.Tag = *request.Tag
	}
	return nil
}
