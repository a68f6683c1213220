package orders

import (
	"fmt"
	"time"

	"github.com/oarkflow/xid"
	"github.com/shopspring/decimal"
)

// OrderEvent records a fill or status change for one order. It is built
// once by the fill model and never mutated afterwards.
type OrderEvent struct {
	ID                string
	OrderID           int64
	Symbol            string
	UTCTime           time.Time
	Status            OrderStatus
	Direction         OrderDirection
	FillPrice         decimal.Decimal
	FillPriceCurrency string
	FillQuantity      decimal.Decimal
	// OrderFee is always non-negative, in FeeCurrency.
	OrderFee    decimal.Decimal
	FeeCurrency string
	Message     string
}

// NewOrderEvent builds an event snapshot from the order's current state.
// FillPrice/FillQuantity stay zero until a fill decision sets them.
func NewOrderEvent(order *Order, utcTime time.Time, fee decimal.Decimal, feeCurrency, message string) *OrderEvent {
	if order == nil {
		panic("orders: nil order for event")
	}
	return &OrderEvent{
		ID:          xid.New().String(),
		OrderID:     order.ID,
		Symbol:      order.Symbol,
		UTCTime:     utcTime,
		Status:      order.Status,
		Direction:   order.Direction(),
		OrderFee:    fee.Abs(),
		FeeCurrency: feeCurrency,
		Message:     message,
	}
}

// AbsoluteFillQuantity returns the unsigned filled quantity.
func (e *OrderEvent) AbsoluteFillQuantity() decimal.Decimal { return e.FillQuantity.Abs() }

// IsFill reports whether the event represents an executed trade.
func (e *OrderEvent) IsFill() bool {
	return (e.Status == Filled || e.Status == PartiallyFilled) && !e.FillQuantity.IsZero()
}

func (e *OrderEvent) String() string {
	if !e.IsFill() {
		return fmt.Sprintf("order %d %v: %v %s", e.OrderID, e.Status, e.Direction, e.Symbol)
	}
	return fmt.Sprintf("order %d %v: %v %s %s @ %s fee %s %s",
		e.OrderID, e.Status, e.Direction, e.Symbol,
		e.AbsoluteFillQuantity(), e.FillPrice, e.OrderFee, e.FeeCurrency)
}
