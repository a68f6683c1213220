package orders

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequestStatus tracks a request through the broker simulation.
type OrderRequestStatus int

const (
	RequestUnprocessed OrderRequestStatus = iota
	RequestProcessing
	RequestProcessed
	RequestError
)

func (s OrderRequestStatus) String() string {
	switch s {
	case RequestUnprocessed:
		return "Unprocessed"
	case RequestProcessing:
		return "Processing"
	case RequestProcessed:
		return "Processed"
	case RequestError:
		return "Error"
	}
	return fmt.Sprintf("OrderRequestStatus(%d)", int(s))
}

// OrderRequest is the shared state of submit/update/cancel requests.
// Its response starts as the Unprocessed sentinel and is finalized exactly
// once through SetResponse.
type OrderRequest struct {
	Time    time.Time
	OrderID int64
	Tag     string

	status   OrderRequestStatus
	response *OrderResponse
}

// Status returns the request's processing status.
func (r *OrderRequest) Status() OrderRequestStatus { return r.status }

// MarkProcessing moves an unprocessed request into Processing. Terminal
// requests are left untouched.
func (r *OrderRequest) MarkProcessing() {
	if r.status == RequestUnprocessed {
		r.status = RequestProcessing
	}
}

// Response returns the request response, the Unprocessed sentinel until the
// request has been finalized. Never nil.
func (r *OrderRequest) Response() *OrderResponse {
	if r.response == nil {
		return UnprocessedResponse
	}
	return r.response
}

// SetResponse finalizes the request. It may be called exactly once; calling
// it again, or with a nil response, is a programmer error. An error response
// forces the request status to Error regardless of the requested status.
func (r *OrderRequest) SetResponse(response *OrderResponse, status OrderRequestStatus) {
	if response == nil {
		panic("orders: request response cannot be nil")
	}
	if r.response != nil {
		panic("orders: request response already set")
	}
	r.response = response
	if response.IsError() {
		status = RequestError
	}
	r.status = status
}

// SubmitOrderRequest asks the broker simulation to create a new order.
// OrderID stays zero until the broker assigns one.
type SubmitOrderRequest struct {
	OrderRequest
	Symbol     string
	OrderType  OrderType
	Quantity   decimal.Decimal
	LimitPrice decimal.Decimal
	StopPrice  decimal.Decimal
}

// NewSubmitOrderRequest returns a submit request for the given order shape.
func NewSubmitOrderRequest(symbol string, orderType OrderType, quantity decimal.Decimal, t time.Time, tag string) *SubmitOrderRequest {
	return &SubmitOrderRequest{
		OrderRequest: OrderRequest{Time: t, Tag: tag},
		Symbol:       symbol,
		OrderType:    orderType,
		Quantity:     quantity,
	}
}

// UpdateOrderRequest asks to change quantity/limit/stop/tag of a pending
// order. Nil fields are left unchanged; the order type can never change.
type UpdateOrderRequest struct {
	OrderRequest
	Quantity   *decimal.Decimal
	LimitPrice *decimal.Decimal
	StopPrice  *decimal.Decimal
	Tag        *string
}

// NewUpdateOrderRequest returns an update request against orderID.
func NewUpdateOrderRequest(orderID int64, t time.Time) *UpdateOrderRequest {
	return &UpdateOrderRequest{OrderRequest: OrderRequest{Time: t, OrderID: orderID}}
}

// CancelOrderRequest asks to cancel a pending order.
type CancelOrderRequest struct {
	OrderRequest
}

// NewCancelOrderRequest returns a cancel request against orderID.
func NewCancelOrderRequest(orderID int64, t time.Time, tag string) *CancelOrderRequest {
	return &CancelOrderRequest{OrderRequest: OrderRequest{Time: t, OrderID: orderID, Tag: tag}}
}
