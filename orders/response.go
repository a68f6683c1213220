package orders

import "fmt"

// OrderResponseErrorCode classifies why a request was rejected.
type OrderResponseErrorCode int

const (
	ErrorNone OrderResponseErrorCode = iota
	ErrorProcessingError
	ErrorOrderNotFound
	ErrorInvalidOrderStatus
	ErrorZeroQuantity
	ErrorUnsupportedRequest
)

func (c OrderResponseErrorCode) String() string {
	switch c {
	case ErrorNone:
		return "None"
	case ErrorProcessingError:
		return "ProcessingError"
	case ErrorOrderNotFound:
		return "OrderNotFound"
	case ErrorInvalidOrderStatus:
		return "InvalidOrderStatus"
	case ErrorZeroQuantity:
		return "ZeroQuantity"
	case ErrorUnsupportedRequest:
		return "UnsupportedRequest"
	}
	return fmt.Sprintf("OrderResponseErrorCode(%d)", int(c))
}

// OrderResponse is the result attached to a finalized OrderRequest.
type OrderResponse struct {
	OrderID      int64
	ErrorCode    OrderResponseErrorCode
	ErrorMessage string

	unprocessed bool
}

// UnprocessedResponse is the sentinel returned by OrderRequest.Response
// before the request has been finalized.
var UnprocessedResponse = &OrderResponse{unprocessed: true}

// SuccessResponse returns a non-error response for orderID.
func SuccessResponse(orderID int64) *OrderResponse {
	return &OrderResponse{OrderID: orderID}
}

// ErrorResponse returns an error response for orderID.
func ErrorResponse(orderID int64, code OrderResponseErrorCode, message string) *OrderResponse {
	return &OrderResponse{OrderID: orderID, ErrorCode: code, ErrorMessage: message}
}

// IsError reports whether the response signals a rejected request.
func (r *OrderResponse) IsError() bool { return !r.unprocessed && r.ErrorCode != ErrorNone }

// IsProcessed reports whether the response is a real result rather than the
// Unprocessed sentinel.
func (r *OrderResponse) IsProcessed() bool { return !r.unprocessed }
