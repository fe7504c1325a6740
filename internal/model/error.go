package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation that the client can correct.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ErrEmptyOrder is returned when an order request contains no items.
var ErrEmptyOrder = NewDomainError(ErrCodeInvalidRequest, "No items in order")

// NewProductNotFoundError reports an order line referencing an unknown product.
func NewProductNotFoundError(productID int64) *DomainError {
	return NewDomainError(ErrCodeProductNotFound,
		fmt.Sprintf("Product %d not found", productID))
}

// NewInvalidQuantityError reports an order line with a non-positive quantity.
func NewInvalidQuantityError(productID int64, quantity int) *DomainError {
	return NewDomainError(ErrCodeInvalidQuantity,
		fmt.Sprintf("Invalid quantity %d for product %d, must be greater than zero", quantity, productID))
}

// NewInsufficientStockError reports an order line exceeding the available stock.
func NewInsufficientStockError(productID int64, available, requested int) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for product %d. Available: %d, Requested: %d", productID, available, requested))
}
