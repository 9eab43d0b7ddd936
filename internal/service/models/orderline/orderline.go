package orderline

import (
	"time"

	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
)

var (
	ErrProductIDRequired   = apperrors.New(apperrors.KindValidation, "order line product id is required")
	ErrProductNameRequired = apperrors.New(apperrors.KindValidation, "order line product name is required")
	ErrQuantityInvalid     = apperrors.New(apperrors.KindValidation, "order line quantity must be at least 1")
)

// OrderLine is a product snapshot within an order. Name and unit price are
// captured at order time so later catalog changes do not alter placed orders.
type OrderLine struct {
	ID          int64       `json:"id"`
	OrderID     int64       `json:"orderId"`
	ProductID   int64       `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Money `json:"unitPrice"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// New creates an order line from a product snapshot.
func New(productID int64, productName string, quantity int, unitPrice money.Money) (OrderLine, error) {
	if productID == 0 {
		return OrderLine{}, ErrProductIDRequired
	}
	if productName == "" {
		return OrderLine{}, ErrProductNameRequired
	}
	if quantity < 1 {
		return OrderLine{}, ErrQuantityInvalid
	}

	return OrderLine{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}

// TotalPrice is the unit price multiplied by the quantity.
func (l OrderLine) TotalPrice() money.Money {
	total, _ := l.UnitPrice.Multiply(l.Quantity)

	return total
}
