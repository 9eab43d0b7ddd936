package product

import (
	"database/sql/driver"
	"time"

	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
)

type Status string

const (
	StatusAvailable    Status = "AVAILABLE"
	StatusSoldOut      Status = "SOLD_OUT"
	StatusHidden       Status = "HIDDEN"
	StatusDiscontinued Status = "DISCONTINUED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// Product is the catalog snapshot consumed during order placement.
type Product struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Price     money.Money `json:"price"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// IsSellable reports whether the product may appear on a new order.
func (p Product) IsSellable() bool {
	return p.Status == StatusAvailable
}
