package iorderrepo

import (
	"context"
	"time"

	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
// Order lines are handled by their own repository; callers stitch them in.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id int64, status order.Status, updatedAt time.Time) error
}
