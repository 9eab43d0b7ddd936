package iorderlinerepo

import (
	"context"

	"github.com/y00ns00/cafe-mobile-order/internal/service/models/orderline"
)

// IOrderLineRepository is an interface for the order line postgres repository.
type IOrderLineRepository interface {
	BulkInsert(ctx context.Context, lines []orderline.OrderLine) ([]orderline.OrderLine, error)
	QueryByOrderIDs(ctx context.Context, orderIDs []int64) ([]orderline.OrderLine, error)
}
