package iproductrepo

import (
	"context"

	"github.com/y00ns00/cafe-mobile-order/internal/service/models/product"
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	// FindSellableByIDs returns products among ids whose status allows sale.
	FindSellableByIDs(ctx context.Context, ids []int64) ([]product.Product, error)
}
