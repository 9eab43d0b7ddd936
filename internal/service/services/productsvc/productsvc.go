package productsvc

import (
	"context"

	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/iproductrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/product"
)

// ProductService is the in-process implementation of the catalog capability.
type ProductService struct {
	productRepo iproductrepo.IProductRepository
}

// option is a function that configures the ProductService.
type option func(*ProductService)

// MustNewProductService creates a new ProductService.
func MustNewProductService(opts ...option) *ProductService {
	s := &ProductService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithProductRepository sets the product repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *ProductService) {
		s.productRepo = repo
	}
}

// FindSellableByIDs returns the currently sellable products among ids.
func (s *ProductService) FindSellableByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	return s.productRepo.FindSellableByIDs(ctx, ids)
}
