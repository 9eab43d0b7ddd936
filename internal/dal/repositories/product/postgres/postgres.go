package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/postgres"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/product"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id            int64     `db:"id"`
	Name          string    `db:"name"`
	Price         string    `db:"price"`
	PriceCurrency string    `db:"price_currency"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	price, err := money.Parse(p.Price)
	if err != nil {
		return nil, err
	}
	if _, err := money.ParseCurrency(p.PriceCurrency); err != nil {
		return nil, err
	}

	return &product.Product{
		ID:        p.Id,
		Name:      p.Name,
		Price:     price,
		Status:    product.Status(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

type PostgresProductRepository struct {
	conn postgres.DBTX
}

func NewPostgresProductRepository(conn postgres.DBTX) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
	}
}

// FindSellableByIDs retrieves the currently sellable products among ids.
func (r *PostgresProductRepository) FindSellableByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	query, args, err := sq.Select(
		"id",
		"name",
		"price::text",
		"price_currency",
		"status",
		"created_at",
		"updated_at",
	).
		From("products").
		Where(sq.Eq{"id": ids}).
		Where(sq.Eq{"status": product.StatusAvailable}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Price,
			&dal.PriceCurrency,
			&dal.Status,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert product dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
