package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/postgres"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/orderline"
)

var orderLineColumns = []string{
	"id",
	"order_id",
	"product_id",
	"product_name",
	"quantity",
	"unit_price::text",
	"unit_price_currency",
	"created_at",
	"updated_at",
}

// OrderLineDal represents the order line data access layer model.
type OrderLineDal struct {
	Id                int64     `db:"id"`
	OrderId           int64     `db:"order_id"`
	ProductId         int64     `db:"product_id"`
	ProductName       string    `db:"product_name"`
	Quantity          int       `db:"quantity"`
	UnitPrice         string    `db:"unit_price"`
	UnitPriceCurrency string    `db:"unit_price_currency"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// ToModel converts OrderLineDal to the service layer OrderLine model.
func (l *OrderLineDal) ToModel() (*orderline.OrderLine, error) {
	unitPrice, err := money.Parse(l.UnitPrice)
	if err != nil {
		return nil, err
	}
	if _, err := money.ParseCurrency(l.UnitPriceCurrency); err != nil {
		return nil, err
	}

	return &orderline.OrderLine{
		ID:          l.Id,
		OrderID:     l.OrderId,
		ProductID:   l.ProductId,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, nil
}

type PostgresOrderLineRepository struct {
	conn postgres.DBTX
}

func NewPostgresOrderLineRepository(conn postgres.DBTX) *PostgresOrderLineRepository {
	return &PostgresOrderLineRepository{
		conn: conn,
	}
}

// BulkInsert inserts the order lines and returns them with generated ids.
func (r *PostgresOrderLineRepository) BulkInsert(ctx context.Context, lines []orderline.OrderLine) ([]orderline.OrderLine, error) {
	if len(lines) == 0 {
		return []orderline.OrderLine{}, nil
	}

	now := time.Now()

	builder := sq.Insert("order_lines").
		Columns(
			"order_id",
			"product_id",
			"product_name",
			"quantity",
			"unit_price",
			"unit_price_currency",
			"created_at",
			"updated_at",
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar)

	for _, line := range lines {
		builder = builder.Values(
			line.OrderID,
			line.ProductID,
			line.ProductName,
			line.Quantity,
			line.UnitPrice.String(),
			line.UnitPrice.Currency(),
			now,
			now,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order lines: %w", err)
	}
	defer rows.Close()

	result := make([]orderline.OrderLine, 0, len(lines))
	i := 0
	for rows.Next() {
		line := lines[i]
		if err := rows.Scan(&line.ID); err != nil {
			return nil, fmt.Errorf("failed to scan order line id: %w", err)
		}
		line.CreatedAt = now
		line.UpdatedAt = now
		result = append(result, line)
		i++
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryByOrderIDs retrieves the lines of the given orders.
func (r *PostgresOrderLineRepository) QueryByOrderIDs(ctx context.Context, orderIDs []int64) ([]orderline.OrderLine, error) {
	if len(orderIDs) == 0 {
		return []orderline.OrderLine{}, nil
	}

	query, args, err := sq.Select(orderLineColumns...).
		From("order_lines").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var result []orderline.OrderLine
	for rows.Next() {
		var dal OrderLineDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.Quantity,
			&dal.UnitPrice,
			&dal.UnitPriceCurrency,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order line dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
