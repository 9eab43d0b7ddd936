package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/postgres"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/orderline"
)

var orderColumns = []string{
	"id",
	"member_id",
	"status",
	"total_price::text",
	"total_price_currency",
	"placed_at",
	"updated_at",
}

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                 int64     `db:"id"`
	MemberId           int64     `db:"member_id"`
	Status             string    `db:"status"`
	TotalPrice         string    `db:"total_price"`
	TotalPriceCurrency string    `db:"total_price_currency"`
	PlacedAt           time.Time `db:"placed_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	total, err := money.Parse(o.TotalPrice)
	if err != nil {
		return nil, err
	}
	if _, err := money.ParseCurrency(o.TotalPriceCurrency); err != nil {
		return nil, err
	}

	return &order.Order{
		ID:         o.Id,
		MemberID:   o.MemberId,
		Status:     status,
		TotalPrice: total,
		PlacedAt:   o.PlacedAt,
		UpdatedAt:  o.UpdatedAt,
		OrderLines: []orderline.OrderLine{}, // Will be populated separately
	}, nil
}

type PostgresOrderRepository struct {
	conn postgres.DBTX
}

func NewPostgresOrderRepository(conn postgres.DBTX) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

// Insert persists a new order and returns it with the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := sq.Insert("orders").
		Columns(
			"member_id",
			"status",
			"total_price",
			"total_price_currency",
			"placed_at",
			"updated_at",
		).
		Values(
			o.MemberID,
			o.Status,
			o.TotalPrice.String(),
			o.TotalPrice.Currency(),
			o.PlacedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// GetByID retrieves a single order without its lines.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.MemberId,
		&dal.Status,
		&dal.TotalPrice,
		&dal.TotalPriceCurrency,
		&dal.PlacedAt,
		&dal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "order not found, id: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return dal.ToModel()
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		OrderBy("id").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.MemberIds) > 0 {
		builder = builder.Where(sq.Eq{"member_id": filter.MemberIds})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.MemberId,
			&dal.Status,
			&dal.TotalPrice,
			&dal.TotalPriceCurrency,
			&dal.PlacedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus applies a state transition result to the stored order.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status, updatedAt time.Time) error {
	query, args, err := sq.Update("orders").
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.KindNotFound, "order not found, id: %d", id)
	}

	return nil
}
