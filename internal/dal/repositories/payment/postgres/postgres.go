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
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
)

var paymentColumns = []string{
	"payment_key",
	"order_id",
	"member_id",
	"member_name",
	"birth_date",
	"phone",
	"amount::text",
	"amount_currency",
	"status",
	"created_at",
	"updated_at",
}

// PaymentDal represents the payment data access layer model.
type PaymentDal struct {
	PaymentKey     string    `db:"payment_key"`
	OrderId        int64     `db:"order_id"`
	MemberId       int64     `db:"member_id"`
	MemberName     string    `db:"member_name"`
	BirthDate      string    `db:"birth_date"`
	Phone          string    `db:"phone"`
	Amount         string    `db:"amount"`
	AmountCurrency string    `db:"amount_currency"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ToModel converts PaymentDal to the service layer Payment model.
func (p *PaymentDal) ToModel() (*payment.Payment, error) {
	status, err := payment.ParseStatus(p.Status)
	if err != nil {
		return nil, err
	}

	amount, err := money.Parse(p.Amount)
	if err != nil {
		return nil, err
	}
	if _, err := money.ParseCurrency(p.AmountCurrency); err != nil {
		return nil, err
	}

	return &payment.Payment{
		PaymentKey: p.PaymentKey,
		OrderID:    p.OrderId,
		MemberID:   p.MemberId,
		MemberName: p.MemberName,
		BirthDate:  p.BirthDate,
		Phone:      p.Phone,
		Amount:     amount,
		Status:     status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}, nil
}

type PostgresPaymentRepository struct {
	conn postgres.DBTX
}

func NewPostgresPaymentRepository(conn postgres.DBTX) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		conn: conn,
	}
}

// Insert persists a new payment record.
func (r *PostgresPaymentRepository) Insert(ctx context.Context, p payment.Payment) error {
	query, args, err := sq.Insert("payments").
		Columns(
			"payment_key",
			"order_id",
			"member_id",
			"member_name",
			"birth_date",
			"phone",
			"amount",
			"amount_currency",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			p.PaymentKey,
			p.OrderID,
			p.MemberID,
			p.MemberName,
			p.BirthDate,
			p.Phone,
			p.Amount.String(),
			p.Amount.Currency(),
			p.Status,
			p.CreatedAt,
			p.UpdatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// GetByKey retrieves a payment by its payment key.
func (r *PostgresPaymentRepository) GetByKey(ctx context.Context, paymentKey string) (*payment.Payment, error) {
	return r.getOne(ctx, sq.Eq{"payment_key": paymentKey},
		fmt.Sprintf("payment not found, payment key: %s", paymentKey))
}

// GetByOrderID retrieves the payment of an order.
func (r *PostgresPaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*payment.Payment, error) {
	return r.getOne(ctx, sq.Eq{"order_id": orderID},
		fmt.Sprintf("payment not found, order id: %d", orderID))
}

func (r *PostgresPaymentRepository) getOne(ctx context.Context, where sq.Eq, notFoundMsg string) (*payment.Payment, error) {
	query, args, err := sq.Select(paymentColumns...).
		From("payments").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal PaymentDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.PaymentKey,
		&dal.OrderId,
		&dal.MemberId,
		&dal.MemberName,
		&dal.BirthDate,
		&dal.Phone,
		&dal.Amount,
		&dal.AmountCurrency,
		&dal.Status,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.New(apperrors.KindNotFound, notFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return dal.ToModel()
}

// Query retrieves payments based on filter criteria. The reconciler's primary
// query path is all payments where status = CANCELED.
func (r *PostgresPaymentRepository) Query(ctx context.Context, filter *payment.QueryPaymentsModel) ([]payment.Payment, error) {
	builder := sq.Select(paymentColumns...).
		From("payments").
		OrderBy("created_at").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": filter.Statuses})
	}
	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderIds})
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
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var result []payment.Payment
	for rows.Next() {
		var dal PaymentDal
		err := rows.Scan(
			&dal.PaymentKey,
			&dal.OrderId,
			&dal.MemberId,
			&dal.MemberName,
			&dal.BirthDate,
			&dal.Phone,
			&dal.Amount,
			&dal.AmountCurrency,
			&dal.Status,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert payment dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus applies a state transition result to the stored payment.
func (r *PostgresPaymentRepository) UpdateStatus(ctx context.Context, paymentKey string, status payment.Status, updatedAt time.Time) error {
	query, args, err := sq.Update("payments").
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"payment_key": paymentKey}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.KindNotFound, "payment not found, payment key: %s", paymentKey)
	}

	return nil
}
