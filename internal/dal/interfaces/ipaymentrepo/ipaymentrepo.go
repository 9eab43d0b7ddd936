package ipaymentrepo

import (
	"context"
	"time"

	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
)

// IPaymentRepository is an interface for the payment postgres repository.
type IPaymentRepository interface {
	Insert(ctx context.Context, p payment.Payment) error
	GetByKey(ctx context.Context, paymentKey string) (*payment.Payment, error)
	GetByOrderID(ctx context.Context, orderID int64) (*payment.Payment, error)
	Query(ctx context.Context, filter *payment.QueryPaymentsModel) ([]payment.Payment, error)
	UpdateStatus(ctx context.Context, paymentKey string, status payment.Status, updatedAt time.Time) error
}
