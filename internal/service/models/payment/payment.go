package payment

import (
	"database/sql/driver"
	"time"

	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
)

type Status string

const (
	// StatusPending is the initial state before the gateway answers.
	StatusPending Status = "PENDING"
	// StatusSuccess means the gateway authorized the payment.
	StatusSuccess Status = "SUCCESS"
	// StatusFailed means the gateway declined; terminal.
	StatusFailed Status = "FAILED"
	// StatusCanceled means cancellation is recorded locally but the gateway
	// has not confirmed it yet.
	StatusCanceled Status = "CANCELED"
	// StatusCancelCompleted means the gateway confirmed the cancellation; terminal.
	StatusCancelCompleted Status = "CANCEL_COMPLETED"
)

var (
	ErrInvalidStatus      = apperrors.New(apperrors.KindValidation, "invalid payment status")
	ErrPaymentKeyRequired = apperrors.New(apperrors.KindValidation, "payment key is required")
	ErrOrderIDRequired    = apperrors.New(apperrors.KindValidation, "payment order id is required")
	ErrMemberIDRequired   = apperrors.New(apperrors.KindValidation, "payment member id is required")
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusPending, StatusSuccess, StatusFailed, StatusCanceled, StatusCancelCompleted:
		return Status(v), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Payment is the payment record of one order, keyed by an opaque payment key.
// The amount is fixed at authorization time and never changes afterwards.
type Payment struct {
	PaymentKey string      `json:"paymentKey"`
	OrderID    int64       `json:"orderId"`
	MemberID   int64       `json:"memberId"`
	MemberName string      `json:"memberName"`
	BirthDate  string      `json:"birthDate"`
	Phone      string      `json:"phone"`
	Amount     money.Money `json:"amount"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// New creates a PENDING payment for an order.
func New(
	paymentKey string,
	orderID int64,
	memberID int64,
	memberName string,
	birthDate string,
	phone string,
	amount money.Money,
) (*Payment, error) {
	if paymentKey == "" {
		return nil, ErrPaymentKeyRequired
	}
	if orderID == 0 {
		return nil, ErrOrderIDRequired
	}
	if memberID == 0 {
		return nil, ErrMemberIDRequired
	}

	now := time.Now()

	return &Payment{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		MemberID:   memberID,
		MemberName: memberName,
		BirthDate:  birthDate,
		Phone:      phone,
		Amount:     amount,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// MarkAsSuccess records a successful gateway authorization.
func (p *Payment) MarkAsSuccess() {
	p.setStatus(StatusSuccess)
}

// MarkAsFailed records a declined gateway authorization.
func (p *Payment) MarkAsFailed() {
	p.setStatus(StatusFailed)
}

// MarkAsCanceled records local cancellation intent. No prior-status guard:
// the reconciler re-checks the status before acting, and a payment stranded
// in PENDING by a crash must stay drainable.
func (p *Payment) MarkAsCanceled() {
	p.setStatus(StatusCanceled)
}

// MarkAsCancelCompleted records gateway-confirmed cancellation.
func (p *Payment) MarkAsCancelCompleted() {
	p.setStatus(StatusCancelCompleted)
}

func (p *Payment) setStatus(status Status) {
	p.Status = status
	p.UpdatedAt = time.Now()
}
