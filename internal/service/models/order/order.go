package order

import (
	"database/sql/driver"
	"time"

	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/orderline"
)

type Status string

const (
	StatusPaymentWaiting Status = "PAYMENT_WAITING"
	StatusPreparing      Status = "PREPARING"
	StatusServe          Status = "SERVE"
	StatusCompleted      Status = "COMPLETED"
	StatusPaymentFailed  Status = "PAYMENT_FAILED"
	StatusCanceled       Status = "CANCELED"
)

var (
	ErrMemberIDRequired = apperrors.New(apperrors.KindValidation, "order member id is required")
	ErrOrderLinesEmpty  = apperrors.New(apperrors.KindValidation, "order must contain at least one order line")
	ErrInvalidStatus    = apperrors.New(apperrors.KindValidation, "invalid order status")
	ErrAlreadyCanceled  = apperrors.New(apperrors.KindConflict, "order is already canceled")
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusPaymentWaiting, StatusPreparing, StatusServe,
		StatusCompleted, StatusPaymentFailed, StatusCanceled:
		return Status(v), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order is the order aggregate. Lines are fixed at creation; the status moves
// only through the transition methods below.
type Order struct {
	ID         int64                 `json:"id"`
	MemberID   int64                 `json:"memberId"`
	Status     Status                `json:"status"`
	OrderLines []orderline.OrderLine `json:"orderLines"`
	TotalPrice money.Money           `json:"totalPrice"`
	PlacedAt   time.Time             `json:"placedAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// New creates an order in PAYMENT_WAITING with the total derived from its lines.
func New(memberID int64, lines []orderline.OrderLine) (*Order, error) {
	if memberID == 0 {
		return nil, ErrMemberIDRequired
	}
	if len(lines) == 0 {
		return nil, ErrOrderLinesEmpty
	}

	now := time.Now()

	return &Order{
		MemberID:   memberID,
		Status:     StatusPaymentWaiting,
		OrderLines: lines,
		TotalPrice: CalculateTotalPrice(lines),
		PlacedAt:   now,
		UpdatedAt:  now,
	}, nil
}

// CalculateTotalPrice sums the line totals.
func CalculateTotalPrice(lines []orderline.OrderLine) money.Money {
	total := money.Zero()
	for _, line := range lines {
		total = total.Add(line.TotalPrice())
	}

	return total
}

// CompletePayment moves PAYMENT_WAITING to PREPARING.
func (o *Order) CompletePayment() error {
	if o.Status != StatusPaymentWaiting {
		return apperrors.Newf(apperrors.KindConflict,
			"order is not awaiting payment, current status: %s", o.Status)
	}

	o.setStatus(StatusPreparing)

	return nil
}

// FailPayment moves PAYMENT_WAITING to PAYMENT_FAILED.
func (o *Order) FailPayment() error {
	if o.Status != StatusPaymentWaiting {
		return apperrors.Newf(apperrors.KindConflict,
			"order is not awaiting payment, current status: %s", o.Status)
	}

	o.setStatus(StatusPaymentFailed)

	return nil
}

// StartServing moves PREPARING to SERVE.
func (o *Order) StartServing() error {
	if o.Status != StatusPreparing {
		return apperrors.Newf(apperrors.KindConflict,
			"order is not being prepared, current status: %s", o.Status)
	}

	o.setStatus(StatusServe)

	return nil
}

// CompleteServing moves SERVE to COMPLETED.
func (o *Order) CompleteServing() error {
	if o.Status != StatusServe {
		return apperrors.Newf(apperrors.KindConflict,
			"order is not being served, current status: %s", o.Status)
	}

	o.setStatus(StatusCompleted)

	return nil
}

// Cancel moves the order to CANCELED. Orders already canceled fail with
// ErrAlreadyCanceled; orders in SERVE or COMPLETED cannot be canceled.
func (o *Order) Cancel() error {
	if o.Status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	if o.Status == StatusServe || o.Status == StatusCompleted {
		return apperrors.Newf(apperrors.KindConflict,
			"order cannot be canceled, current status: %s", o.Status)
	}

	o.setStatus(StatusCanceled)

	return nil
}

func (o *Order) setStatus(status Status) {
	o.Status = status
	o.UpdatedAt = time.Now()
}
