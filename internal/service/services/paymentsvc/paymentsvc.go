package paymentsvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/ipaymentrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
	"github.com/y00ns00/cafe-mobile-order/internal/service/ports"
	"go.opentelemetry.io/otel"
)

// PaymentService manages payment records and the gateway boundary. It runs
// outside the order transaction so a gateway side effect is never rolled back
// by a local order failure.
type PaymentService struct {
	paymentRepo ipaymentrepo.IPaymentRepository
	memberPort  ports.MemberPort
	gateway     ports.PaymentGateway
}

// option is a function that configures the PaymentService.
type option func(*PaymentService)

// MustNewPaymentService creates a new PaymentService.
func MustNewPaymentService(opts ...option) *PaymentService {
	s := &PaymentService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPaymentRepository sets the payment repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPaymentRepository(repo ipaymentrepo.IPaymentRepository) option {
	return func(s *PaymentService) {
		s.paymentRepo = repo
	}
}

// WithMemberPort sets the member capability.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMemberPort(port ports.MemberPort) option {
	return func(s *PaymentService) {
		s.memberPort = port
	}
}

// WithGateway sets the payment gateway client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithGateway(gateway ports.PaymentGateway) option {
	return func(s *PaymentService) {
		s.gateway = gateway
	}
}

// ProcessPayment authorizes the order total against the gateway and persists
// the payment with the outcome already applied. A declined payment comes back
// as a FAILED payment, not as an error.
func (s *PaymentService) ProcessPayment(
	ctx context.Context,
	orderID, memberID int64,
	total money.Money,
) (*payment.Payment, error) {
	ctx, span := otel.Tracer("cafe-order").Start(ctx, "paymentsvc.ProcessPayment")
	defer span.End()

	m, err := s.memberPort.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	p, err := payment.New(
		uuid.NewString(),
		orderID,
		memberID,
		m.Name,
		m.BirthDate,
		m.PhoneNumber,
		total,
	)
	if err != nil {
		return nil, err
	}

	result := s.gateway.Pay(ctx, p.MemberName, p.BirthDate, p.Phone, total.String())

	if result.Success {
		p.MarkAsSuccess()
	} else {
		p.MarkAsFailed()
	}

	if err := s.paymentRepo.Insert(ctx, *p); err != nil {
		return nil, err
	}

	slog.Info("payment processed",
		"payment_key", p.PaymentKey,
		"order_id", orderID,
		"status", p.Status,
	)

	return p, nil
}

// CancelPayment records local cancellation intent for the order's payment.
// The gateway-side cancellation is driven later by the reconciler.
func (s *PaymentService) CancelPayment(ctx context.Context, orderID int64) error {
	p, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	p.MarkAsCanceled()
	if err := s.paymentRepo.UpdateStatus(ctx, p.PaymentKey, p.Status, p.UpdatedAt); err != nil {
		return err
	}

	slog.Info("payment canceled locally", "payment_key", p.PaymentKey, "order_id", orderID)

	return nil
}

// ListCanceled returns the payments awaiting gateway-confirmed cancellation.
func (s *PaymentService) ListCanceled(ctx context.Context) ([]payment.Payment, error) {
	return s.paymentRepo.Query(ctx, &payment.QueryPaymentsModel{
		Statuses: []payment.Status{payment.StatusCanceled},
	})
}

// ProcessCanceledPayment drives one locally-canceled payment to
// gateway-confirmed cancellation. The status is re-checked right before
// acting so overlapping reconciler runs never double-apply, and a gateway
// failure leaves the payment CANCELED for the next run.
func (s *PaymentService) ProcessCanceledPayment(ctx context.Context, paymentKey string) error {
	ctx, span := otel.Tracer("cafe-order").Start(ctx, "paymentsvc.ProcessCanceledPayment")
	defer span.End()

	p, err := s.paymentRepo.GetByKey(ctx, paymentKey)
	if err != nil {
		return err
	}

	if p.Status != payment.StatusCanceled {
		slog.Warn("payment no longer awaiting cancel, skipping",
			"payment_key", paymentKey,
			"status", p.Status,
		)

		return nil
	}

	result := <-s.gateway.Cancel(ctx, paymentKey)
	if !result.Success {
		return fmt.Errorf("gateway cancel failed for payment %s: %s", paymentKey, result.Message)
	}

	p.MarkAsCancelCompleted()
	if err := s.paymentRepo.UpdateStatus(ctx, p.PaymentKey, p.Status, p.UpdatedAt); err != nil {
		return err
	}

	slog.Info("payment cancel confirmed by gateway", "payment_key", paymentKey, "order_id", p.OrderID)

	return nil
}

// GetPayment retrieves a payment by its key.
func (s *PaymentService) GetPayment(ctx context.Context, paymentKey string) (*payment.Payment, error) {
	return s.paymentRepo.GetByKey(ctx, paymentKey)
}

// QueryPayments retrieves payments based on filter criteria.
func (s *PaymentService) QueryPayments(ctx context.Context, filter *payment.QueryPaymentsModel) ([]payment.Payment, error) {
	return s.paymentRepo.Query(ctx, filter)
}
