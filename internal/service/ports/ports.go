package ports

import (
	"context"

	"github.com/y00ns00/cafe-mobile-order/internal/service/models/member"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/product"
)

// MemberPort is the member capability consumed by the orchestrators. The saga
// must not know whether the implementation is in-process or remote.
type MemberPort interface {
	GetMember(ctx context.Context, memberID int64) (member.Member, error)
}

// ProductPort is the read-only catalog capability consumed during placement.
type ProductPort interface {
	// FindSellableByIDs returns the currently sellable products among ids.
	// Requested ids absent from the result are unavailable.
	FindSellableByIDs(ctx context.Context, ids []int64) ([]product.Product, error)
}

// PaymentPort is the payment capability consumed by the order orchestrators.
type PaymentPort interface {
	// ProcessPayment authorizes the order total against the gateway and
	// persists the payment with the outcome applied. The gateway outcome is
	// carried in the returned payment status, never as an error.
	ProcessPayment(ctx context.Context, orderID, memberID int64, total money.Money) (*payment.Payment, error)

	// CancelPayment records local cancellation intent for the order's payment.
	CancelPayment(ctx context.Context, orderID int64) error
}

// GatewayResult is the outcome of a payment gateway call.
type GatewayResult struct {
	Success    bool
	Message    string
	PaymentKey string
}

// PaymentGateway is the external payment processor boundary. Pay blocks for
// the gateway round-trip; Cancel returns immediately with a handle delivering
// exactly one result.
type PaymentGateway interface {
	Pay(ctx context.Context, name, birthDate, phone, amount string) GatewayResult
	Cancel(ctx context.Context, paymentKey string) <-chan GatewayResult
}
