package ordersvc

import (
	"context"
	"log/slog"

	"github.com/spf13/viper"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/iorderlinerepo"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/iorderrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/ioutboxrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/postgres"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/uow"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/orderline"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/outbox"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/product"
	"github.com/y00ns00/cafe-mobile-order/internal/service/ports"
	"github.com/y00ns00/cafe-mobile-order/pkg/metrics"
	"go.opentelemetry.io/otel"
)

var ErrMemberNotActive = apperrors.New(apperrors.KindValidation, "member is not active")

// OrderLineRequest is one requested line of a new order.
type OrderLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderLineRepository() iorderlinerepo.IOrderLineRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// OrderService orchestrates order placement and cancellation across the
// member, product and payment collaborators.
type OrderService struct {
	pgClient    *postgres.Client
	newUOW      func() unitOfWork
	memberPort  ports.MemberPort
	productPort ports.ProductPort
	paymentPort ports.PaymentPort
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides the unit-of-work factory.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithMemberPort sets the member capability.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMemberPort(port ports.MemberPort) option {
	return func(s *OrderService) {
		s.memberPort = port
	}
}

// WithProductPort sets the product catalog capability.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductPort(port ports.ProductPort) option {
	return func(s *OrderService) {
		s.productPort = port
	}
}

// WithPaymentPort sets the payment capability.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPaymentPort(port ports.PaymentPort) option {
	return func(s *OrderService) {
		s.paymentPort = port
	}
}

// PlaceOrder runs the placement saga: validate the member and products, persist
// the order in PAYMENT_WAITING, authorize payment in its own transaction scope,
// then apply the outcome to the order. A declined payment returns a
// PAYMENT_FAILED order, never an error; only validation fails the call.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	memberID int64,
	lineRequests []OrderLineRequest,
) (*order.Order, error) {
	ctx, span := otel.Tracer("cafe-order").Start(ctx, "ordersvc.PlaceOrder")
	defer span.End()

	if len(lineRequests) == 0 {
		return nil, order.ErrOrderLinesEmpty
	}

	m, err := s.memberPort.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive() {
		return nil, ErrMemberNotActive
	}

	productMap, err := s.loadSellableProducts(ctx, lineRequests)
	if err != nil {
		return nil, err
	}

	lines := make([]orderline.OrderLine, 0, len(lineRequests))
	for _, req := range lineRequests {
		p := productMap[req.ProductID]
		line, err := orderline.New(p.ID, p.Name, req.Quantity, p.Price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	ord, err := order.New(memberID, lines)
	if err != nil {
		return nil, err
	}

	saved, err := s.persistNewOrder(ctx, *ord)
	if err != nil {
		return nil, err
	}

	// The payment runs in its own transaction boundary: the gateway side
	// effect must survive whatever happens to the order transaction.
	pay, err := s.paymentPort.ProcessPayment(ctx, saved.ID, memberID, saved.TotalPrice)
	if err != nil {
		return nil, err
	}

	if pay.Status == payment.StatusSuccess {
		err = saved.CompletePayment()
	} else {
		err = saved.FailPayment()
	}
	if err != nil {
		return nil, err
	}

	if err := s.persistStatusWithEvent(ctx, saved, outbox.EventOrderPlaced); err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.WithLabelValues(saved.Status.String()).Inc()
	slog.Info("order placed",
		"order_id", saved.ID,
		"member_id", memberID,
		"status", saved.Status,
		"total_price", saved.TotalPrice.String(),
	)

	return saved, nil
}

// loadSellableProducts fetches the sellable products for the requested ids in
// one batch and fails fast, naming every missing id, before anything is persisted.
func (s *OrderService) loadSellableProducts(
	ctx context.Context,
	lineRequests []OrderLineRequest,
) (map[int64]product.Product, error) {
	requestedIDs := make([]int64, 0, len(lineRequests))
	seen := make(map[int64]struct{}, len(lineRequests))
	for _, req := range lineRequests {
		if _, ok := seen[req.ProductID]; ok {
			continue
		}
		seen[req.ProductID] = struct{}{}
		requestedIDs = append(requestedIDs, req.ProductID)
	}

	products, err := s.productPort.FindSellableByIDs(ctx, requestedIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[int64]product.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	var missing []int64
	for _, id := range requestedIDs {
		if _, ok := productMap[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.Newf(apperrors.KindValidation,
			"products not found or unavailable, ids: %v", missing)
	}

	return productMap, nil
}

func (s *OrderService) persistNewOrder(ctx context.Context, ord order.Order) (*order.Order, error) {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	saved, err := work.OrderRepository().Insert(ctx, ord)
	if err != nil {
		_ = work.Rollback(ctx)
		return nil, err
	}

	lines := saved.OrderLines
	for i := range lines {
		lines[i].OrderID = saved.ID
	}
	savedLines, err := work.OrderLineRepository().BulkInsert(ctx, lines)
	if err != nil {
		_ = work.Rollback(ctx)
		return nil, err
	}
	saved.OrderLines = savedLines

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return &saved, nil
}

// persistStatusWithEvent stores the order's current status together with the
// matching lifecycle event in one transaction.
func (s *OrderService) persistStatusWithEvent(ctx context.Context, ord *order.Order, eventType string) error {
	msg, err := outbox.NewOrderEventMessage(eventType, viper.GetString("rabbitmq.order_events.queue"), ord)
	if err != nil {
		return err
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return err
	}

	if err := work.OrderRepository().UpdateStatus(ctx, ord.ID, ord.Status, ord.UpdatedAt); err != nil {
		_ = work.Rollback(ctx)
		return err
	}

	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		_ = work.Rollback(ctx)
		return err
	}

	return work.Commit(ctx)
}

// CancelOrder cancels the member's order and records local cancellation intent
// for its payment. The gateway-side cancellation is not awaited here; the
// reconciler drives it to completion afterwards.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, memberID int64) (*order.Order, error) {
	ctx, span := otel.Tracer("cafe-order").Start(ctx, "ordersvc.CancelOrder")
	defer span.End()

	ord, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if ord.MemberID != memberID {
		return nil, apperrors.Newf(apperrors.KindForbidden,
			"order %d does not belong to member %d", orderID, memberID)
	}

	if err := ord.Cancel(); err != nil {
		return nil, err
	}

	if err := s.paymentPort.CancelPayment(ctx, orderID); err != nil {
		return nil, err
	}

	if err := s.persistStatusWithEvent(ctx, ord, outbox.EventOrderCanceled); err != nil {
		return nil, err
	}

	slog.Info("order canceled", "order_id", orderID, "member_id", memberID)

	return ord, nil
}

// GetOrder retrieves an order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	ord, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := work.OrderLineRepository().QueryByOrderIDs(ctx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.OrderLines = lines

	return ord, nil
}

// GetOrders retrieves orders with their lines based on filter.
func (s *OrderService) GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	lines, err := work.OrderLineRepository().QueryByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, line := range lines {
			if line.OrderID == orders[i].ID {
				orders[i].OrderLines = append(orders[i].OrderLines, line)
			}
		}
	}

	return orders, nil
}
