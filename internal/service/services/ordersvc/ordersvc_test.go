package ordersvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/iorderlinerepo"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/iorderrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/ioutboxrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/member"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/orderline"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/outbox"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/product"
)

type fakeOrderRepo struct {
	nextID int64
	orders map[int64]*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*order.Order{}}
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	f.nextID++
	o.ID = f.nextID
	stored := o
	f.orders[o.ID] = &stored

	return o, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperrors.Newf(apperrors.KindNotFound, "order %d not found", id)
	}
	cp := *o

	return &cp, nil
}

func (f *fakeOrderRepo) Query(_ context.Context, _ *order.QueryOrdersModel) ([]order.Order, error) {
	result := make([]order.Order, 0, len(f.orders))
	for _, o := range f.orders {
		result = append(result, *o)
	}

	return result, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status order.Status, updatedAt time.Time) error {
	o, ok := f.orders[id]
	if !ok {
		return apperrors.Newf(apperrors.KindNotFound, "order %d not found", id)
	}
	o.Status = status
	o.UpdatedAt = updatedAt

	return nil
}

type fakeOrderLineRepo struct {
	nextID int64
	lines  []orderline.OrderLine
}

func (f *fakeOrderLineRepo) BulkInsert(_ context.Context, lines []orderline.OrderLine) ([]orderline.OrderLine, error) {
	for i := range lines {
		f.nextID++
		lines[i].ID = f.nextID
	}
	f.lines = append(f.lines, lines...)

	return lines, nil
}

func (f *fakeOrderLineRepo) QueryByOrderIDs(_ context.Context, orderIDs []int64) ([]orderline.OrderLine, error) {
	var result []orderline.OrderLine
	for _, line := range f.lines {
		for _, id := range orderIDs {
			if line.OrderID == id {
				result = append(result, line)
			}
		}
	}

	return result, nil
}

type fakeOutboxRepo struct {
	messages []outbox.OutboxMessage
}

func (f *fakeOutboxRepo) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	f.messages = append(f.messages, msg)

	return nil
}

func (f *fakeOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.OutboxMessage, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) Delete(_ context.Context, _ int64) error { return nil }

func (f *fakeOutboxRepo) UpdateRetry(_ context.Context, _ int64, _ int, _ string, _ time.Time) error {
	return nil
}

type fakeUOW struct {
	orderRepo     *fakeOrderRepo
	orderLineRepo *fakeOrderLineRepo
	outboxRepo    *fakeOutboxRepo
	commits       int
	rollbacks     int
}

func newFakeUOW() *fakeUOW {
	return &fakeUOW{
		orderRepo:     newFakeOrderRepo(),
		orderLineRepo: &fakeOrderLineRepo{},
		outboxRepo:    &fakeOutboxRepo{},
	}
}

func (f *fakeUOW) Begin(_ context.Context) error    { return nil }
func (f *fakeUOW) Commit(_ context.Context) error   { f.commits++; return nil }
func (f *fakeUOW) Rollback(_ context.Context) error { f.rollbacks++; return nil }

func (f *fakeUOW) OrderRepository() iorderrepo.IOrderRepository { return f.orderRepo }

func (f *fakeUOW) OrderLineRepository() iorderlinerepo.IOrderLineRepository {
	return f.orderLineRepo
}

func (f *fakeUOW) OutboxRepository() ioutboxrepo.IOutboxRepository { return f.outboxRepo }

type stubMemberPort struct {
	member member.Member
	err    error
}

func (s *stubMemberPort) GetMember(_ context.Context, _ int64) (member.Member, error) {
	return s.member, s.err
}

type stubProductPort struct {
	products []product.Product
}

func (s *stubProductPort) FindSellableByIDs(_ context.Context, _ []int64) ([]product.Product, error) {
	return s.products, nil
}

type stubPaymentPort struct {
	payStatus      payment.Status
	canceledOrders []int64
}

func (s *stubPaymentPort) ProcessPayment(
	_ context.Context,
	orderID, memberID int64,
	total money.Money,
) (*payment.Payment, error) {
	p, err := payment.New("pay-key-1", orderID, memberID, "Kim", "1990-01-01", "010-1234-5678", total)
	if err != nil {
		return nil, err
	}
	p.Status = s.payStatus

	return p, nil
}

func (s *stubPaymentPort) CancelPayment(_ context.Context, orderID int64) error {
	s.canceledOrders = append(s.canceledOrders, orderID)

	return nil
}

func mustMoney(t *testing.T, amount int64) money.Money {
	t.Helper()
	m, err := money.New(amount)
	require.NoError(t, err)

	return m
}

func activeMember() member.Member {
	return member.Member{ID: 7, Name: "Kim", Status: member.StatusActive}
}

func sellableProducts(t *testing.T) []product.Product {
	return []product.Product{
		{ID: 1, Name: "americano", Price: mustMoney(t, 4500), Status: product.StatusAvailable},
		{ID: 2, Name: "latte", Price: mustMoney(t, 5000), Status: product.StatusAvailable},
	}
}

func newTestService(work *fakeUOW, members *stubMemberPort, products *stubProductPort, payments *stubPaymentPort) *OrderService {
	return MustNewOrderService(
		WithUnitOfWorkFactory(func() unitOfWork { return work }),
		WithMemberPort(members),
		WithProductPort(products),
		WithPaymentPort(payments),
	)
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("successful payment moves order to PREPARING", func(t *testing.T) {
		work := newFakeUOW()
		payments := &stubPaymentPort{payStatus: payment.StatusSuccess}
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{products: sellableProducts(t)}, payments)

		placed, err := svc.PlaceOrder(ctx, 7, []OrderLineRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		})
		require.NoError(t, err)

		assert.Equal(t, order.StatusPreparing, placed.Status)
		assert.True(t, placed.TotalPrice.Equal(mustMoney(t, 14000)))
		require.Len(t, placed.OrderLines, 2)
		for _, line := range placed.OrderLines {
			assert.Equal(t, placed.ID, line.OrderID)
		}

		stored, err := work.orderRepo.GetByID(ctx, placed.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPreparing, stored.Status)

		require.Len(t, work.outboxRepo.messages, 1)
	})

	t.Run("declined payment returns PAYMENT_FAILED order, not an error", func(t *testing.T) {
		work := newFakeUOW()
		payments := &stubPaymentPort{payStatus: payment.StatusFailed}
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{products: sellableProducts(t)}, payments)

		placed, err := svc.PlaceOrder(ctx, 7, []OrderLineRequest{{ProductID: 1, Quantity: 1}})
		require.NoError(t, err)

		assert.Equal(t, order.StatusPaymentFailed, placed.Status)

		stored, err := work.orderRepo.GetByID(ctx, placed.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaymentFailed, stored.Status)
	})

	t.Run("missing products fail validation naming every missing id", func(t *testing.T) {
		work := newFakeUOW()
		// Only product 1 is sellable.
		products := &stubProductPort{products: sellableProducts(t)[:1]}
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, products, &stubPaymentPort{payStatus: payment.StatusSuccess})

		_, err := svc.PlaceOrder(ctx, 7, []OrderLineRequest{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		assert.Contains(t, err.Error(), "2")
		assert.Contains(t, err.Error(), "99")

		// Nothing was persisted.
		assert.Empty(t, work.orderRepo.orders)
		assert.Equal(t, 0, work.commits)
	})

	t.Run("inactive member is rejected", func(t *testing.T) {
		work := newFakeUOW()
		members := &stubMemberPort{member: member.Member{ID: 7, Status: member.StatusDeleted}}
		svc := newTestService(work, members, &stubProductPort{products: sellableProducts(t)}, &stubPaymentPort{payStatus: payment.StatusSuccess})

		_, err := svc.PlaceOrder(ctx, 7, []OrderLineRequest{{ProductID: 1, Quantity: 1}})
		assert.ErrorIs(t, err, ErrMemberNotActive)
	})

	t.Run("empty line requests are rejected", func(t *testing.T) {
		work := newFakeUOW()
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{}, &stubPaymentPort{})

		_, err := svc.PlaceOrder(ctx, 7, nil)
		assert.ErrorIs(t, err, order.ErrOrderLinesEmpty)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	place := func(t *testing.T, work *fakeUOW, payments *stubPaymentPort) *order.Order {
		t.Helper()
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{products: sellableProducts(t)}, payments)
		placed, err := svc.PlaceOrder(ctx, 7, []OrderLineRequest{{ProductID: 1, Quantity: 1}})
		require.NoError(t, err)

		return placed
	}

	t.Run("cancels own order and records payment cancellation intent", func(t *testing.T) {
		work := newFakeUOW()
		payments := &stubPaymentPort{payStatus: payment.StatusSuccess}
		placed := place(t, work, payments)
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{products: sellableProducts(t)}, payments)

		canceled, err := svc.CancelOrder(ctx, placed.ID, 7)
		require.NoError(t, err)

		assert.Equal(t, order.StatusCanceled, canceled.Status)
		assert.Equal(t, []int64{placed.ID}, payments.canceledOrders)

		stored, err := work.orderRepo.GetByID(ctx, placed.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCanceled, stored.Status)

		// order.placed plus order.canceled.
		assert.Len(t, work.outboxRepo.messages, 2)
	})

	t.Run("someone else's order is forbidden", func(t *testing.T) {
		work := newFakeUOW()
		payments := &stubPaymentPort{payStatus: payment.StatusSuccess}
		placed := place(t, work, payments)
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{products: sellableProducts(t)}, payments)

		_, err := svc.CancelOrder(ctx, placed.ID, 8)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	})

	t.Run("double cancel reports already canceled", func(t *testing.T) {
		work := newFakeUOW()
		payments := &stubPaymentPort{payStatus: payment.StatusSuccess}
		placed := place(t, work, payments)
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{products: sellableProducts(t)}, payments)

		_, err := svc.CancelOrder(ctx, placed.ID, 7)
		require.NoError(t, err)

		_, err = svc.CancelOrder(ctx, placed.ID, 7)
		assert.ErrorIs(t, err, order.ErrAlreadyCanceled)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		work := newFakeUOW()
		svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{}, &stubPaymentPort{})

		_, err := svc.CancelOrder(ctx, 999, 7)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestGetOrders(t *testing.T) {
	ctx := context.Background()

	work := newFakeUOW()
	payments := &stubPaymentPort{payStatus: payment.StatusSuccess}
	svc := newTestService(work, &stubMemberPort{member: activeMember()}, &stubProductPort{products: sellableProducts(t)}, payments)

	placed, err := svc.PlaceOrder(ctx, 7, []OrderLineRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)

	orders, err := svc.GetOrders(ctx, &order.QueryOrdersModel{MemberIds: []int64{7}})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
	assert.Len(t, orders[0].OrderLines, 2)
}
