package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/iorderlinerepo"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/iorderrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/ioutboxrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/postgres"
	orderrepo "github.com/y00ns00/cafe-mobile-order/internal/dal/repositories/order/postgres"
	orderlinerepo "github.com/y00ns00/cafe-mobile-order/internal/dal/repositories/orderline/postgres"
	outboxrepo "github.com/y00ns00/cafe-mobile-order/internal/dal/repositories/outbox/postgres"
)

// unitOfWork binds the order-side repositories to a single transaction.
// Before Begin the repositories run against the pool directly.
type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorderrepo.IOrderRepository
	orderLineRepo iorderlinerepo.IOrderLineRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	pool := client.Pool()

	return &unitOfWork{
		pool:          pool,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderLineRepo: orderlinerepo.NewPostgresOrderLineRepository(pool),
		outboxRepo:    outboxrepo.NewOutboxRepository(pool),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderLineRepository() iorderlinerepo.IOrderLineRepository {
	return u.orderLineRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	// Rebind repositories to the transaction
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderLineRepo = orderlinerepo.NewPostgresOrderLineRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
