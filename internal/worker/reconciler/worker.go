package reconciler

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
	"github.com/y00ns00/cafe-mobile-order/pkg/metrics"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/semaphore"
)

// service represents the payment service surface the reconciler drives.
type service interface {
	ListCanceled(ctx context.Context) ([]payment.Payment, error)
	ProcessCanceledPayment(ctx context.Context, paymentKey string) error
}

// Worker periodically drives locally-canceled payments to gateway-confirmed
// cancellation. Each payment is processed independently on a shared pool sized
// for I/O-bound work; a full pool runs the task on the submitting goroutine
// so no cancellation is ever dropped.
type Worker struct {
	service  service
	interval time.Duration
	sem      *semaphore.Weighted
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewWorker creates a new reconciler worker configured from
// payment.reconciler.*.
func NewWorker(service service) *Worker {
	intervalSeconds := viper.GetInt("payment.reconciler.interval_seconds")
	if intervalSeconds == 0 {
		intervalSeconds = 300
	}

	// Gateway calls spend nearly all their time waiting, so the pool is far
	// larger than the core count.
	poolSize := viper.GetInt("payment.reconciler.pool_size")
	if poolSize == 0 {
		poolSize = runtime.NumCPU() * 10
	}

	return &Worker{
		service:  service,
		interval: time.Duration(intervalSeconds) * time.Second,
		sem:      semaphore.NewWeighted(int64(poolSize)),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the reconciliation loop.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Payment reconciler started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Payment reconciler shutting down")

			return
		case <-w.stopCh:
			slog.Info("Payment reconciler stopped")

			return
		case <-ticker.C:
			w.processCanceledPayments(ctx)
		}
	}
}

// Stop stops the worker and waits for in-flight tasks.
func (w *Worker) Stop() {
	close(w.stopCh)
	w.wg.Wait()
}

// processCanceledPayments lists payments awaiting gateway cancellation and
// dispatches one task per payment. Submission never waits on earlier tasks.
func (w *Worker) processCanceledPayments(ctx context.Context) {
	ctx, span := otel.Tracer("cafe-order").Start(ctx, "reconciler.processCanceledPayments")
	defer span.End()

	payments, err := w.service.ListCanceled(ctx)
	if err != nil {
		slog.Error("Failed to list canceled payments", "error", err)

		return
	}

	if len(payments) == 0 {
		return
	}

	slog.Info("Processing canceled payments", "count", len(payments))

	for _, p := range payments {
		paymentKey := p.PaymentKey

		if w.sem.TryAcquire(1) {
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				defer w.sem.Release(1)
				w.reconcileOne(ctx, paymentKey)
			}()
		} else {
			// Pool saturated: run on the submitting goroutine rather than
			// dropping the task.
			w.reconcileOne(ctx, paymentKey)
		}
	}
}

func (w *Worker) reconcileOne(ctx context.Context, paymentKey string) {
	if err := w.service.ProcessCanceledPayment(ctx, paymentKey); err != nil {
		// Left CANCELED; it becomes eligible again on the next run.
		metrics.ReconcileTasks.WithLabelValues("failed").Inc()
		slog.Error("Failed to reconcile canceled payment",
			"payment_key", paymentKey,
			"error", err,
		)

		return
	}

	metrics.ReconcileTasks.WithLabelValues("completed").Inc()
}
