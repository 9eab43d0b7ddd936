package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/postgres"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/rabbitmq"
	memberrepo "github.com/y00ns00/cafe-mobile-order/internal/dal/repositories/member/postgres"
	outboxrepo "github.com/y00ns00/cafe-mobile-order/internal/dal/repositories/outbox/postgres"
	paymentrepo "github.com/y00ns00/cafe-mobile-order/internal/dal/repositories/payment/postgres"
	productrepo "github.com/y00ns00/cafe-mobile-order/internal/dal/repositories/product/postgres"
	"github.com/y00ns00/cafe-mobile-order/internal/gateway/cocoapay"
	"github.com/y00ns00/cafe-mobile-order/internal/otel"
	"github.com/y00ns00/cafe-mobile-order/internal/service/services/membersvc"
	"github.com/y00ns00/cafe-mobile-order/internal/service/services/ordersvc"
	"github.com/y00ns00/cafe-mobile-order/internal/service/services/paymentsvc"
	"github.com/y00ns00/cafe-mobile-order/internal/service/services/productsvc"
	httptransport "github.com/y00ns00/cafe-mobile-order/internal/transport/http"
	outboxworker "github.com/y00ns00/cafe-mobile-order/internal/worker/outbox"
	"github.com/y00ns00/cafe-mobile-order/internal/worker/reconciler"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	paymentSvc     *paymentsvc.PaymentService
	transport      *httptransport.HTTPTransport
	reconciler     *reconciler.Worker
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	queueName := viper.GetString("rabbitmq.order_events.queue")
	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	}); err != nil {
		panic("Failed to declare order events queue: " + err.Error())
	}

	pool := postgresClient.Pool()

	memberSvc := membersvc.MustNewMemberService(
		membersvc.WithMemberRepository(memberrepo.NewPostgresMemberRepository(pool)),
	)
	productSvc := productsvc.MustNewProductService(
		productsvc.WithProductRepository(productrepo.NewPostgresProductRepository(pool)),
	)
	paymentSvc := paymentsvc.MustNewPaymentService(
		paymentsvc.WithPaymentRepository(paymentrepo.NewPostgresPaymentRepository(pool)),
		paymentsvc.WithMemberPort(memberSvc),
		paymentsvc.WithGateway(cocoapay.MustNewClient()),
	)
	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithMemberPort(memberSvc),
		ordersvc.WithProductPort(productSvc),
		ordersvc.WithPaymentPort(paymentSvc),
	)

	reconcilerWorker := reconciler.NewWorker(paymentSvc)
	outboxWorker := outboxworker.NewWorker(outboxrepo.NewOutboxRepository(pool), rabbitClient)

	transport := httptransport.NewHTTPTransport(orderSvc, paymentSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		paymentSvc:     paymentSvc,
		transport:      transport,
		reconciler:     reconcilerWorker,
		outboxWorker:   outboxWorker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())

	go a.reconciler.Start(workerCtx)
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorkers()
	a.reconciler.Stop()
	a.outboxWorker.Stop()

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	slog.Info("Application shutdown complete")
}
