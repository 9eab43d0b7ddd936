package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
	"github.com/y00ns00/cafe-mobile-order/internal/service/services/ordersvc"
	cancelorder "github.com/y00ns00/cafe-mobile-order/internal/transport/http/cancel_order"
	getorder "github.com/y00ns00/cafe-mobile-order/internal/transport/http/get_order"
	getpayment "github.com/y00ns00/cafe-mobile-order/internal/transport/http/get_payment"
	listorders "github.com/y00ns00/cafe-mobile-order/internal/transport/http/list_orders"
	listpayments "github.com/y00ns00/cafe-mobile-order/internal/transport/http/list_payments"
	placeorder "github.com/y00ns00/cafe-mobile-order/internal/transport/http/place_order"
	"github.com/y00ns00/cafe-mobile-order/pkg/http/middleware/trace"
	"github.com/y00ns00/cafe-mobile-order/pkg/logger"
	"github.com/y00ns00/cafe-mobile-order/pkg/metrics"
)

type orderService interface {
	PlaceOrder(ctx context.Context, memberID int64, lines []ordersvc.OrderLineRequest) (*order.Order, error)
	CancelOrder(ctx context.Context, orderID, memberID int64) (*order.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*order.Order, error)
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

type paymentService interface {
	GetPayment(ctx context.Context, paymentKey string) (*payment.Payment, error)
	QueryPayments(ctx context.Context, filter *payment.QueryPaymentsModel) ([]payment.Payment, error)
}

type HTTPTransport struct {
	server         *http.Server
	router         *chi.Mux
	orderService   orderService
	paymentService paymentService
}

func NewHTTPTransport(orderService orderService, paymentService paymentService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:         server,
		router:         router,
		orderService:   orderService,
		paymentService: paymentService,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/orders", h.placeOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{orderID}", h.getOrder)
		r.Post("/orders/{orderID}/cancel", h.cancelOrder)

		r.Get("/payments", h.listPayments)
		r.Get("/payments/{paymentKey}", h.getPayment)
	})

	h.router.Handle("/metrics", metrics.Handler())
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.orderService)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.orderService)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderService)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderService)
}

func (h *HTTPTransport) getPayment(w http.ResponseWriter, r *http.Request) {
	getpayment.GetPayment(w, r, h.paymentService)
}

func (h *HTTPTransport) listPayments(w http.ResponseWriter, r *http.Request) {
	listpayments.ListPayments(w, r, h.paymentService)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
