package getpayment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
)

type service interface {
	GetPayment(ctx context.Context, paymentKey string) (*payment.Payment, error)
}

func GetPayment(w http.ResponseWriter, r *http.Request, service service) {
	paymentKey := chi.URLParam(r, "paymentKey")
	if paymentKey == "" {
		http.Error(w, "payment key is required", http.StatusBadRequest)

		return
	}

	p, err := service.GetPayment(r.Context(), paymentKey)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		slog.Error("Error getting payment", "payment_key", paymentKey, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
