package getorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
)

type service interface {
	GetOrder(ctx context.Context, orderID int64) (*order.Order, error)
}

func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	ord, err := service.GetOrder(r.Context(), orderID)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		slog.Error("Error getting order", "order_id", orderID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(ord); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
