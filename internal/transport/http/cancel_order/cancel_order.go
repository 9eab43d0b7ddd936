package cancelorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
)

// service is an interface for the service layer.
type service interface {
	CancelOrder(ctx context.Context, orderID, memberID int64) (*order.Order, error)
}

// cancelOrderRequest represents a cancel order request.
type cancelOrderRequest struct {
	MemberID int64 `json:"memberId" validate:"gt=0"`
}

// Validate validates the cancel order request.
func (r *cancelOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// CancelOrder handles the cancel order request.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	cancelReq := cancelOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&cancelReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for cancel order", "error", err)

		return
	}

	if err := cancelReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for cancel order", "error", err)

		return
	}

	canceled, err := service.CancelOrder(r.Context(), orderID, cancelReq.MemberID)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		slog.Error("Error canceling order", "order_id", orderID, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(canceled); err != nil {
		slog.Error("Error sending response for cancel order", "error", err)
	}
}
