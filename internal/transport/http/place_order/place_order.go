package placeorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
	"github.com/y00ns00/cafe-mobile-order/internal/service/services/ordersvc"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, memberID int64, lines []ordersvc.OrderLineRequest) (*order.Order, error)
}

// lineInPlaceOrderRequest represents one line in a place order request.
type lineInPlaceOrderRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int   `json:"quantity"  validate:"gt=0"`
}

// placeOrderRequest represents a place order request.
type placeOrderRequest struct {
	MemberID   int64                     `json:"memberId"   validate:"gt=0"`
	OrderLines []lineInPlaceOrderRequest `json:"orderLines" validate:"required,min=1,dive"`
}

// Validate validates the place order request.
func (r *placeOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *placeOrderRequest) toLineRequests() []ordersvc.OrderLineRequest {
	lines := make([]ordersvc.OrderLineRequest, len(r.OrderLines))
	for i, line := range r.OrderLines {
		lines[i] = ordersvc.OrderLineRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
	}

	return lines
}

// PlaceOrder handles the place order request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderReq := placeOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for place order", "error", err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), orderReq.MemberID, orderReq.toLineRequests())
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		slog.Error("Error placing order", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(placed); err != nil {
		slog.Error("Error sending response for place order", "error", err)
	}
}
