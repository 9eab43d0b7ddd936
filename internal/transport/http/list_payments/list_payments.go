package listpayments

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/payment"
)

type service interface {
	QueryPayments(ctx context.Context, filter *payment.QueryPaymentsModel) ([]payment.Payment, error)
}

type queryPaymentsRequest struct {
	Statuses []string `schema:"statuses,omitempty"`
	OrderIds []int64  `schema:"orderIds,omitempty"`
	Limit    int      `schema:"limit,omitempty"`
	Offset   int      `schema:"offset,omitempty"`
}

func (q *queryPaymentsRequest) ToModel() (*payment.QueryPaymentsModel, error) {
	statuses := make([]payment.Status, 0, len(q.Statuses))
	for _, raw := range q.Statuses {
		status, err := payment.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	return &payment.QueryPaymentsModel{
		Statuses: statuses,
		OrderIds: q.OrderIds,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, nil
}

func ListPayments(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryPaymentsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	filter, err := query.ToModel()
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))

		return
	}

	payments, err := service.QueryPayments(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		slog.Error("Error getting payments", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(payments); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
