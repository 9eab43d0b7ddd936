package placeorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/orderline"
	"github.com/y00ns00/cafe-mobile-order/internal/service/services/ordersvc"
)

type stubService struct {
	placed *order.Order
	err    error

	gotMemberID int64
	gotLines    []ordersvc.OrderLineRequest
}

func (s *stubService) PlaceOrder(_ context.Context, memberID int64, lines []ordersvc.OrderLineRequest) (*order.Order, error) {
	s.gotMemberID = memberID
	s.gotLines = lines

	return s.placed, s.err
}

func TestPlaceOrder(t *testing.T) {
	t.Run("valid request returns 201 with the placed order", func(t *testing.T) {
		price, err := money.New(4500)
		require.NoError(t, err)
		line, err := orderline.New(1, "americano", 2, price)
		require.NoError(t, err)
		placed, err := order.New(7, []orderline.OrderLine{line})
		require.NoError(t, err)
		placed.ID = 42

		service := &stubService{placed: placed}

		body := `{"memberId":7,"orderLines":[{"productId":1,"quantity":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		PlaceOrder(rec, req, service)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, int64(7), service.gotMemberID)
		require.Len(t, service.gotLines, 1)
		assert.Equal(t, int64(1), service.gotLines[0].ProductID)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, float64(42), resp["id"])
	})

	t.Run("missing member id fails validation", func(t *testing.T) {
		service := &stubService{}

		body := `{"orderLines":[{"productId":1,"quantity":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		PlaceOrder(rec, req, service)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, service.gotMemberID)
	})

	t.Run("empty order lines fail validation", func(t *testing.T) {
		service := &stubService{}

		body := `{"memberId":7,"orderLines":[]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		PlaceOrder(rec, req, service)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service validation error maps to 400", func(t *testing.T) {
		service := &stubService{err: apperrors.New(apperrors.KindValidation, "products not found or unavailable, ids: [99]")}

		body := `{"memberId":7,"orderLines":[{"productId":99,"quantity":1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		PlaceOrder(rec, req, service)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "99")
	})
}
