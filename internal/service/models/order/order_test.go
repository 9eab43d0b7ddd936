package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/orderline"
)

func mustLine(t *testing.T, productID int64, name string, quantity int, price int64) orderline.OrderLine {
	t.Helper()

	unitPrice, err := money.New(price)
	require.NoError(t, err)

	line, err := orderline.New(productID, name, quantity, unitPrice)
	require.NoError(t, err)

	return line
}

func TestNew(t *testing.T) {
	t.Run("starts in PAYMENT_WAITING with total derived from lines", func(t *testing.T) {
		lines := []orderline.OrderLine{
			mustLine(t, 1, "americano", 2, 4500),
			mustLine(t, 2, "latte", 1, 5000),
		}

		o, err := New(7, lines)
		require.NoError(t, err)

		assert.Equal(t, StatusPaymentWaiting, o.Status)

		expected, err := money.New(14000)
		require.NoError(t, err)
		assert.True(t, o.TotalPrice.Equal(expected))
	})

	t.Run("requires member id", func(t *testing.T) {
		_, err := New(0, []orderline.OrderLine{mustLine(t, 1, "americano", 1, 4500)})
		assert.ErrorIs(t, err, ErrMemberIDRequired)
	})

	t.Run("requires at least one line", func(t *testing.T) {
		_, err := New(7, nil)
		assert.ErrorIs(t, err, ErrOrderLinesEmpty)
	})
}

func TestStatusTransitions(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		t.Helper()
		o, err := New(7, []orderline.OrderLine{mustLine(t, 1, "americano", 1, 4500)})
		require.NoError(t, err)

		return o
	}

	t.Run("happy path to COMPLETED", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.CompletePayment())
		assert.Equal(t, StatusPreparing, o.Status)

		require.NoError(t, o.StartServing())
		assert.Equal(t, StatusServe, o.Status)

		require.NoError(t, o.CompleteServing())
		assert.Equal(t, StatusCompleted, o.Status)
	})

	t.Run("payment failure path", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.FailPayment())
		assert.Equal(t, StatusPaymentFailed, o.Status)
	})

	t.Run("complete payment twice conflicts", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.CompletePayment())
		err := o.CompletePayment()
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("serving before preparing conflicts", func(t *testing.T) {
		o := newOrder(t)

		err := o.StartServing()
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})
}

func TestCancel(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		t.Helper()
		o, err := New(7, []orderline.OrderLine{mustLine(t, 1, "americano", 1, 4500)})
		require.NoError(t, err)

		return o
	}

	t.Run("cancel from PAYMENT_WAITING", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel())
		assert.Equal(t, StatusCanceled, o.Status)
	})

	t.Run("cancel from PREPARING", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.CompletePayment())
		require.NoError(t, o.Cancel())
		assert.Equal(t, StatusCanceled, o.Status)
	})

	t.Run("cancel from PAYMENT_FAILED", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.FailPayment())
		require.NoError(t, o.Cancel())
		assert.Equal(t, StatusCanceled, o.Status)
	})

	t.Run("double cancel reports already canceled", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel())
		assert.ErrorIs(t, o.Cancel(), ErrAlreadyCanceled)
	})

	t.Run("cancel from SERVE conflicts", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.CompletePayment())
		require.NoError(t, o.StartServing())

		err := o.Cancel()
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrAlreadyCanceled)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("cancel from COMPLETED conflicts", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.CompletePayment())
		require.NoError(t, o.StartServing())
		require.NoError(t, o.CompleteServing())

		err := o.Cancel()
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{
		"PAYMENT_WAITING", "PREPARING", "SERVE", "COMPLETED", "PAYMENT_FAILED", "CANCELED",
	} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
