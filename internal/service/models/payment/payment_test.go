package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/money"
)

func newPayment(t *testing.T) *Payment {
	t.Helper()

	amount, err := money.New(14000)
	require.NoError(t, err)

	p, err := New("pay-key-1", 10, 7, "Kim", "1990-01-01", "010-1234-5678", amount)
	require.NoError(t, err)

	return p
}

func TestNew(t *testing.T) {
	t.Run("starts PENDING", func(t *testing.T) {
		p := newPayment(t)
		assert.Equal(t, StatusPending, p.Status)
	})

	t.Run("requires payment key", func(t *testing.T) {
		_, err := New("", 10, 7, "Kim", "1990-01-01", "010-1234-5678", money.Zero())
		assert.ErrorIs(t, err, ErrPaymentKeyRequired)
	})

	t.Run("requires order id", func(t *testing.T) {
		_, err := New("pay-key-1", 0, 7, "Kim", "1990-01-01", "010-1234-5678", money.Zero())
		assert.ErrorIs(t, err, ErrOrderIDRequired)
	})

	t.Run("requires member id", func(t *testing.T) {
		_, err := New("pay-key-1", 10, 0, "Kim", "1990-01-01", "010-1234-5678", money.Zero())
		assert.ErrorIs(t, err, ErrMemberIDRequired)
	})
}

func TestStatusTransitions(t *testing.T) {
	t.Run("success then cancel then cancel completed", func(t *testing.T) {
		p := newPayment(t)

		p.MarkAsSuccess()
		assert.Equal(t, StatusSuccess, p.Status)

		p.MarkAsCanceled()
		assert.Equal(t, StatusCanceled, p.Status)

		p.MarkAsCancelCompleted()
		assert.Equal(t, StatusCancelCompleted, p.Status)
	})

	t.Run("failed", func(t *testing.T) {
		p := newPayment(t)
		p.MarkAsFailed()
		assert.Equal(t, StatusFailed, p.Status)
	})

	t.Run("cancel from PENDING stays drainable", func(t *testing.T) {
		p := newPayment(t)
		p.MarkAsCanceled()
		assert.Equal(t, StatusCanceled, p.Status)
	})
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "SUCCESS", "FAILED", "CANCELED", "CANCEL_COMPLETED"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := ParseStatus("REFUNDED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
