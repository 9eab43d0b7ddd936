package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates money from whole won", func(t *testing.T) {
		m, err := New(4500)
		require.NoError(t, err)
		assert.Equal(t, "4500", m.String())
		assert.Equal(t, CurrencyKRW, m.Currency())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := New(-1)
		assert.ErrorIs(t, err, ErrAmountNegative)
	})
}

func TestParse(t *testing.T) {
	t.Run("parses decimal string", func(t *testing.T) {
		m, err := Parse("4500.0000")
		require.NoError(t, err)

		expected, err := New(4500)
		require.NoError(t, err)
		assert.True(t, m.Equal(expected))
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := Parse("")
		assert.ErrorIs(t, err, ErrAmountRequired)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := Parse("not-a-number")
		assert.ErrorIs(t, err, ErrAmountInvalid)
	})

	t.Run("rejects negative", func(t *testing.T) {
		_, err := Parse("-100")
		assert.ErrorIs(t, err, ErrAmountNegative)
	})
}

func TestArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		a, _ := New(4500)
		b, _ := New(5000)
		assert.Equal(t, "9500", a.Add(b).String())
	})

	t.Run("subtract below zero fails", func(t *testing.T) {
		a, _ := New(100)
		b, _ := New(200)
		_, err := a.Subtract(b)
		assert.ErrorIs(t, err, ErrAmountNegative)
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		a, _ := New(4500)
		total, err := a.Multiply(3)
		require.NoError(t, err)
		assert.Equal(t, "13500", total.String())
	})

	t.Run("multiply by negative fails", func(t *testing.T) {
		a, _ := New(4500)
		_, err := a.Multiply(-1)
		assert.ErrorIs(t, err, ErrAmountInvalid)
	})
}

func TestEqual(t *testing.T) {
	// 4500 and 4500.0000 are the same amount of won.
	a, err := New(4500)
	require.NoError(t, err)
	b, err := FromDecimal(decimal.RequireFromString("4500.0000"))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestZeroValueCurrency(t *testing.T) {
	var m Money
	assert.Equal(t, CurrencyKRW, m.Currency())
}

func TestJSONRoundTrip(t *testing.T) {
	m, err := New(13500)
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"13500","currency":"KRW"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))
}
