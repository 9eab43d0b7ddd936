package money

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
)

type Currency string

const (
	CurrencyKRW Currency = "KRW"
)

var (
	ErrAmountRequired  = apperrors.New(apperrors.KindValidation, "money amount is required")
	ErrAmountInvalid   = apperrors.New(apperrors.KindValidation, "money amount is invalid")
	ErrAmountNegative  = apperrors.New(apperrors.KindValidation, "money amount must not be negative")
	ErrInvalidCurrency = apperrors.New(apperrors.KindValidation, "invalid currency")
)

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyKRW.String():
		return CurrencyKRW, nil
	default:
		return "", ErrInvalidCurrency
	}
}

// Money is an immutable non-negative amount of KRW. All arithmetic returns
// a new value; any operation that would go below zero fails.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates Money from a whole amount of won.
func New(amount int64) (Money, error) {
	return FromDecimal(decimal.NewFromInt(amount))
}

// FromDecimal creates Money from a decimal amount.
func FromDecimal(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrAmountNegative
	}

	return Money{amount: amount, currency: CurrencyKRW}, nil
}

// Parse creates Money from its decimal string representation.
func Parse(s string) (Money, error) {
	if s == "" {
		return Money{}, ErrAmountRequired
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrAmountInvalid
	}

	return FromDecimal(amount)
}

// Zero returns zero won.
func Zero() Money {
	return Money{amount: decimal.Zero, currency: CurrencyKRW}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() Currency {
	if m.currency == "" {
		return CurrencyKRW
	}

	return m.currency
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), currency: m.Currency()}
}

func (m Money) Subtract(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, ErrAmountNegative
	}

	return Money{amount: result, currency: m.Currency()}, nil
}

func (m Money) Multiply(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, ErrAmountInvalid
	}

	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(factor))),
		currency: m.Currency(),
	}, nil
}

// Equal compares by numeric value, ignoring representation.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String returns the plain decimal representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:   m.amount.String(),
		Currency: m.Currency().String(),
	})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := Parse(raw.Amount)
	if err != nil {
		return err
	}

	if raw.Currency != "" {
		if _, err := ParseCurrency(raw.Currency); err != nil {
			return err
		}
	}

	*m = parsed

	return nil
}
