// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
//
// Purchase pricing is kept in Bahraini Dinar, which carries three
// decimal places (fils). Values are rounded with RoundBHD before storage.
type Money = decimal.Decimal

// BHDPlaces is the number of decimal places of the Bahraini Dinar.
const BHDPlaces int32 = 3

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundBHD rounds to fils precision (3 decimal places).
func RoundBHD(m Money) Money {
	return m.Round(BHDPlaces)
}

// TaxAmount calculates the tax portion of a net amount given a percent rate.
// Result is rounded to fils.
func TaxAmount(net Money, ratePercent Money) Money {
	return RoundBHD(net.Mul(ratePercent).Div(decimal.NewFromInt(100)))
}
