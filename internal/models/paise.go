package models

import (
	"github.com/shopspring/decimal"
)

// Paise is an amount in integer minor currency units (1 rupee = 100 paise).
// All prices and aggregates are stored as paise so discount math stays exact.
type Paise int64

// PaiseFromRupees converts a decimal rupee amount, truncating below one paisa.
func PaiseFromRupees(amount decimal.Decimal) Paise {
	return Paise(amount.Shift(2).IntPart())
}

// Rupees returns the amount as a decimal rupee value.
func (p Paise) Rupees() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

// String formats the amount as rupees with 2 decimal places.
func (p Paise) String() string {
	return p.Rupees().StringFixed(2)
}
