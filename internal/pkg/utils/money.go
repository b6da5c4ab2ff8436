package utils

import (
	"clinic-ledger-service/internal/pkg/constvars"

	"github.com/shopspring/decimal"
)

// HasMoneyScale reports whether amount fits a NUMERIC(12, 2) column without
// rounding.
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(constvars.MoneyScale))
}

func DecimalOrZero(amount *decimal.Decimal) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return *amount
}
