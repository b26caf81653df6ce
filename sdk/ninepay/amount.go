package ninepay

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
)

// formatAmount renders an amount at the currency's minor-unit scale. Amounts
// carrying more precision than the currency allows are rejected rather than rounded.
func formatAmount(field string, amount decimal.Decimal, cur Currency) (json.Number, error) {
	if cur == "" {
		cur = CurrencyVND
	}
	scale := cur.Scale()
	if !amount.Equal(amount.Round(scale)) {
		return "", apperrors.NewValidationError(
			"Validation failed",
			fmt.Sprintf("%s %s has more than %d decimal places for %s", field, amount.String(), scale, cur),
		)
	}
	return json.Number(amount.StringFixed(scale)), nil
}
