package pricing

import (
	"github.com/shopspring/decimal"

	"zigzax/internal/model"
	"zigzax/pkg/apperr"
)

// Invoice currency codes
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyTRY = "TRY"
)

// Rates holds the "1 USD = X" conversion factors in effect for a draft.
type Rates struct {
	UsdTry decimal.Decimal `json:"usd_try"`
	UsdEur decimal.Decimal `json:"usd_eur"`
}

// FallbackRates returns the hardcoded factors used when the rate table is empty.
func FallbackRates() Rates {
	return Rates{UsdTry: model.FallbackUsdTry, UsdEur: model.FallbackUsdEur}
}

// Factor returns the multiplier converting a USD amount into the given
// currency. Any code outside USD/EUR/TRY is a configuration error.
func (r Rates) Factor(currency string) (decimal.Decimal, error) {
	switch currency {
	case CurrencyUSD:
		return decimal.NewFromInt(1), nil
	case CurrencyEUR:
		return r.UsdEur, nil
	case CurrencyTRY:
		return r.UsdTry, nil
	}
	return decimal.Decimal{}, apperr.ErrUnknownCurrency
}
