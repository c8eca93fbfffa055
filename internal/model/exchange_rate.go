package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fallback conversion factors used when the rate table is empty.
var (
	FallbackUsdTry = decimal.NewFromFloat(34.0)
	FallbackUsdEur = decimal.NewFromFloat(0.92)
)

// ExchangeRate stores the daily conversion factors, base currency USD.
// Both values mean "1 USD = X units". At most one row exists per date; a
// write for an existing date overwrites it in place.
type ExchangeRate struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Date      string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	UsdTry    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"usd_try"`
	UsdEur    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"usd_eur"`
	CreatedAt time.Time       `json:"created_at"`
}
