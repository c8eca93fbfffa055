package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantPack is the sentinel variant id marking a whole-pack line.
const VariantPack = "PACK"

// Invoice is a sales invoice header. Monetary figures are denominated in the
// invoice currency; ExchangeRate snapshots the USD conversion factor that was
// in effect when the invoice was built. Invoices are immutable once created.
type Invoice struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	AccountID      uint            `gorm:"not null;index" json:"account_id"`
	Account        *Account        `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Date           string          `gorm:"type:varchar(10)" json:"date"`
	DueDate        string          `gorm:"column:due_date;type:varchar(10)" json:"due_date"`
	Warehouse      string          `gorm:"type:varchar(100)" json:"warehouse"`
	Currency       string          `gorm:"type:varchar(3);not null" json:"currency"` // USD, EUR, TRY
	ExchangeRate   decimal.Decimal `gorm:"type:decimal(18,4)" json:"exchange_rate"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	DiscountTotal  decimal.Decimal `gorm:"column:discount_total;type:decimal(18,4);not null;default:0" json:"discount_total"`
	TaxTotal       decimal.Decimal `gorm:"column:tax_total;type:decimal(18,4);not null;default:0" json:"tax_total"`
	Transportation decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"transportation"`
	GrandTotal     decimal.Decimal `gorm:"column:grand_total;type:decimal(18,4);not null" json:"grand_total"`
	NoTax          bool            `gorm:"column:no_tax;default:false" json:"no_tax"`
	Items          []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
}

// InvoiceItem is one invoice line. Total is the post-discount net amount; tax
// is aggregated on the header, never embedded per line.
type InvoiceItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	InvoiceID    uint            `gorm:"not null;index" json:"invoice_id"`
	ProductID    uint            `gorm:"not null;index" json:"product_id"`
	VariantID    string          `gorm:"column:variant_id;type:varchar(100)" json:"variant_id"` // matrix cell id or "PACK"
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:decimal(18,4);not null" json:"unit_price"`
	DiscountRate decimal.Decimal `gorm:"column:discount_rate;type:decimal(18,4);not null;default:0" json:"discount_rate"`
	TaxRate      decimal.Decimal `gorm:"column:tax_rate;type:decimal(18,4);not null;default:0" json:"tax_rate"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total"`
}
