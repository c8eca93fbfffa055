package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType enum constants
const (
	ProductTypeStandard = "standard"
	ProductTypePack     = "pack"
)

// Product is a catalog entry. The variant payload (matrix or pack) is kept as
// a JSON document in json_data, mirroring the relational layout where only the
// fields needed for listing and search are promoted to columns.
type Product struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	SKU       string      `gorm:"type:varchar(100)" json:"sku"`
	Type      string      `gorm:"type:varchar(20);not null;index" json:"type"` // standard, pack
	Category  string      `gorm:"type:varchar(100)" json:"category"`
	Data      ProductData `gorm:"column:json_data;serializer:json" json:"data"`
	CreatedAt time.Time   `json:"created_at"`
}

// ProductData is the full document stored in products.json_data.
type ProductData struct {
	BasicInfo   BasicInfo           `json:"basicInfo"`
	Pricing     Pricing             `json:"pricing"`
	Variants    []VariantMatrixItem `json:"variants,omitempty"`
	PackDetails *PackDetails        `json:"packDetails,omitempty"`
}

type BasicInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	BaseSKU     string `json:"baseSku,omitempty"`
}

// Pricing holds the product's price block. Currency is always USD; display
// currencies are a per-invoice choice converted at read time.
type Pricing struct {
	Currency       string          `json:"currency"`
	BuyingPrice    decimal.Decimal `json:"buyingPrice"`
	WholesalePrice decimal.Decimal `json:"wholesalePrice"`
	RetailPrice    decimal.Decimal `json:"retailPrice"`
}

// VariantMatrixItem is one cell of a standard product's color x size matrix.
// SKU uniqueness across cells is advisory only.
type VariantMatrixItem struct {
	ID      string `json:"id"` // "<color>-<size>"
	Color   string `json:"color"`
	Size    string `json:"size"`
	SKU     string `json:"sku"`
	Barcode string `json:"barcode"`
	Stock   int    `json:"stock"`
}

// PackItem describes units-per-pack for one color/size inside a pack product.
type PackItem struct {
	ID       string `json:"id"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// PackDetails models a pack product. TotalStock counts packs, not units.
type PackDetails struct {
	Name       string     `json:"name"`
	SKU        string     `json:"sku"`
	Barcode    string     `json:"barcode"`
	Items      []PackItem `json:"items"`
	TotalStock int        `json:"totalStock"`
}
