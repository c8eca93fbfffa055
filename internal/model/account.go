package model

import "time"

// AccountType enum constants
const (
	AccountTypeCustomer = "customer"
	AccountTypeSupplier = "supplier"
)

// Account is a counterparty (cari): a customer or supplier. The invoice
// workflow only reads accounts; there is no write surface for them.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Code      string    `gorm:"type:varchar(50)" json:"code"`
	Type      string    `gorm:"type:varchar(20);index" json:"type"` // customer, supplier
	Currency  string    `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	TaxID     string    `gorm:"column:tax_id;type:varchar(50)" json:"taxId,omitempty"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
