package database

import (
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"zigzax/internal/model"
)

// NewConnection opens the single-file SQLite store and migrates the schema.
func NewConnection(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.Product{},
		&model.ExchangeRate{},
		&model.Account{},
		&model.Invoice{},
		&model.InvoiceItem{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedAccounts(db); err != nil {
		log.Warn().Err(err).Msg("failed to seed demo accounts")
	}

	return db, nil
}

// seedAccounts inserts the demo counterparties on first boot. The invoice
// workflow has no account-creation surface, so an empty table would leave the
// form unusable.
func seedAccounts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	accounts := []model.Account{
		{Name: "Moda Butik A.Ş.", Code: "C-001", Type: model.AccountTypeCustomer, Currency: "TRY", Address: "İstanbul, Merter"},
		{Name: "Global Tekstil Ltd.", Code: "C-002", Type: model.AccountTypeCustomer, Currency: "USD", Address: "London, UK"},
		{Name: "Ahmet Yılmaz (Perakende)", Code: "C-003", Type: model.AccountTypeCustomer, Currency: "TRY", Address: "İstanbul, Kadıköy"},
		{Name: "Kumaş Dünyası", Code: "S-001", Type: model.AccountTypeSupplier, Currency: "USD", Address: "Bursa, OSB"},
	}
	if err := db.Create(&accounts).Error; err != nil {
		return err
	}
	log.Info().Int("count", len(accounts)).Msg("seeded demo accounts")
	return nil
}
