package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"zigzax/internal/database"
	"zigzax/internal/repository"
)

// newTestDB opens a fresh store in a temp directory, migrated and seeded with
// the demo accounts.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func newInvoiceService(db *gorm.DB) InvoiceService {
	return NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewAccountRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}
