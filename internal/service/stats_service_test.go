package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zigzax/internal/repository"
)

func TestGetStatsCountsRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	productRepo := repository.NewProductRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	svc := NewStatsService(productRepo, accountRepo, invoiceRepo)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalProducts)
	// demo accounts are seeded on first boot
	assert.EqualValues(t, 4, stats.TotalAccounts)
	assert.EqualValues(t, 0, stats.TotalInvoices)

	productService := NewProductService(productRepo, nil)
	_, err = productService.CreateProduct(ctx, standardRequest())
	require.NoError(t, err)

	invoiceService := newInvoiceService(db)
	_, err = invoiceService.CreateInvoice(ctx, validInvoiceRequest())
	require.NoError(t, err)

	stats, err = svc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.TotalInvoices)
}
