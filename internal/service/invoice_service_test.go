package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zigzax/pkg/apperr"
)

func validInvoiceRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		AccountID:      1,
		Date:           "2025-01-10",
		DueDate:        "2025-01-25",
		Warehouse:      "01 - Merter Depo",
		Currency:       "USD",
		ExchangeRate:   decimal.NewFromInt(1),
		Transportation: decimal.NewFromInt(5),
		Items: []InvoiceItemPayload{
			{
				ProductID:    1,
				VariantID:    "Red-S",
				Quantity:     3,
				BasePriceUSD: decimal.NewFromInt(10),
				UnitPrice:    decimal.NewFromInt(10),
				DiscountRate: decimal.NewFromInt(20),
				TaxRate:      decimal.NewFromInt(10),
			},
			{
				ProductID:    2,
				VariantID:    "PACK",
				Quantity:     1,
				BasePriceUSD: decimal.NewFromInt(40),
				UnitPrice:    decimal.NewFromInt(40),
				TaxRate:      decimal.NewFromInt(20),
			},
		},
	}
}

func TestCreateInvoicePersistsHeaderAndLines(t *testing.T) {
	svc := newInvoiceService(newTestDB(t))
	ctx := context.Background()

	id, err := svc.CreateInvoice(ctx, validInvoiceRequest())
	require.NoError(t, err)
	require.NotZero(t, id)

	invoice, err := svc.GetInvoice(ctx, id)
	require.NoError(t, err)

	require.Len(t, invoice.Items, 2)
	require.NotNil(t, invoice.Account)
	assert.Equal(t, "Moda Butik A.Ş.", invoice.Account.Name)

	// line totals: 3*10*0.8 = 24 and 1*40 = 40
	assert.True(t, invoice.Items[0].Total.Equal(decimal.NewFromInt(24)))
	assert.True(t, invoice.Items[1].Total.Equal(decimal.NewFromInt(40)))

	assert.True(t, invoice.Subtotal.Equal(decimal.NewFromInt(64)))
	assert.True(t, invoice.DiscountTotal.Equal(decimal.NewFromInt(6)))
	assert.True(t, invoice.TaxTotal.Equal(decimal.NewFromFloat(10.4)))
	assert.True(t, invoice.GrandTotal.Equal(decimal.NewFromFloat(79.4)))
}

func TestCreateInvoiceIgnoresClientAggregates(t *testing.T) {
	svc := newInvoiceService(newTestDB(t))
	ctx := context.Background()

	req := validInvoiceRequest()
	req.Subtotal = decimal.NewFromInt(1)
	req.DiscountTotal = decimal.NewFromInt(999)
	req.TaxTotal = decimal.NewFromInt(999)
	req.GrandTotal = decimal.NewFromInt(1)

	id, err := svc.CreateInvoice(ctx, req)
	require.NoError(t, err)

	invoice, err := svc.GetInvoice(ctx, id)
	require.NoError(t, err)
	assert.True(t, invoice.Subtotal.Equal(decimal.NewFromInt(64)))
	assert.True(t, invoice.GrandTotal.Equal(decimal.NewFromFloat(79.4)))
}

func TestCreateInvoiceNoTaxZeroesTaxTotal(t *testing.T) {
	svc := newInvoiceService(newTestDB(t))
	ctx := context.Background()

	req := validInvoiceRequest()
	req.NoTax = true

	id, err := svc.CreateInvoice(ctx, req)
	require.NoError(t, err)

	invoice, err := svc.GetInvoice(ctx, id)
	require.NoError(t, err)
	assert.True(t, invoice.TaxTotal.IsZero())
	assert.True(t, invoice.GrandTotal.Equal(decimal.NewFromInt(69)))
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc := newInvoiceService(newTestDB(t))
	ctx := context.Background()

	t.Run("missing account", func(t *testing.T) {
		req := validInvoiceRequest()
		req.AccountID = 0
		_, err := svc.CreateInvoice(ctx, req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("unknown account", func(t *testing.T) {
		req := validInvoiceRequest()
		req.AccountID = 999
		_, err := svc.CreateInvoice(ctx, req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("no items", func(t *testing.T) {
		req := validInvoiceRequest()
		req.Items = nil
		_, err := svc.CreateInvoice(ctx, req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("unknown currency", func(t *testing.T) {
		req := validInvoiceRequest()
		req.Currency = "GBP"
		_, err := svc.CreateInvoice(ctx, req)
		assert.True(t, errors.Is(err, apperr.ErrUnknownCurrency))
	})

	t.Run("zero quantity", func(t *testing.T) {
		req := validInvoiceRequest()
		req.Items[0].Quantity = 0
		_, err := svc.CreateInvoice(ctx, req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("discount out of range", func(t *testing.T) {
		req := validInvoiceRequest()
		req.Items[0].DiscountRate = decimal.NewFromInt(150)
		_, err := svc.CreateInvoice(ctx, req)
		assert.True(t, apperr.IsValidation(err))
	})

	// Nothing was stored by any of the rejected requests.
	_, total, err := svc.ListInvoices(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListInvoicesPagination(t *testing.T) {
	svc := newInvoiceService(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateInvoice(ctx, validInvoiceRequest())
		require.NoError(t, err)
	}

	entries, total, err := svc.ListInvoices(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "Moda Butik A.Ş.", entries[0].Account)

	entries, _, err = svc.ListInvoices(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
