package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zigzax/internal/model"
	"zigzax/internal/repository"
	"zigzax/pkg/apperr"
)

type draftFixture struct {
	drafts   DraftService
	invoices InvoiceService
	standard *model.Product
	pack     *model.Product
}

func newDraftFixture(t *testing.T) draftFixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	productRepo := repository.NewProductRepository(db)
	productService := NewProductService(productRepo, nil)
	rateService := NewRateService(repository.NewRateRepository(db), nil)
	invoiceService := newInvoiceService(db)

	standard, err := productService.CreateProduct(ctx, standardRequest())
	require.NoError(t, err)
	pack, err := productService.CreateProduct(ctx, packRequest())
	require.NoError(t, err)

	return draftFixture{
		drafts:   NewDraftService(rateService, productRepo, invoiceService),
		invoices: invoiceService,
		standard: standard,
		pack:     pack,
	}
}

func ptr[T any](v T) *T { return &v }

func TestDraftLifecycleSavesInvoice(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()

	view, err := f.drafts.CreateDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", view.Draft.Currency)
	assert.Equal(t, "01 - Merter Depo", view.Draft.Warehouse)
	assert.Empty(t, view.Draft.Lines)

	draftID := view.Draft.ID.String()

	_, err = f.drafts.UpdateDraft(ctx, draftID, UpdateDraftRequest{AccountID: ptr(uint(1))})
	require.NoError(t, err)

	view, err = f.drafts.AddLine(draftID)
	require.NoError(t, err)
	require.Len(t, view.Draft.Lines, 1)
	lineID := view.Draft.Lines[0].ID.String()

	view, err = f.drafts.UpdateLine(ctx, draftID, lineID, UpdateLineRequest{
		ProductID: ptr(f.standard.ID),
		VariantID: ptr("Red-S"),
		Quantity:  ptr(2),
	})
	require.NoError(t, err)

	line := view.Draft.Lines[0]
	// wholesale USD price carries over one-to-one in USD
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, "Red / S", line.VariantName)
	assert.True(t, line.Total.Equal(decimal.NewFromInt(16)))

	invoiceID, err := f.drafts.SaveDraft(ctx, draftID)
	require.NoError(t, err)

	invoice, err := f.invoices.GetInvoice(ctx, invoiceID)
	require.NoError(t, err)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, f.standard.ID, invoice.Items[0].ProductID)
	assert.Equal(t, 2, invoice.Items[0].Quantity)

	// The session is gone once saved.
	_, err = f.drafts.GetDraft(draftID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDraftPackLineFillsQuantity(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()

	view, err := f.drafts.CreateDraft(ctx)
	require.NoError(t, err)
	draftID := view.Draft.ID.String()

	view, err = f.drafts.AddLine(draftID)
	require.NoError(t, err)
	lineID := view.Draft.Lines[0].ID.String()

	view, err = f.drafts.UpdateLine(ctx, draftID, lineID, UpdateLineRequest{
		ProductID: ptr(f.pack.ID),
		VariantID: ptr("PACK"),
	})
	require.NoError(t, err)

	line := view.Draft.Lines[0]
	assert.Equal(t, "PACK (Seri)", line.VariantName)
	// units per pack: 2 + 3
	assert.Equal(t, 5, line.Quantity)
}

func TestDraftCurrencySwitchRederivesLines(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()

	view, err := f.drafts.CreateDraft(ctx)
	require.NoError(t, err)
	draftID := view.Draft.ID.String()

	view, err = f.drafts.AddLine(draftID)
	require.NoError(t, err)
	lineID := view.Draft.Lines[0].ID.String()

	_, err = f.drafts.UpdateLine(ctx, draftID, lineID, UpdateLineRequest{ProductID: ptr(f.standard.ID)})
	require.NoError(t, err)

	// Empty ledger, so the fallback factor 0.92 applies.
	view, err = f.drafts.UpdateDraft(ctx, draftID, UpdateDraftRequest{Currency: ptr("EUR")})
	require.NoError(t, err)
	assert.True(t, view.Draft.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(7.36)))

	view, err = f.drafts.UpdateDraft(ctx, draftID, UpdateDraftRequest{Currency: ptr("USD")})
	require.NoError(t, err)
	assert.True(t, view.Draft.Lines[0].UnitPrice.Equal(decimal.NewFromInt(8)))
}

func TestDraftRejectsUnknownCurrency(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()

	view, err := f.drafts.CreateDraft(ctx)
	require.NoError(t, err)

	_, err = f.drafts.UpdateDraft(ctx, view.Draft.ID.String(), UpdateDraftRequest{Currency: ptr("GBP")})
	assert.True(t, errors.Is(err, apperr.ErrUnknownCurrency))
}

func TestDraftLookupErrors(t *testing.T) {
	f := newDraftFixture(t)

	_, err := f.drafts.GetDraft("not-a-uuid")
	assert.True(t, apperr.IsValidation(err))

	_, err = f.drafts.GetDraft(uuid.NewString())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDraftLineRejectsUnknownProduct(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()

	view, err := f.drafts.CreateDraft(ctx)
	require.NoError(t, err)
	draftID := view.Draft.ID.String()

	view, err = f.drafts.AddLine(draftID)
	require.NoError(t, err)
	lineID := view.Draft.Lines[0].ID.String()

	_, err = f.drafts.UpdateLine(ctx, draftID, lineID, UpdateLineRequest{ProductID: ptr(uint(999))})
	assert.True(t, apperr.IsValidation(err))
}

func TestDraftSaveWithoutAccountFails(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()

	view, err := f.drafts.CreateDraft(ctx)
	require.NoError(t, err)
	draftID := view.Draft.ID.String()

	view, err = f.drafts.AddLine(draftID)
	require.NoError(t, err)
	lineID := view.Draft.Lines[0].ID.String()
	_, err = f.drafts.UpdateLine(ctx, draftID, lineID, UpdateLineRequest{ProductID: ptr(f.standard.ID)})
	require.NoError(t, err)

	_, err = f.drafts.SaveDraft(ctx, draftID)
	assert.True(t, apperr.IsValidation(err))

	// Failed saves keep the session alive.
	_, err = f.drafts.GetDraft(draftID)
	assert.NoError(t, err)
}
