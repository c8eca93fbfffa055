package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"zigzax/internal/model"
	"zigzax/internal/pricing"
	"zigzax/internal/repository"
	"zigzax/internal/websocket"
	"zigzax/pkg/apperr"
	"zigzax/pkg/validator"
)

// --- DTOs ---

type InvoiceItemPayload struct {
	ProductID    uint            `json:"productId"`
	VariantID    string          `json:"variantId"`
	Quantity     int             `json:"quantity"`
	BasePriceUSD decimal.Decimal `json:"basePriceUsd"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	DiscountRate decimal.Decimal `json:"discountRate"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Total        decimal.Decimal `json:"total"`
}

// CreateInvoiceRequest mirrors the invoice form payload. The aggregate figures
// (subtotal, discountTotal, taxTotal, grandTotal) are accepted for contract
// completeness but recomputed server-side from the raw line fields before
// anything is stored; client arithmetic is never trusted.
type CreateInvoiceRequest struct {
	AccountID      uint                 `json:"accountId"`
	Date           string               `json:"date"`
	DueDate        string               `json:"dueDate"`
	Warehouse      string               `json:"warehouse"`
	Currency       string               `json:"currency" validate:"required,currency"`
	ExchangeRate   decimal.Decimal      `json:"exchangeRate"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DiscountTotal  decimal.Decimal      `json:"discountTotal"`
	TaxTotal       decimal.Decimal      `json:"taxTotal"`
	Transportation decimal.Decimal      `json:"transportation"`
	GrandTotal     decimal.Decimal      `json:"grandTotal"`
	NoTax          bool                 `json:"noTax"`
	Items          []InvoiceItemPayload `json:"items"`
}

type InvoiceListEntry struct {
	ID         uint            `json:"id"`
	AccountID  uint            `json:"account_id"`
	Account    string          `json:"account"`
	Date       string          `json:"date"`
	Currency   string          `json:"currency"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	NoTax      bool            `json:"no_tax"`
}

// --- Interface ---

type InvoiceService interface {
	// CreateInvoice persists the header and every line in one transaction;
	// a failing line insert rolls the header back.
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (uint, error)
	GetInvoice(ctx context.Context, id uint) (*model.Invoice, error)
	ListInvoices(ctx context.Context, page, limit int) ([]InvoiceListEntry, int64, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	accountRepo repository.AccountRepository
	txManager   repository.TransactionManager
	hub         *websocket.Hub
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	accountRepo repository.AccountRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

// --- Implementation ---

var oneHundred = decimal.NewFromInt(100)

func (s *invoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (uint, error) {
	if req.AccountID == 0 {
		return 0, apperr.Validation("please select an account")
	}
	if len(req.Items) == 0 {
		return 0, apperr.Validation("at least one invoice line is required")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return 0, fmt.Errorf("%w: %s", apperr.ErrUnknownCurrency, req.Currency)
	}

	if _, err := s.accountRepo.FindByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.Validation("account %d does not exist", req.AccountID)
		}
		return 0, fmt.Errorf("failed to look up account: %w", err)
	}

	lines, err := buildLines(req.Items)
	if err != nil {
		return 0, err
	}
	totals := pricing.ComputeTotals(lines, req.NoTax, req.Transportation)

	invoice := model.Invoice{
		AccountID:      req.AccountID,
		Date:           req.Date,
		DueDate:        req.DueDate,
		Warehouse:      req.Warehouse,
		Currency:       req.Currency,
		ExchangeRate:   req.ExchangeRate,
		Subtotal:       totals.Subtotal,
		DiscountTotal:  totals.DiscountTotal,
		TaxTotal:       totals.TaxTotal,
		Transportation: totals.Transportation,
		GrandTotal:     totals.GrandTotal,
		NoTax:          req.NoTax,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.CreateHeader(txCtx, &invoice); err != nil {
			return fmt.Errorf("failed to store invoice: %w", err)
		}

		items := make([]model.InvoiceItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, model.InvoiceItem{
				InvoiceID:    invoice.ID,
				ProductID:    l.ProductID,
				VariantID:    l.VariantID,
				Quantity:     l.Quantity,
				UnitPrice:    l.UnitPrice,
				DiscountRate: l.DiscountRate,
				TaxRate:      l.TaxRate,
				Total:        l.Total,
			})
		}
		if err := s.invoiceRepo.CreateItems(txCtx, items); err != nil {
			return fmt.Errorf("failed to store invoice lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.hub != nil {
		s.hub.Publish(websocket.EventInvoiceCreated, map[string]interface{}{
			"invoiceId":  invoice.ID,
			"currency":   invoice.Currency,
			"grandTotal": invoice.GrandTotal,
		})
	}
	return invoice.ID, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uint) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, page, limit int) ([]InvoiceListEntry, int64, error) {
	invoices, total, err := s.invoiceRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	entries := make([]InvoiceListEntry, 0, len(invoices))
	for _, inv := range invoices {
		entry := InvoiceListEntry{
			ID:         inv.ID,
			AccountID:  inv.AccountID,
			Date:       inv.Date,
			Currency:   inv.Currency,
			GrandTotal: inv.GrandTotal,
			NoTax:      inv.NoTax,
		}
		if inv.Account != nil {
			entry.Account = inv.Account.Name
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}

// buildLines validates each raw line and recomputes its total.
func buildLines(items []InvoiceItemPayload) ([]pricing.Line, error) {
	lines := make([]pricing.Line, 0, len(items))
	for i, item := range items {
		if item.ProductID == 0 {
			return nil, apperr.Validation("items[%d]: please select a product", i)
		}
		if item.Quantity < 1 {
			return nil, apperr.Validation("items[%d]: quantity must be a positive integer", i)
		}
		if item.UnitPrice.IsNegative() {
			return nil, apperr.Validation("items[%d]: unit price cannot be negative", i)
		}
		if item.DiscountRate.IsNegative() || item.DiscountRate.GreaterThan(oneHundred) {
			return nil, apperr.Validation("items[%d]: discount rate must be between 0 and 100", i)
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(oneHundred) {
			return nil, apperr.Validation("items[%d]: tax rate must be between 0 and 100", i)
		}

		lines = append(lines, pricing.Line{
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			Quantity:     item.Quantity,
			BasePriceUSD: item.BasePriceUSD,
			UnitPrice:    item.UnitPrice,
			DiscountRate: item.DiscountRate,
			TaxRate:      item.TaxRate,
			Total:        pricing.LineTotal(item.Quantity, item.UnitPrice, item.DiscountRate),
		})
	}
	return lines, nil
}
