package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"zigzax/internal/model"
	"zigzax/internal/pricing"
	"zigzax/internal/repository"
	"zigzax/pkg/apperr"
)

// --- DTOs ---

// UpdateDraftRequest patches invoice header fields. Nil means "not sent".
type UpdateDraftRequest struct {
	AccountID      *uint            `json:"accountId"`
	Date           *string          `json:"date"`
	DueDate        *string          `json:"dueDate"`
	Warehouse      *string          `json:"warehouse"`
	Currency       *string          `json:"currency"`
	NoTax          *bool            `json:"noTax"`
	Transportation *decimal.Decimal `json:"transportation"`
	RefreshRates   bool             `json:"refreshRates"`
}

// UpdateLineRequest patches one draft line. Product and variant selection run
// through the pricing engine's selection rules.
type UpdateLineRequest struct {
	ProductID    *uint            `json:"productId"`
	VariantID    *string          `json:"variantId"`
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	DiscountRate *decimal.Decimal `json:"discountRate"`
	TaxRate      *decimal.Decimal `json:"taxRate"`
}

// DraftView is a draft snapshot with its totals freshly recomputed.
type DraftView struct {
	Draft  *pricing.Draft `json:"draft"`
	Totals pricing.Totals `json:"totals"`
}

// --- Interface ---

// DraftService owns in-memory invoice form sessions. A draft is created only
// after the latest rate has been read, so line entry never races the rate
// fetch; a later rate refresh re-derives every line from its USD snapshot.
type DraftService interface {
	CreateDraft(ctx context.Context) (DraftView, error)
	GetDraft(id string) (DraftView, error)
	UpdateDraft(ctx context.Context, id string, req UpdateDraftRequest) (DraftView, error)
	AddLine(id string) (DraftView, error)
	UpdateLine(ctx context.Context, id, lineID string, req UpdateLineRequest) (DraftView, error)
	RemoveLine(id, lineID string) (DraftView, error)
	// SaveDraft persists the draft as an invoice and discards the session.
	SaveDraft(ctx context.Context, id string) (uint, error)
}

type draftService struct {
	rateService    RateService
	productRepo    repository.ProductRepository
	invoiceService InvoiceService

	mu     sync.Mutex
	drafts map[uuid.UUID]*pricing.Draft
}

func NewDraftService(rateService RateService, productRepo repository.ProductRepository, invoiceService InvoiceService) DraftService {
	return &draftService{
		rateService:    rateService,
		productRepo:    productRepo,
		invoiceService: invoiceService,
		drafts:         make(map[uuid.UUID]*pricing.Draft),
	}
}

// --- Implementation ---

func (s *draftService) CreateDraft(ctx context.Context) (DraftView, error) {
	// Rates first: line entry must never start against unknown factors.
	latest, err := s.rateService.Latest(ctx)
	if err != nil {
		return DraftView{}, err
	}

	draft := pricing.NewDraft(pricing.Rates{UsdTry: latest.UsdTry, UsdEur: latest.UsdEur})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = draft
	return snapshot(draft), nil
}

func (s *draftService) GetDraft(id string) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookup(id)
	if err != nil {
		return DraftView{}, err
	}
	return snapshot(draft), nil
}

func (s *draftService) UpdateDraft(ctx context.Context, id string, req UpdateDraftRequest) (DraftView, error) {
	// The rate read happens outside the store lock.
	var fresh *pricing.Rates
	if req.RefreshRates {
		latest, err := s.rateService.Latest(ctx)
		if err != nil {
			return DraftView{}, err
		}
		fresh = &pricing.Rates{UsdTry: latest.UsdTry, UsdEur: latest.UsdEur}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookup(id)
	if err != nil {
		return DraftView{}, err
	}

	if req.AccountID != nil {
		draft.AccountID = *req.AccountID
	}
	if req.Date != nil {
		draft.Date = *req.Date
	}
	if req.DueDate != nil {
		draft.DueDate = *req.DueDate
	}
	if req.Warehouse != nil {
		draft.Warehouse = *req.Warehouse
	}
	if req.NoTax != nil {
		draft.NoTax = *req.NoTax
	}
	if req.Transportation != nil {
		if err := draft.SetTransportation(*req.Transportation); err != nil {
			return DraftView{}, err
		}
	}
	if fresh != nil {
		if err := draft.SetRates(*fresh); err != nil {
			return DraftView{}, err
		}
	}
	if req.Currency != nil {
		if err := draft.SetCurrency(*req.Currency); err != nil {
			return DraftView{}, err
		}
	}
	return snapshot(draft), nil
}

func (s *draftService) AddLine(id string) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookup(id)
	if err != nil {
		return DraftView{}, err
	}
	draft.AddLine()
	return snapshot(draft), nil
}

func (s *draftService) UpdateLine(ctx context.Context, id, lineID string, req UpdateLineRequest) (DraftView, error) {
	lid, err := uuid.Parse(lineID)
	if err != nil {
		return DraftView{}, apperr.Validation("invalid line id: %s", lineID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookup(id)
	if err != nil {
		return DraftView{}, err
	}

	if req.ProductID != nil {
		product, err := s.findProduct(ctx, *req.ProductID)
		if err != nil {
			return DraftView{}, err
		}
		if err := draft.SelectProduct(lid, product); err != nil {
			return DraftView{}, err
		}
	}
	if req.VariantID != nil {
		line, err := draft.Line(lid)
		if err != nil {
			return DraftView{}, err
		}
		var product *model.Product
		if line.ProductID != 0 {
			if product, err = s.findProduct(ctx, line.ProductID); err != nil {
				return DraftView{}, err
			}
		}
		if err := draft.SelectVariant(lid, product, *req.VariantID); err != nil {
			return DraftView{}, err
		}
	}
	if req.Quantity != nil {
		if err := draft.SetQuantity(lid, *req.Quantity); err != nil {
			return DraftView{}, err
		}
	}
	if req.UnitPrice != nil {
		if err := draft.SetUnitPrice(lid, *req.UnitPrice); err != nil {
			return DraftView{}, err
		}
	}
	if req.DiscountRate != nil {
		if err := draft.SetDiscountRate(lid, *req.DiscountRate); err != nil {
			return DraftView{}, err
		}
	}
	if req.TaxRate != nil {
		if err := draft.SetTaxRate(lid, *req.TaxRate); err != nil {
			return DraftView{}, err
		}
	}
	return snapshot(draft), nil
}

func (s *draftService) RemoveLine(id, lineID string) (DraftView, error) {
	lid, err := uuid.Parse(lineID)
	if err != nil {
		return DraftView{}, apperr.Validation("invalid line id: %s", lineID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookup(id)
	if err != nil {
		return DraftView{}, err
	}
	if err := draft.RemoveLine(lid); err != nil {
		return DraftView{}, err
	}
	return snapshot(draft), nil
}

func (s *draftService) SaveDraft(ctx context.Context, id string) (uint, error) {
	s.mu.Lock()
	draft, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	req, err := draftToRequest(draft)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	invoiceID, err := s.invoiceService.CreateInvoice(ctx, req)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	delete(s.drafts, draft.ID)
	s.mu.Unlock()
	return invoiceID, nil
}

// --- Helpers ---

func (s *draftService) lookup(id string) (*pricing.Draft, error) {
	did, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid draft id: %s", id)
	}
	draft, ok := s.drafts[did]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return draft, nil
}

func (s *draftService) findProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("product %d does not exist", id)
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	return product, nil
}

// snapshot copies the draft so callers can marshal it outside the store lock.
func snapshot(d *pricing.Draft) DraftView {
	clone := *d
	clone.Lines = append([]pricing.Line(nil), d.Lines...)
	return DraftView{Draft: &clone, Totals: clone.Totals()}
}

func draftToRequest(d *pricing.Draft) (CreateInvoiceRequest, error) {
	factor, err := d.Rates.Factor(d.Currency)
	if err != nil {
		return CreateInvoiceRequest{}, err
	}
	totals := d.Totals()

	req := CreateInvoiceRequest{
		AccountID:      d.AccountID,
		Date:           d.Date,
		DueDate:        d.DueDate,
		Warehouse:      d.Warehouse,
		Currency:       d.Currency,
		ExchangeRate:   factor,
		Subtotal:       totals.Subtotal,
		DiscountTotal:  totals.DiscountTotal,
		TaxTotal:       totals.TaxTotal,
		Transportation: d.Transportation,
		GrandTotal:     totals.GrandTotal,
		NoTax:          d.NoTax,
	}
	for _, l := range d.Lines {
		req.Items = append(req.Items, InvoiceItemPayload{
			ProductID:    l.ProductID,
			VariantID:    l.VariantID,
			Quantity:     l.Quantity,
			BasePriceUSD: l.BasePriceUSD,
			UnitPrice:    l.UnitPrice,
			DiscountRate: l.DiscountRate,
			TaxRate:      l.TaxRate,
			Total:        l.Total,
		})
	}
	return req, nil
}
