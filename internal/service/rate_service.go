package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"zigzax/internal/model"
	"zigzax/internal/pricing"
	"zigzax/internal/repository"
	"zigzax/internal/websocket"
	"zigzax/pkg/apperr"
	"zigzax/pkg/validator"
)

// RateHistoryLimit caps the number of rows the history endpoint returns.
const RateHistoryLimit = 30

// --- DTOs ---

type UpsertRateRequest struct {
	Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
	UsdTry decimal.Decimal `json:"usd_try"`
	UsdEur decimal.Decimal `json:"usd_eur"`
}

type RateResponse struct {
	Date   string          `json:"date"`
	UsdTry decimal.Decimal `json:"usd_try"`
	UsdEur decimal.Decimal `json:"usd_eur"`
}

// --- Interface ---

type RateService interface {
	// Latest returns the most recent rate by date, or the hardcoded fallback
	// when the table is empty. It only fails on storage errors.
	Latest(ctx context.Context) (RateResponse, error)
	// Upsert stores the factors for a date, overwriting an existing row in
	// place. The returned flag is true when a new row was inserted.
	Upsert(ctx context.Context, req UpsertRateRequest) (RateResponse, bool, error)
	History(ctx context.Context) ([]model.ExchangeRate, error)
}

type rateService struct {
	rateRepo repository.RateRepository
	hub      *websocket.Hub
}

func NewRateService(rateRepo repository.RateRepository, hub *websocket.Hub) RateService {
	return &rateService{rateRepo: rateRepo, hub: hub}
}

// --- Implementation ---

func (s *rateService) Latest(ctx context.Context) (RateResponse, error) {
	rate, err := s.rateRepo.FindLatest(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fallback := pricing.FallbackRates()
		return RateResponse{
			Date:   time.Now().Format("2006-01-02"),
			UsdTry: fallback.UsdTry,
			UsdEur: fallback.UsdEur,
		}, nil
	}
	if err != nil {
		return RateResponse{}, fmt.Errorf("failed to fetch latest rate: %w", err)
	}
	return RateResponse{Date: rate.Date, UsdTry: rate.UsdTry, UsdEur: rate.UsdEur}, nil
}

func (s *rateService) Upsert(ctx context.Context, req UpsertRateRequest) (RateResponse, bool, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return RateResponse{}, false, apperr.Validation("date must be a valid YYYY-MM-DD value")
	}
	if !req.UsdTry.IsPositive() || !req.UsdEur.IsPositive() {
		return RateResponse{}, false, apperr.Validation("invalid rate values")
	}

	created := false
	existing, err := s.rateRepo.FindByDate(ctx, req.Date)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		created = true
		existing = &model.ExchangeRate{Date: req.Date, UsdTry: req.UsdTry, UsdEur: req.UsdEur}
		if err := s.rateRepo.Create(ctx, existing); err != nil {
			return RateResponse{}, false, fmt.Errorf("failed to store rate: %w", err)
		}
	case err != nil:
		return RateResponse{}, false, fmt.Errorf("failed to look up rate: %w", err)
	default:
		existing.UsdTry = req.UsdTry
		existing.UsdEur = req.UsdEur
		if err := s.rateRepo.Update(ctx, existing); err != nil {
			return RateResponse{}, false, fmt.Errorf("failed to update rate: %w", err)
		}
	}

	resp := RateResponse{Date: existing.Date, UsdTry: existing.UsdTry, UsdEur: existing.UsdEur}
	if s.hub != nil {
		s.hub.Publish(websocket.EventRateUpdated, resp)
	}
	return resp, created, nil
}

func (s *rateService) History(ctx context.Context) ([]model.ExchangeRate, error) {
	rates, err := s.rateRepo.History(ctx, RateHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate history: %w", err)
	}
	return rates, nil
}
