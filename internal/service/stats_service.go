package service

import (
	"context"
	"fmt"

	"zigzax/internal/repository"
)

// StatsResponse feeds the dashboard stat cards.
type StatsResponse struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalAccounts int64 `json:"totalAccounts"`
	TotalInvoices int64 `json:"totalInvoices"`
}

type StatsService interface {
	GetStats(ctx context.Context) (StatsResponse, error)
}

type statsService struct {
	productRepo repository.ProductRepository
	accountRepo repository.AccountRepository
	invoiceRepo repository.InvoiceRepository
}

func NewStatsService(
	productRepo repository.ProductRepository,
	accountRepo repository.AccountRepository,
	invoiceRepo repository.InvoiceRepository,
) StatsService {
	return &statsService{
		productRepo: productRepo,
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *statsService) GetStats(ctx context.Context) (StatsResponse, error) {
	var resp StatsResponse
	var err error

	if resp.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return StatsResponse{}, fmt.Errorf("failed to count products: %w", err)
	}
	if resp.TotalAccounts, err = s.accountRepo.Count(ctx); err != nil {
		return StatsResponse{}, fmt.Errorf("failed to count accounts: %w", err)
	}
	if resp.TotalInvoices, err = s.invoiceRepo.Count(ctx); err != nil {
		return StatsResponse{}, fmt.Errorf("failed to count invoices: %w", err)
	}
	return resp, nil
}
