package service

import (
	"context"
	"fmt"

	"zigzax/internal/model"
	"zigzax/internal/repository"
)

// AccountService is read-only: counterparties are seeded and have no write
// surface in the invoice workflow.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}
