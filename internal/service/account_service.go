package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/request"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/repository"
)

// AccountService handles account-related business logic operations.
type AccountService struct {
	accountRepo *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository dependencies.
func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

// GetAccounts retrieves accounts, optionally restricted to active ones.
func (s *AccountService) GetAccounts(filter model.AccountFilter) ([]model.Account, error) {
	return s.accountRepo.GetAccounts(filter)
}

// GetAccount retrieves a single account by its ID.
func (s *AccountService) GetAccount(accountID string) (model.Account, error) {
	return s.accountRepo.GetAccountOnID(accountID)
}

// CreateAccount stores a new account with a generated ID.
func (s *AccountService) CreateAccount(ctx context.Context, req request.CreateAccountRequest) (*model.Account, error) {
	account := &model.Account{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Broker:    strings.TrimSpace(req.Broker),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.accountRepo.InsertAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// UpdateAccount applies the provided fields to an existing account.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req request.UpdateAccountRequest) (model.Account, error) {
	account, err := s.accountRepo.GetAccountOnID(accountID)
	if err != nil {
		return model.Account{}, err
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Broker != nil {
		account.Broker = strings.TrimSpace(*req.Broker)
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := s.accountRepo.UpdateAccount(ctx, &account); err != nil {
		return model.Account{}, err
	}

	return account, nil
}

// DeleteAccount removes an account. Accounts with transactions are refused.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	return s.accountRepo.DeleteAccount(ctx, accountID)
}
