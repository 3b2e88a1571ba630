package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/request"
	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	accountRepo     *repository.AccountRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	accountRepo *repository.AccountRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// GetTransactions retrieves transactions matching the filter, enriched with
// account names, ordered by date then entry order.
func (s *TransactionService) GetTransactions(filter model.TransactionFilter) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetTransactions(filter)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID int64) (model.TransactionResponse, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction stores a new transaction. The symbol is normalized to
// uppercase and the trade value is derived from quantity and price; a caller
// cannot store an inconsistent trade value.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	if _, err := s.accountRepo.GetAccountOnID(req.AccountID); err != nil {
		return nil, err
	}

	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		AccountID:  req.AccountID,
		Date:       transactionDate,
		Symbol:     strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Side:       strings.ToLower(req.Side),
		Quantity:   req.Quantity,
		Price:      req.Price,
		TradeValue: engine.Mul(req.Quantity, req.Price),
		Brokerage:  req.Brokerage,
		Source:     strings.TrimSpace(req.Source),
		OrderRef:   strings.TrimSpace(req.OrderRef),
		Remarks:    req.Remarks,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction applies the provided fields to an existing transaction
// and rederives its trade value.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID int64, req request.UpdateTransactionRequest) (model.Transaction, error) {
	existing, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.Transaction{}, err
	}
	transaction := existing.Transaction()

	if req.AccountID != nil {
		if _, err := s.accountRepo.GetAccountOnID(*req.AccountID); err != nil {
			return model.Transaction{}, err
		}
		transaction.AccountID = *req.AccountID
	}
	if req.Date != nil {
		transactionDate, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.Date = transactionDate
	}
	if req.Symbol != nil {
		transaction.Symbol = strings.ToUpper(strings.TrimSpace(*req.Symbol))
	}
	if req.Side != nil {
		transaction.Side = strings.ToLower(*req.Side)
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}
	if req.Brokerage != nil {
		transaction.Brokerage = *req.Brokerage
	}
	if req.Source != nil {
		transaction.Source = strings.TrimSpace(*req.Source)
	}
	if req.OrderRef != nil {
		transaction.OrderRef = strings.TrimSpace(*req.OrderRef)
	}
	if req.Remarks != nil {
		transaction.Remarks = *req.Remarks
	}
	transaction.TradeValue = engine.Mul(transaction.Quantity, transaction.Price)

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction. Derived views recompute on the
// next request, so no cleanup beyond the row delete is needed.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID int64) error {
	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}

// loadForAggregation fetches the raw transactions the engine consumes.
// Account scoping happens here at the query level; symbol, year, and date
// filters are left to the engine so matching still sees full buy history.
func (s *TransactionService) loadForAggregation(scope engine.AccountScope) ([]model.Transaction, error) {
	filter := model.TransactionFilter{}
	if !scope.All {
		filter.AccountIDs = scope.AccountIDs
	}

	rows, err := s.transactionRepo.GetTransactions(filter)
	if err != nil {
		return nil, err
	}

	transactions := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, row.Transaction())
	}
	return transactions, nil
}
