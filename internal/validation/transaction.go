package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/request"
)

// ValidTransactionSide contains the allowed transaction side values.
var ValidTransactionSide = map[string]bool{
	"buy": true, "sell": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - accountId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - symbol: Must be non-empty
//   - side: Must be one of: buy, sell
//   - quantity: Must be positive
//   - price: Must be positive
//   - brokerage: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	accountErr := ValidateUUID(req.AccountID)
	if accountErr != nil {
		return accountErr
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	}
	_, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if strings.TrimSpace(req.Side) == "" {
		errors["side"] = "side is required"
	} else if !ValidTransactionSide[strings.ToLower(req.Side)] {
		errors["side"] = fmt.Sprintf("invalid side: %s", req.Side)
	}

	if req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	if req.Brokerage < 0.0 {
		errors["brokerage"] = "brokerage must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.AccountID != nil {
		accountErr := ValidateUUID(*req.AccountID)
		if accountErr != nil {
			return accountErr
		}
	}
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		}
		_, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Symbol != nil {
		if strings.TrimSpace(*req.Symbol) == "" {
			errors["symbol"] = "symbol must not be empty"
		}
	}
	if req.Side != nil {
		if strings.TrimSpace(*req.Side) == "" {
			errors["side"] = "side is required"
		} else if !ValidTransactionSide[strings.ToLower(*req.Side)] {
			errors["side"] = fmt.Sprintf("invalid side: %s", *req.Side)
		}
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0.0 {
			errors["quantity"] = "quantity must be positive"
		}
	}
	if req.Price != nil {
		if *req.Price <= 0.0 {
			errors["price"] = "price must be positive"
		}
	}
	if req.Brokerage != nil {
		if *req.Brokerage < 0.0 {
			errors["brokerage"] = "brokerage must not be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
