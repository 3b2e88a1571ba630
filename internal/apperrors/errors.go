package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSnapshotNotFound indicates that a portfolio snapshot does not exist for the given key.
	ErrSnapshotNotFound = errors.New("portfolio snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidTransactionID indicates that a transaction ID is missing or not numeric.
	ErrInvalidTransactionID = errors.New("invalid transaction ID")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrAccountInUse indicates that an account cannot be deleted because
	// transactions still reference it.
	ErrAccountInUse = errors.New("account has transactions")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	// Account operation errors
	ErrFailedToRetrieveAccounts = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveAccount  = errors.New("failed to retrieve account")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")
	ErrFailedToExportTransactions   = errors.New("failed to export transactions")
	ErrInvalidCSVHeaders            = errors.New("invalid CSV headers")

	// Report operation errors
	ErrFailedToComputeHoldings = errors.New("failed to compute holdings")
	ErrFailedToComputePnL      = errors.New("failed to compute realized profit/loss")
	ErrFailedToComputeSummary  = errors.New("failed to compute summary book")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
