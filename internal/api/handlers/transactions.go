package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/request"
	"github.com/aayushs-edu/stockapp-sub000/internal/api/response"
	"github.com/aayushs-edu/stockapp-sub000/internal/apperrors"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/service"
	"github.com/aayushs-edu/stockapp-sub000/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transaction and import/export services.
type TransactionHandler struct {
	transactionService *service.TransactionService
	impExpService      *service.ImpExpService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependencies.
func NewTransactionHandler(
	transactionService *service.TransactionService,
	impExpService *service.ImpExpService,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		impExpService:      impExpService,
	}
}

// Transactions handles GET requests to retrieve transactions, optionally
// filtered by account, symbol, side, and date range.
//
// Endpoint: GET /api/transaction?accounts=...&symbol=...&side=...&start_date=...&end_date=...
// Response: 200 OK with array of TransactionResponse
// Error: 400 Bad Request if a filter parameter is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	transactions, err := h.transactionService.GetTransactions(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{id}
// Response: 200 OK with TransactionResponse
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (accountId, date, symbol, side, quantity, price, brokerage, ...)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the target account does not exist
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
//
// Endpoint: PUT /api/transaction/{id}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if transaction or target account not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) || errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{id}
// Response: 204 No Content
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.transactionService.DeleteTransaction(r.Context(), transactionID); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ImportCSV handles POST requests to bulk-import transactions into one
// account from a CSV body.
//
// Endpoint: POST /api/transaction/import/{uuid}
// Request Body: CSV with headers date,symbol,side,quantity,price,brokerage,source,order_ref,remarks
// Response: 200 OK with {"imported": n}
// Error: 400 Bad Request if the CSV is malformed; nothing is imported
// Error: 404 Not Found if the target account does not exist
// Error: 500 Internal Server Error if the insert fails
func (h *TransactionHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	count, err := h.impExpService.ImportCSV(r.Context(), accountID, r.Body)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrFailedToImportTransactions) {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportTransactions.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, "invalid CSV", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"imported": count})
}

// ExportCSV handles GET requests to download the transaction log as CSV.
// Accepts the same filter parameters as the transaction list.
//
// Endpoint: GET /api/transaction/export
// Response: 200 OK with text/csv attachment
// Error: 400 Bad Request if a filter parameter is malformed
// Error: 500 Internal Server Error if the export fails
func (h *TransactionHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	if err := h.impExpService.ExportCSV(w, filter); err != nil {
		// Headers may already be out; log-and-abort is all that is left.
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExportTransactions.Error(), err.Error())
	}
}

func parseTransactionFilter(r *http.Request) (model.TransactionFilter, error) {
	q := r.URL.Query()
	filter := model.TransactionFilter{
		Symbol: strings.ToUpper(strings.TrimSpace(q.Get("symbol"))),
	}

	if accounts := q.Get("accounts"); accounts != "" {
		for _, id := range strings.Split(accounts, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				filter.AccountIDs = append(filter.AccountIDs, id)
			}
		}
	}

	if side := strings.ToLower(q.Get("side")); side != "" {
		if side != model.SideBuy && side != model.SideSell {
			return model.TransactionFilter{}, fmt.Errorf("invalid side: %s", side)
		}
		filter.Side = side
	}

	if start := q.Get("start_date"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return model.TransactionFilter{}, fmt.Errorf("invalid start_date: %w", err)
		}
		filter.StartDate = t
	}
	if end := q.Get("end_date"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return model.TransactionFilter{}, fmt.Errorf("invalid end_date: %w", err)
		}
		filter.EndDate = t
	}
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() && filter.StartDate.After(filter.EndDate) {
		return model.TransactionFilter{}, apperrors.ErrInvalidDateRange
	}

	return filter, nil
}
