package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/request"
	"github.com/aayushs-edu/stockapp-sub000/internal/api/response"
	"github.com/aayushs-edu/stockapp-sub000/internal/apperrors"
	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
	"github.com/aayushs-edu/stockapp-sub000/internal/service"
)

// ReportHandler handles HTTP requests for the derived-view endpoints.
// Reports are computed from the transaction log on every request.
type ReportHandler struct {
	reportService   *service.ReportService
	snapshotService *service.SnapshotService
}

// NewReportHandler creates a new ReportHandler with the provided service dependencies.
func NewReportHandler(
	reportService *service.ReportService,
	snapshotService *service.SnapshotService,
) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		snapshotService: snapshotService,
	}
}

// Holdings handles GET requests for current open positions.
//
// Endpoint: GET /api/report/holdings?accounts=...
// Response: 200 OK with HoldingsView
// Error: 400 Bad Request if a filter parameter is malformed or a
// transaction fails validation during matching
// Error: 500 Internal Server Error if computation fails
func (h *ReportHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportQuery(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	view, err := h.reportService.Holdings(req)
	if err != nil {
		respondReportError(w, apperrors.ErrFailedToComputeHoldings, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// RealizedPnL handles GET requests for realized profit/loss.
//
// Endpoint: GET /api/report/pnl?accounts=...&symbol=...&year=...&sort=...
// Response: 200 OK with PnLView
// Error: 400 Bad Request if a filter parameter is malformed or a
// transaction fails validation during matching
// Error: 500 Internal Server Error if computation fails
func (h *ReportHandler) RealizedPnL(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportQuery(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	view, err := h.reportService.RealizedPnL(req)
	if err != nil {
		respondReportError(w, apperrors.ErrFailedToComputePnL, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// SummaryBook handles GET requests for per-(symbol, account) buy/sell totals.
//
// Endpoint: GET /api/report/summary?accounts=...&symbol=...&start_date=...&end_date=...
// Response: 200 OK with SummaryBookView
// Error: 400 Bad Request if a filter parameter is malformed or a
// transaction fails validation during matching
// Error: 500 Internal Server Error if computation fails
func (h *ReportHandler) SummaryBook(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportQuery(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	view, err := h.reportService.SummaryBook(req)
	if err != nil {
		respondReportError(w, apperrors.ErrFailedToComputeSummary, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// Overview handles GET requests for the combined dashboard payload:
// holdings, realized P&L, and summary book in one response.
//
// Endpoint: GET /api/report/overview?accounts=...
// Response: 200 OK with OverviewReport
// Error: 400 Bad Request if a filter parameter is malformed or a
// transaction fails validation during matching
// Error: 500 Internal Server Error if computation fails
func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportQuery(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	report, err := h.reportService.Overview(r.Context(), req)
	if err != nil {
		respondReportError(w, apperrors.ErrFailedToComputeHoldings, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// Snapshots handles GET requests for an account's stored snapshot history.
//
// Endpoint: GET /api/report/snapshots/{uuid}
// Response: 200 OK with array of PortfolioSnapshot
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ReportHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	snapshots, err := h.snapshotService.GetSnapshots(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve snapshots", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// RunSnapshots handles POST requests to take today's snapshot for every
// active account immediately, outside the nightly schedule.
//
// Endpoint: POST /api/report/snapshots/run (requires X-API-Key)
// Response: 204 No Content
// Error: 500 Internal Server Error if any account's snapshot fails
func (h *ReportHandler) RunSnapshots(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshotService.SnapshotAll(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to run snapshots", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}

func parseReportQuery(r *http.Request) (engine.AggregationRequest, error) {
	q := r.URL.Query()
	return request.ParseReportRequest(
		q.Get("accounts"),
		q.Get("symbol"),
		q.Get("year"),
		q.Get("start_date"),
		q.Get("end_date"),
		q.Get("sort"),
	)
}

// respondReportError distinguishes bad input data from computation failure.
// A malformed transaction in the log is a client-fixable data problem.
func respondReportError(w http.ResponseWriter, opErr error, err error) {
	if errors.Is(err, engine.ErrMalformedTransaction) {
		response.RespondError(w, http.StatusBadRequest, engine.ErrMalformedTransaction.Error(), err.Error())
		return
	}
	response.RespondError(w, http.StatusInternalServerError, opErr.Error(), err.Error())
}
