package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/handlers"
	custommiddleware "github.com/aayushs-edu/stockapp-sub000/internal/api/middleware"
	"github.com/aayushs-edu/stockapp-sub000/internal/config"
	"github.com/aayushs-edu/stockapp-sub000/internal/service"
)

// Services bundles everything the router needs wired in.
type Services struct {
	System      *service.SystemService
	Account     *service.AccountService
	Transaction *service.TransactionService
	ImpExp      *service.ImpExpService
	Report      *service.ReportService
	Snapshot    *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(svc.Account)
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.GetAccount)
				r.Put("/", accountHandler.UpdateAccount)
				r.Delete("/", accountHandler.DeleteAccount)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction, svc.ImpExp)
			r.Get("/", transactionHandler.Transactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Get("/export", transactionHandler.ExportCSV)

			r.Route("/import/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Post("/", transactionHandler.ImportCSV)
			})

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTransactionIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/report", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(svc.Report, svc.Snapshot)
			r.Get("/holdings", reportHandler.Holdings)
			r.Get("/pnl", reportHandler.RealizedPnL)
			r.Get("/summary", reportHandler.SummaryBook)
			r.Get("/overview", reportHandler.Overview)

			r.With(custommiddleware.APIKeyMiddleware).Post("/snapshots/run", reportHandler.RunSnapshots)

			r.Route("/snapshots/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", reportHandler.Snapshots)
			})
		})
	})

	return r
}
