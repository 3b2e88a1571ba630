// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/response"
	"github.com/aayushs-edu/stockapp-sub000/internal/validation"
)

// ValidateUUIDMiddleware validates that the uuid URL parameter is present
// and is a valid UUID. Returns 400 Bad Request if the ID is missing or
// invalid. Applied to routes addressing a single account by path.
func ValidateUUIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		UUID := chi.URLParam(r, "uuid")

		if UUID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid UUID is required", "")
			return
		}

		if err := validation.ValidateUUID(UUID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ValidateTransactionIDMiddleware validates that the id URL parameter is a
// positive integer. Transactions use the database's autoincrement ID, which
// doubles as the stable entry-order tie-breaker in the matching engine.
func ValidateTransactionIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.RespondError(w, http.StatusBadRequest, "valid transaction ID is required", raw)
			return
		}

		next.ServeHTTP(w, r)
	})
}
