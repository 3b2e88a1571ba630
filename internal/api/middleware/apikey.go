package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/response"
)

// APIKeyMiddleware guards mutating internal endpoints. Requests must carry
// an X-API-Key header matching the INTERNAL_API_KEY environment variable.
// Returns 401 Unauthorized when the key is missing or wrong, and 500 when
// the server has no key configured.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "server misconfiguration", "API key not configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
