package request

import (
	"testing"

	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
)

func TestParseReportRequest(t *testing.T) {
	t.Run("defaults to all accounts and profit descending", func(t *testing.T) {
		req, err := ParseReportRequest("", "", "", "", "", "")
		if err != nil {
			t.Fatalf("ParseReportRequest() returned unexpected error: %v", err)
		}

		if !req.Scope.All {
			t.Error("Expected all-accounts scope by default")
		}
		if req.Sort != engine.SortProfitDesc {
			t.Errorf("Expected SortProfitDesc default, got %v", req.Sort)
		}
		if req.Year != 0 {
			t.Errorf("Expected no year filter, got %d", req.Year)
		}
	})

	t.Run("parses account list and uppercases symbol", func(t *testing.T) {
		req, err := ParseReportRequest("a1, a2 ,", " infy ", "", "", "", "")
		if err != nil {
			t.Fatalf("ParseReportRequest() returned unexpected error: %v", err)
		}

		if req.Scope.All {
			t.Error("Expected explicit account scope")
		}
		if len(req.Scope.AccountIDs) != 2 {
			t.Errorf("Expected 2 account IDs, got %v", req.Scope.AccountIDs)
		}
		if req.Symbol != "INFY" {
			t.Errorf("Expected symbol INFY, got %q", req.Symbol)
		}
	})

	t.Run("parses year and sort", func(t *testing.T) {
		req, err := ParseReportRequest("", "", "2024", "", "", "profit_asc")
		if err != nil {
			t.Fatalf("ParseReportRequest() returned unexpected error: %v", err)
		}

		if req.Year != 2024 {
			t.Errorf("Expected year 2024, got %d", req.Year)
		}
		if req.Sort != engine.SortProfitAsc {
			t.Errorf("Expected SortProfitAsc, got %v", req.Sort)
		}
	})

	t.Run("parses inclusive date range", func(t *testing.T) {
		req, err := ParseReportRequest("", "", "", "2024-01-01", "2024-06-30", "")
		if err != nil {
			t.Fatalf("ParseReportRequest() returned unexpected error: %v", err)
		}

		if req.StartDate.IsZero() || req.EndDate.IsZero() {
			t.Error("Expected both range bounds set")
		}
	})

	tests := []struct {
		name                                           string
		accounts, symbol, year, start, end, sortColumn string
	}{
		{"rejects non-numeric year", "", "", "199x", "", "", ""},
		{"rejects malformed start date", "", "", "", "01/02/2024", "", ""},
		{"rejects malformed end date", "", "", "", "", "tomorrow", ""},
		{"rejects inverted range", "", "", "", "2024-06-01", "2024-01-01", ""},
		{"rejects unknown sort", "", "", "", "", "", "by-name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReportRequest(tt.accounts, tt.symbol, tt.year, tt.start, tt.end, tt.sortColumn)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
