package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aayushs-edu/stockapp-sub000/internal/apperrors"
	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/repository"
)

// csvHeaders is the required import column order. Export uses the same
// layout prefixed with id and account columns, so an exported file can be
// trimmed and re-imported.
var csvHeaders = []string{
	"date", "symbol", "side", "quantity", "price", "brokerage",
	"source", "order_ref", "remarks",
}

// ImpExpService handles CSV import and export of the transaction log.
type ImpExpService struct {
	transactionRepo *repository.TransactionRepository
	accountRepo     *repository.AccountRepository
}

// NewImpExpService creates a new ImpExpService with the provided repository dependencies.
func NewImpExpService(
	transactionRepo *repository.TransactionRepository,
	accountRepo *repository.AccountRepository,
) *ImpExpService {
	return &ImpExpService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// ImportCSV parses transactions from r and stores them in the given account.
// The whole file is validated before anything is written; a bad row rejects
// the entire import.
func (s *ImpExpService) ImportCSV(ctx context.Context, accountID string, r io.Reader) (int, error) {
	if _, err := s.accountRepo.GetAccountOnID(accountID); err != nil {
		return 0, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVHeaders, err)
	}
	if err := checkCSVHeaders(header); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	transactions := []*model.Transaction{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		tx, err := parseCSVRecord(record)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		tx.AccountID = accountID
		tx.CreatedAt = now
		transactions = append(transactions, tx)
	}

	if len(transactions) == 0 {
		return 0, nil
	}
	if err := s.transactionRepo.InsertTransactions(ctx, transactions); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrFailedToImportTransactions, err)
	}
	return len(transactions), nil
}

// ExportCSV writes the transactions matching the filter to w.
func (s *ImpExpService) ExportCSV(w io.Writer, filter model.TransactionFilter) error {
	transactions, err := s.transactionRepo.GetTransactions(filter)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToExportTransactions, err)
	}

	writer := csv.NewWriter(w)
	header := append([]string{"id", "account_id", "account_name"}, csvHeaders...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, tx := range transactions {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.AccountID,
			tx.AccountName,
			tx.Date.Format("2006-01-02"),
			tx.Symbol,
			tx.Side,
			strconv.FormatFloat(tx.Quantity, 'f', -1, 64),
			strconv.FormatFloat(tx.Price, 'f', -1, 64),
			strconv.FormatFloat(tx.Brokerage, 'f', -1, 64),
			tx.Source,
			tx.OrderRef,
			tx.Remarks,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func checkCSVHeaders(header []string) error {
	if len(header) != len(csvHeaders) {
		return fmt.Errorf("%w: expected %d columns, got %d",
			apperrors.ErrInvalidCSVHeaders, len(csvHeaders), len(header))
	}
	for i, want := range csvHeaders {
		if strings.ToLower(strings.TrimSpace(header[i])) != want {
			return fmt.Errorf("%w: column %d must be %q", apperrors.ErrInvalidCSVHeaders, i+1, want)
		}
	}
	return nil
}

func parseCSVRecord(record []string) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	symbol := strings.ToUpper(strings.TrimSpace(record[1]))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	side := strings.ToLower(strings.TrimSpace(record[2]))
	if side != model.SideBuy && side != model.SideSell {
		return nil, fmt.Errorf("invalid side: %q", record[2])
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil || quantity <= 0 {
		return nil, fmt.Errorf("invalid quantity: %q", record[3])
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("invalid price: %q", record[4])
	}

	brokerage := 0.0
	if v := strings.TrimSpace(record[5]); v != "" {
		brokerage, err = strconv.ParseFloat(v, 64)
		if err != nil || brokerage < 0 {
			return nil, fmt.Errorf("invalid brokerage: %q", record[5])
		}
	}

	return &model.Transaction{
		Date:       date,
		Symbol:     symbol,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		TradeValue: engine.Mul(quantity, price),
		Brokerage:  brokerage,
		Source:     strings.TrimSpace(record[6]),
		OrderRef:   strings.TrimSpace(record[7]),
		Remarks:    strings.TrimSpace(record[8]),
	}, nil
}
