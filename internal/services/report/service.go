// Package report renders a merchant's quote history into spreadsheet files.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"crossquote/internal/models"
	"crossquote/internal/repositories"
)

const sheetName = "Quotes"

type Service interface {
	// ExportQuotes writes every quote the merchant has into an .xlsx
	// workbook and returns the file path.
	ExportQuotes(merchantID uint) (string, error)
}

type service struct {
	quoteRepo  repositories.QuoteRepository
	reportsDir string
	logger     *zap.Logger
}

func NewService(quoteRepo repositories.QuoteRepository, reportsDir string, logger *zap.Logger) Service {
	if quoteRepo == nil {
		panic("quote repo is required")
	}
	if reportsDir == "" {
		reportsDir = "reports"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		quoteRepo:  quoteRepo,
		reportsDir: reportsDir,
		logger:     logger,
	}
}

func (s *service) ExportQuotes(merchantID uint) (string, error) {
	quotes, err := s.quoteRepo.AllByMerchant(merchantID)
	if err != nil {
		return "", fmt.Errorf("fetch quotes: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}

	headers := []string{
		"Quote ID", "Status", "Country", "Currency", "Category", "Tier",
		"Purchase Cost", "Logistics Cost", "Target Margin", "Duty Rate",
		"Retail Price", "Pre-Tax Price", "Import Tax", "Sales VAT",
		"Commission", "Growth Fee", "Transaction Fee", "Fixed Fees",
		"Total Fees", "Net Revenue", "Net Profit", "Profit Rate",
		"Adjusted Profit", "Converged", "Created At", "Confirmed At",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for row, quote := range quotes {
		for col, value := range quoteRow(quote) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, style)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	filename := fmt.Sprintf("quotes_%d_%s.xlsx", merchantID, time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(s.reportsDir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	s.logger.Info("quote history exported",
		zap.Uint("merchant_id", merchantID),
		zap.Int("quotes", len(quotes)),
		zap.String("path", path),
	)
	return path, nil
}

func quoteRow(q *models.Quote) []interface{} {
	confirmedAt := ""
	if q.ConfirmedAt != nil {
		confirmedAt = q.ConfirmedAt.Format("2006-01-02 15:04")
	}
	return []interface{}{
		q.QuoteID,
		q.Status,
		q.Country,
		q.Currency,
		q.Category,
		q.Tier,
		q.PurchaseCost,
		q.LogisticsCost,
		q.TargetProfitRate,
		q.DutyRate,
		q.RetailPrice,
		q.PreTaxPrice,
		q.ImportTax,
		q.SalesVAT,
		q.Commission,
		q.GrowthFee,
		q.TransactionFee,
		q.FixedFees,
		q.TotalFees,
		q.NetRevenue,
		q.NetProfit,
		q.ProfitRate,
		q.AdjustedProfit,
		q.Converged,
		q.CreatedAt.Format("2006-01-02 15:04"),
		confirmedAt,
	}
}
