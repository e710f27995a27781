package report

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"crossquote/internal/models"
	"crossquote/internal/repositories"
)

type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(quote *models.Quote) error {
	return m.Called(quote).Error(0)
}

func (m *MockQuoteRepo) GetByQuoteID(quoteID string) (*models.Quote, error) {
	args := m.Called(quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepo) ListByMerchant(merchantID uint, filter repositories.QuoteFilter, offset, limit int) ([]*models.Quote, int64, error) {
	args := m.Called(merchantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Quote), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteRepo) AllByMerchant(merchantID uint) ([]*models.Quote, error) {
	args := m.Called(merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *MockQuoteRepo) Update(quote *models.Quote) error {
	return m.Called(quote).Error(0)
}

func (m *MockQuoteRepo) Delete(quote *models.Quote) error {
	return m.Called(quote).Error(0)
}

func TestReportService_ExportQuotes(t *testing.T) {
	dir := t.TempDir()

	confirmed := time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC)
	q1 := &models.Quote{
		QuoteID:     "7a1d2c3e-1111-4444-8888-aaaaaaaaaaaa",
		MerchantID:  1,
		Status:      models.QuoteStatusConfirmed,
		Country:     "TH",
		Currency:    "THB",
		Category:    "electronics",
		Tier:        "standard",
		RetailPrice: 54.31,
		NetRevenue:  33.15,
		Converged:   true,
		ConfirmedAt: &confirmed,
	}
	q1.CreatedAt = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	q2 := &models.Quote{
		QuoteID:    "7a1d2c3e-2222-4444-8888-bbbbbbbbbbbb",
		MerchantID: 1,
		Status:     models.QuoteStatusDraft,
		Country:    "SG",
		Currency:   "SGD",
		Category:   "other",
	}

	repo := new(MockQuoteRepo)
	repo.On("AllByMerchant", uint(1)).Return([]*models.Quote{q1, q2}, nil)

	svc := NewService(repo, dir, nil)
	path, err := svc.ExportQuotes(1)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Quotes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Quote ID", header)

	first, err := f.GetCellValue("Quotes", "A2")
	require.NoError(t, err)
	assert.Equal(t, q1.QuoteID, first)

	second, err := f.GetCellValue("Quotes", "C3")
	require.NoError(t, err)
	assert.Equal(t, "SG", second)

	repo.AssertExpectations(t)
}

func TestReportService_ExportQuotesEmpty(t *testing.T) {
	dir := t.TempDir()

	repo := new(MockQuoteRepo)
	repo.On("AllByMerchant", uint(9)).Return([]*models.Quote{}, nil)

	svc := NewService(repo, dir, nil)
	path, err := svc.ExportQuotes(9)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Quotes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Quote ID", header)

	// Header only, no data rows.
	rows, err := f.GetRows("Quotes")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReportService_ExportQuotesRepoFailure(t *testing.T) {
	repo := new(MockQuoteRepo)
	repo.On("AllByMerchant", uint(2)).Return(nil, assert.AnError)

	svc := NewService(repo, t.TempDir(), nil)
	_, err := svc.ExportQuotes(2)
	assert.Error(t, err)
}
