package repositories

import (
	"errors"

	"crossquote/internal/models"

	"gorm.io/gorm"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new instance of QuoteRepository
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(quote *models.Quote) error {
	if err := r.db.Create(quote).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *quoteRepository) GetByQuoteID(quoteID string) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.Where("quote_id = ?", quoteID).First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &quote, nil
}

func (r *quoteRepository) ListByMerchant(merchantID uint, filter QuoteFilter, offset, limit int) ([]*models.Quote, int64, error) {
	query := r.db.Model(&models.Quote{}).Where("merchant_id = ?", merchantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var quotes []*models.Quote
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&quotes).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return quotes, total, nil
}

func (r *quoteRepository) AllByMerchant(merchantID uint) ([]*models.Quote, error) {
	var quotes []*models.Quote
	if err := r.db.Where("merchant_id = ?", merchantID).Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return quotes, nil
}

func (r *quoteRepository) Update(quote *models.Quote) error {
	if err := r.db.Save(quote).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *quoteRepository) Delete(quote *models.Quote) error {
	if err := r.db.Delete(quote).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}
