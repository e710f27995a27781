package repositories

import (
	"errors"
	"strings"

	"crossquote/internal/models"

	"gorm.io/gorm"
)

type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new instance of MerchantRepository
func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) Create(merchant *models.Merchant) error {
	if err := r.db.Create(merchant).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *merchantRepository) GetByID(id uint) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.db.First(&merchant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &merchant, nil
}

func (r *merchantRepository) GetByEmail(email string) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.db.Where("email = ?", email).First(&merchant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &merchant, nil
}

func (r *merchantRepository) Update(merchant *models.Merchant) error {
	if err := r.db.Save(merchant).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *merchantRepository) IncrementTokenVersion(merchantID uint) error {
	result := r.db.Model(&models.Merchant{}).
		Where("id = ?", merchantID).
		Update("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrMerchantNotFound
	}
	return nil
}

func (r *merchantRepository) UpdatePassword(merchantID uint, hashedPassword string) error {
	result := r.db.Model(&models.Merchant{}).
		Where("id = ?", merchantID).
		Update("password", hashedPassword)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrMerchantNotFound
	}
	return nil
}

func (r *merchantRepository) List(offset, limit int) ([]*models.Merchant, int64, error) {
	var merchants []*models.Merchant
	var total int64

	if err := r.db.Model(&models.Merchant{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	if err := r.db.Order("id").Offset(offset).Limit(limit).Find(&merchants).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return merchants, total, nil
}

// isUniqueViolation matches the unique-constraint failure the postgres
// driver reports without binding to a driver error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
