package repositories

import (
	"errors"

	"crossquote/internal/models"
)

var (
	ErrMerchantNotFound  = errors.New("merchant not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// MerchantRepository defines the interface for merchant account persistence
type MerchantRepository interface {
	// Create creates a new merchant account
	Create(merchant *models.Merchant) error

	// GetByID retrieves a merchant by primary key
	GetByID(id uint) (*models.Merchant, error)

	// GetByEmail retrieves a merchant by email address
	GetByEmail(email string) (*models.Merchant, error)

	// Update updates an existing merchant
	Update(merchant *models.Merchant) error

	// IncrementTokenVersion invalidates all outstanding tokens
	IncrementTokenVersion(merchantID uint) error

	// UpdatePassword sets a new password hash
	UpdatePassword(merchantID uint, hashedPassword string) error

	// List retrieves merchants with pagination
	List(offset, limit int) ([]*models.Merchant, int64, error)
}
