package repositories

import "crossquote/internal/models"

// QuoteFilter narrows quote listings.
type QuoteFilter struct {
	Status  string
	Country string
}

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	// Create persists a solved quote
	Create(quote *models.Quote) error

	// GetByQuoteID retrieves a quote by its public identifier
	GetByQuoteID(quoteID string) (*models.Quote, error)

	// ListByMerchant retrieves a merchant's quotes, newest first
	ListByMerchant(merchantID uint, filter QuoteFilter, offset, limit int) ([]*models.Quote, int64, error)

	// AllByMerchant retrieves every quote for a merchant, newest first
	AllByMerchant(merchantID uint) ([]*models.Quote, error)

	// Update updates an existing quote
	Update(quote *models.Quote) error

	// Delete removes a quote
	Delete(quote *models.Quote) error
}
