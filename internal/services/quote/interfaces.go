package quote

import (
	"context"

	"crossquote/internal/models"
	"crossquote/internal/repositories"
)

// Service defines the main quoting interface
type Service interface {
	// Pricing operations
	CreateQuote(ctx context.Context, merchantID uint, input *models.QuoteInput) (*QuoteResponse, error)
	PreviewQuote(ctx context.Context, merchantID uint, input *models.PreviewInput) (*QuoteResponse, error)

	// Lifecycle operations
	ConfirmQuote(ctx context.Context, merchantID uint, quoteID string) (*QuoteResponse, error)
	DeleteQuote(ctx context.Context, merchantID uint, quoteID string) error

	// Read operations
	GetQuote(merchantID uint, quoteID string) (*QuoteResponse, error)
	ListQuotes(merchantID uint, filter repositories.QuoteFilter, offset, limit int) ([]*QuoteSummary, int64, error)
}
