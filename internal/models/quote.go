package models

import (
	"time"

	"gorm.io/gorm"
)

// Quote statuses
const (
	QuoteStatusDraft     = "draft"
	QuoteStatusConfirmed = "confirmed"
)

// Quote is a persisted pricing run: the merchant's inputs, the resolved
// schedule snapshot, and the solved breakdown.
type Quote struct {
	gorm.Model
	QuoteID    string `gorm:"uniqueIndex;not null"`
	MerchantID uint   `gorm:"index;not null"`
	Status     string `gorm:"default:'draft';index"`

	Country  string `gorm:"size:2;not null"`
	Currency string
	Category string
	Tier     string

	PurchaseCost     float64
	LogisticsCost    float64
	TargetProfitRate float64
	DutyRate         float64
	SellerDiscount   float64
	PlatformSubsidy  float64
	ReturnRate       float64

	RetailPrice        float64
	PreTaxPrice        float64
	DiscountedPrice    float64
	CostBase           float64
	ImportDuty         float64
	ImportVAT          float64
	ImportTax          float64
	SalesVAT           float64
	Commission         float64
	GrowthFee          float64
	TransactionFee     float64
	InfrastructureFee  float64
	OrderProcessingFee float64
	FixedFees          float64
	TotalFees          float64
	TargetRevenue      float64
	NetRevenue         float64
	NetProfit          float64
	ProfitRate         float64
	ReturnCost         float64
	AdjustedProfit     float64
	AdjustedProfitRate float64
	Iterations         int
	Converged          bool

	// ScheduleSnapshot preserves the rates the quote was priced against, so
	// a later table change cannot silently repaint history.
	ScheduleSnapshot JSON `gorm:"type:jsonb"`
	ConfirmedAt      *time.Time
}
