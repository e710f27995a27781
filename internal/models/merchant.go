package models

import (
	"time"

	"gorm.io/gorm"
)

// Merchant statuses
const (
	MerchantStatusActive    = "active"
	MerchantStatusSuspended = "suspended"
)

// Merchant roles
const (
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

type Merchant struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	BusinessName string `gorm:"not null"`
	Country      string `gorm:"size:2;not null"` // home market, ISO 3166-1 alpha-2
	SellerTier   string `gorm:"default:'standard'"`
	Role         string `gorm:"default:'merchant'"`
	Status       string `gorm:"default:'active'"`
	// SignupDate is the marketplace onboarding date, which may predate this
	// row; it drives the new-seller fee waiver.
	SignupDate   time.Time
	TokenVersion int `gorm:"default:1"`
	LastLoginAt  *time.Time
}

// SellerAttrs builds the resolver input for this merchant given the order
// count for the current billing period.
func (m *Merchant) SellerAttrs(ordersThisPeriod int) SellerAttrs {
	return SellerAttrs{
		Tier:             SellerTier(m.SellerTier),
		SignupDate:       m.SignupDate,
		OrdersThisPeriod: ordersThisPeriod,
	}
}
