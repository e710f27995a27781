package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"crossquote/internal/models"
)

// Resolver maps quote requests onto concrete fee schedules.
type Resolver interface {
	Resolve(countryCode string, category models.Category, attrs models.SellerAttrs) (*models.FeeSchedule, error)
	Country(code string) (models.CountrySchedule, error)
	Countries() []models.CountrySchedule
}

type resolver struct {
	table map[string]models.CountrySchedule
	now   func() time.Time
}

// NewResolver returns a resolver backed by the static country table.
func NewResolver() Resolver {
	return &resolver{
		table: models.CountrySchedules,
		now:   time.Now,
	}
}

func (r *resolver) Resolve(countryCode string, category models.Category, attrs models.SellerAttrs) (*models.FeeSchedule, error) {
	country, ok := r.table[strings.ToUpper(countryCode)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, countryCode)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	tier := attrs.Tier
	if tier == "" {
		tier = country.DefaultTier
	}

	return &models.FeeSchedule{
		Country:            country.Code,
		Currency:           country.Currency,
		Category:           category,
		Tier:               tier,
		CommissionRate:     commissionRate(country, category, tier),
		GrowthServiceRate:  categoryRate(country.GrowthRates, category),
		GrowthServiceCap:   country.GrowthCap,
		TransactionFeeRate: country.TransactionRate,
		VATRate:            country.VATRate,
		DutyRateMin:        country.DutyRateMin,
		DutyRateMax:        country.DutyRateMax,
		InfrastructureFee:  country.InfrastructureFee,
		OrderProcessingFee: country.OrderProcessingFee,
		Waiver:             r.evaluateWaiver(country, attrs),
	}, nil
}

func (r *resolver) Country(code string) (models.CountrySchedule, error) {
	country, ok := r.table[strings.ToUpper(code)]
	if !ok {
		return models.CountrySchedule{}, fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	return country, nil
}

func (r *resolver) Countries() []models.CountrySchedule {
	out := make([]models.CountrySchedule, 0, len(r.table))
	for _, country := range r.table {
		out = append(out, country)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// commissionRate applies the selection order: tier-specific band first when
// the request's tier differs from the country default, then the category
// band with "other" fallback.
func commissionRate(country models.CountrySchedule, category models.Category, tier models.SellerTier) float64 {
	if tier != country.DefaultTier {
		if band, ok := country.TierCommission[tier]; ok {
			return band.Effective()
		}
	}
	return categoryBand(country.Commission, category).Effective()
}

func categoryBand(bands map[models.Category]models.Band, category models.Category) models.Band {
	if band, ok := bands[category]; ok {
		return band
	}
	return bands[models.CategoryOther]
}

func categoryRate(rates map[models.Category]float64, category models.Category) float64 {
	if rate, ok := rates[category]; ok {
		return rate
	}
	return rates[models.CategoryOther]
}

func (r *resolver) evaluateWaiver(country models.CountrySchedule, attrs models.SellerAttrs) models.Waiver {
	newSeller := false
	if !attrs.SignupDate.IsZero() {
		grace := time.Duration(country.NewSellerGraceDays) * 24 * time.Hour
		newSeller = r.now().Sub(attrs.SignupDate) <= grace
	}
	withinFreeOrders := attrs.OrdersThisPeriod <= country.FreeOrderThreshold

	return models.Waiver{
		NewSellerWaived:          newSeller,
		ExistingSellerFreeOrders: country.FreeOrderThreshold,
		Waived:                   newSeller || withinFreeOrders,
	}
}
