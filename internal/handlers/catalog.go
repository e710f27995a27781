package handlers

import (
	stderrors "errors"
	"math"

	"github.com/gofiber/fiber/v2"

	"crossquote/internal/models"
	"crossquote/internal/services/schedule"
	"crossquote/internal/utils"
)

// CatalogHandler serves the published per-country fee reference.
type CatalogHandler struct {
	resolver schedule.Resolver
}

func NewCatalogHandler(resolver schedule.Resolver) *CatalogHandler {
	return &CatalogHandler{resolver: resolver}
}

type bandDTO struct {
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Effective float64 `json:"effective"`
}

type countryDTO struct {
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	Currency           string             `json:"currency"`
	DefaultTier        string             `json:"default_tier"`
	Commission         map[string]bandDTO `json:"commission"`
	TierCommission     map[string]bandDTO `json:"tier_commission,omitempty"`
	GrowthRates        map[string]float64 `json:"growth_rates"`
	GrowthCap          *float64           `json:"growth_cap"`
	TransactionRate    float64            `json:"transaction_rate"`
	VATRate            float64            `json:"vat_rate"`
	DutyRateMin        float64            `json:"duty_rate_min"`
	DutyRateMax        float64            `json:"duty_rate_max"`
	InfrastructureFee  float64            `json:"infrastructure_fee"`
	OrderProcessingFee float64            `json:"order_processing_fee"`
	NewSellerGraceDays int                `json:"new_seller_grace_days"`
	FreeOrderThreshold int                `json:"free_order_threshold"`
	Notes              []string           `json:"notes,omitempty"`
}

// ListCountries returns the full reference table.
func (h *CatalogHandler) ListCountries(c *fiber.Ctx) error {
	countries := h.resolver.Countries()

	dtos := make([]countryDTO, 0, len(countries))
	for _, country := range countries {
		dtos = append(dtos, newCountryDTO(country))
	}

	return utils.Success(c, fiber.Map{
		"countries": dtos,
	})
}

// GetCountry returns one destination's published rates.
func (h *CatalogHandler) GetCountry(c *fiber.Ctx) error {
	country, err := h.resolver.Country(c.Params("code"))
	if err != nil {
		if stderrors.Is(err, schedule.ErrUnknownCountry) {
			return utils.NotFound(c, err.Error())
		}
		return utils.InternalError(c, "catalog lookup failed")
	}

	return utils.Success(c, fiber.Map{
		"country": newCountryDTO(country),
	})
}

func newCountryDTO(cs models.CountrySchedule) countryDTO {
	dto := countryDTO{
		Code:               cs.Code,
		Name:               cs.Name,
		Currency:           cs.Currency,
		DefaultTier:        string(cs.DefaultTier),
		Commission:         make(map[string]bandDTO, len(cs.Commission)),
		GrowthRates:        make(map[string]float64, len(cs.GrowthRates)),
		TransactionRate:    cs.TransactionRate,
		VATRate:            cs.VATRate,
		DutyRateMin:        cs.DutyRateMin,
		DutyRateMax:        cs.DutyRateMax,
		InfrastructureFee:  cs.InfrastructureFee,
		OrderProcessingFee: cs.OrderProcessingFee,
		NewSellerGraceDays: cs.NewSellerGraceDays,
		FreeOrderThreshold: cs.FreeOrderThreshold,
		Notes:              cs.Notes,
	}

	for category, band := range cs.Commission {
		dto.Commission[string(category)] = newBandDTO(band)
	}
	if len(cs.TierCommission) > 0 {
		dto.TierCommission = make(map[string]bandDTO, len(cs.TierCommission))
		for tier, band := range cs.TierCommission {
			dto.TierCommission[string(tier)] = newBandDTO(band)
		}
	}
	for category, rate := range cs.GrowthRates {
		dto.GrowthRates[string(category)] = rate
	}
	if !math.IsInf(cs.GrowthCap, 1) {
		v := cs.GrowthCap
		dto.GrowthCap = &v
	}

	return dto
}

func newBandDTO(b models.Band) bandDTO {
	return bandDTO{
		Low:       b.Low,
		High:      b.High,
		Effective: b.Effective(),
	}
}
