package validation

import (
	"crossquote/internal/models"
)

// QuoteInput applies structural checks to a quote payload. Commercially
// unusual values pass: a negative target margin or a discount larger than
// the eventual price is a loss-leader quote, not a malformed request.
func (v *Validator) QuoteInput(input *models.QuoteInput) {
	v.Required("country", input.Country)
	v.Required("category", input.Category)
	if input.Category != "" {
		v.Check(models.Category(input.Category).Valid(), "category", "must be electronics or other")
	}

	v.NonNegative("purchase_cost", input.PurchaseCost)
	v.NonNegative("logistics_cost", input.LogisticsCost)
	v.NonNegative("seller_discount", input.SellerDiscount)
	v.NonNegative("platform_subsidy", input.PlatformSubsidy)
	v.Range("return_rate", input.ReturnRate, 0, 1)

	if input.DutyRate != nil {
		v.Range("duty_rate", *input.DutyRate, 0, 1)
	}
}

// PreviewInput validates a preview payload. A fixed retail price, when
// supplied, must be positive.
func (v *Validator) PreviewInput(input *models.PreviewInput) {
	v.QuoteInput(&input.QuoteInput)
	if input.RetailPrice != nil {
		v.Check(*input.RetailPrice > 0, "retail_price", "must be greater than zero")
	}
}
