package validation

import (
	"crossquote/internal/models"
)

// MerchantRegistration validates a signup payload.
func (v *Validator) MerchantRegistration(input *models.RegisterMerchantInput) {
	v.Required("email", input.Email)
	v.Email("email", input.Email)
	v.Password("password", input.Password)
	v.Required("business_name", input.BusinessName)
	v.MaxLength("business_name", input.BusinessName, 120)
	v.Check(len(input.Country) == 2, "country", "must be a two-letter country code")

	if input.SellerTier != "" {
		v.Check(
			input.SellerTier == string(models.TierStandard) || input.SellerTier == string(models.TierPreferred),
			"seller_tier",
			"must be standard or preferred",
		)
	}
}

// PasswordChange validates a password change payload.
func (v *Validator) PasswordChange(input *models.ChangePasswordInput) {
	v.Required("old_password", input.OldPassword)
	v.Password("new_password", input.NewPassword)
}
