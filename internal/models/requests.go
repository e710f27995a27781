package models

// RegisterMerchantInput is the payload for merchant signup.
type RegisterMerchantInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
	Country      string `json:"country"`
	SellerTier   string `json:"seller_tier"`
}

// LoginInput is the payload for credential login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshInput carries a refresh token to exchange for a new pair.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordInput is the payload for a password change.
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// QuoteInput is the payload for creating or previewing a quote. Costs and
// the target rate are in the destination currency. DutyRate is optional;
// when absent the top of the destination's duty band is applied.
type QuoteInput struct {
	Country          string   `json:"country"`
	Category         string   `json:"category"`
	PurchaseCost     float64  `json:"purchase_cost"`
	LogisticsCost    float64  `json:"logistics_cost"`
	TargetProfitRate float64  `json:"target_profit_rate"`
	DutyRate         *float64 `json:"duty_rate,omitempty"`
	SellerDiscount   float64  `json:"seller_discount"`
	PlatformSubsidy  float64  `json:"platform_subsidy"`
	ReturnRate       float64  `json:"return_rate"`
}

// PreviewInput is QuoteInput plus an optional fixed retail price. When
// RetailPrice is set the engine reports the breakdown at that price instead
// of solving for one.
type PreviewInput struct {
	QuoteInput
	RetailPrice *float64 `json:"retail_price,omitempty"`
}
