package quote

import (
	"math"
	"time"

	"crossquote/internal/models"
	"crossquote/internal/services/pricing"
)

// StatusPreview marks a response that was never persisted.
const StatusPreview = "preview"

// ScheduleDTO is the resolved fee schedule as it appears in responses. A nil
// GrowthServiceCap means the destination does not cap the growth service fee.
type ScheduleDTO struct {
	Country                  string   `json:"country"`
	Currency                 string   `json:"currency"`
	Category                 string   `json:"category"`
	Tier                     string   `json:"tier"`
	CommissionRate           float64  `json:"commission_rate"`
	GrowthServiceRate        float64  `json:"growth_service_rate"`
	GrowthServiceCap         *float64 `json:"growth_service_cap"`
	TransactionFeeRate       float64  `json:"transaction_fee_rate"`
	VATRate                  float64  `json:"vat_rate"`
	DutyRateMin              float64  `json:"duty_rate_min"`
	DutyRateMax              float64  `json:"duty_rate_max"`
	InfrastructureFee        float64  `json:"infrastructure_fee"`
	OrderProcessingFee       float64  `json:"order_processing_fee"`
	OrderProcessingFeeWaived bool     `json:"order_processing_fee_waived"`
	NewSellerWaived          bool     `json:"new_seller_waived"`
}

// BreakdownDTO is the solved price, fee, tax and profit breakdown.
type BreakdownDTO struct {
	RetailPrice     float64 `json:"retail_price"`
	PreTaxPrice     float64 `json:"pre_tax_price"`
	DiscountedPrice float64 `json:"discounted_price"`

	PurchaseCost  float64 `json:"purchase_cost"`
	LogisticsCost float64 `json:"logistics_cost"`
	CostBase      float64 `json:"cost_base"`

	ImportDuty float64 `json:"import_duty"`
	ImportVAT  float64 `json:"import_vat"`
	ImportTax  float64 `json:"import_tax"`
	SalesVAT   float64 `json:"sales_vat"`

	Commission         float64 `json:"commission"`
	GrowthFee          float64 `json:"growth_fee"`
	TransactionFee     float64 `json:"transaction_fee"`
	InfrastructureFee  float64 `json:"infrastructure_fee"`
	OrderProcessingFee float64 `json:"order_processing_fee"`
	TotalFees          float64 `json:"total_fees"`

	TargetRevenue float64 `json:"target_revenue"`
	NetRevenue    float64 `json:"net_revenue"`
	NetProfit     float64 `json:"net_profit"`
	ProfitRate    float64 `json:"profit_rate"`

	ReturnCost         float64 `json:"return_cost"`
	AdjustedProfit     float64 `json:"adjusted_profit"`
	AdjustedProfitRate float64 `json:"adjusted_profit_rate"`

	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// QuoteResponse is the full API shape of one quote.
type QuoteResponse struct {
	QuoteID     string            `json:"quote_id,omitempty"`
	Status      string            `json:"status"`
	Country     string            `json:"country"`
	Currency    string            `json:"currency"`
	Category    string            `json:"category"`
	Tier        string            `json:"tier"`
	Input       models.QuoteInput `json:"input"`
	Schedule    ScheduleDTO       `json:"schedule"`
	Breakdown   BreakdownDTO      `json:"breakdown"`
	CreatedAt   *time.Time        `json:"created_at,omitempty"`
	ConfirmedAt *time.Time        `json:"confirmed_at,omitempty"`
}

// QuoteSummary is the listing row shape.
type QuoteSummary struct {
	QuoteID     string     `json:"quote_id"`
	Status      string     `json:"status"`
	Country     string     `json:"country"`
	Currency    string     `json:"currency"`
	Category    string     `json:"category"`
	RetailPrice float64    `json:"retail_price"`
	NetRevenue  float64    `json:"net_revenue"`
	ProfitRate  float64    `json:"profit_rate"`
	Converged   bool       `json:"converged"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

func newScheduleDTO(s *models.FeeSchedule) ScheduleDTO {
	dto := ScheduleDTO{
		Country:                  s.Country,
		Currency:                 s.Currency,
		Category:                 string(s.Category),
		Tier:                     string(s.Tier),
		CommissionRate:           s.CommissionRate,
		GrowthServiceRate:        s.GrowthServiceRate,
		TransactionFeeRate:       s.TransactionFeeRate,
		VATRate:                  s.VATRate,
		DutyRateMin:              s.DutyRateMin,
		DutyRateMax:              s.DutyRateMax,
		InfrastructureFee:        s.InfrastructureFee,
		OrderProcessingFee:       s.OrderProcessingFee,
		OrderProcessingFeeWaived: s.Waiver.Waived,
		NewSellerWaived:          s.Waiver.NewSellerWaived,
	}
	if !math.IsInf(s.GrowthServiceCap, 1) {
		v := s.GrowthServiceCap
		dto.GrowthServiceCap = &v
	}
	return dto
}

// scheduleSnapshot flattens a schedule into the jsonb column. An uncapped
// growth fee is stored as nil; +Inf has no JSON encoding.
func scheduleSnapshot(s *models.FeeSchedule) models.JSON {
	snap := models.JSON{
		"country":                     s.Country,
		"currency":                    s.Currency,
		"category":                    string(s.Category),
		"tier":                        string(s.Tier),
		"commission_rate":             s.CommissionRate,
		"growth_service_rate":         s.GrowthServiceRate,
		"growth_service_cap":          nil,
		"transaction_fee_rate":        s.TransactionFeeRate,
		"vat_rate":                    s.VATRate,
		"duty_rate_min":               s.DutyRateMin,
		"duty_rate_max":               s.DutyRateMax,
		"infrastructure_fee":          s.InfrastructureFee,
		"order_processing_fee":        s.OrderProcessingFee,
		"order_processing_fee_waived": s.Waiver.Waived,
		"new_seller_waived":           s.Waiver.NewSellerWaived,
	}
	if !math.IsInf(s.GrowthServiceCap, 1) {
		snap["growth_service_cap"] = s.GrowthServiceCap
	}
	return snap
}

// scheduleFromSnapshot rebuilds the response DTO from a stored snapshot.
// JSON numbers decode as float64, so the accessors only need one shape.
func scheduleFromSnapshot(snap models.JSON) ScheduleDTO {
	num := func(key string) float64 {
		v, _ := snap[key].(float64)
		return v
	}
	str := func(key string) string {
		v, _ := snap[key].(string)
		return v
	}
	flag := func(key string) bool {
		v, _ := snap[key].(bool)
		return v
	}

	dto := ScheduleDTO{
		Country:                  str("country"),
		Currency:                 str("currency"),
		Category:                 str("category"),
		Tier:                     str("tier"),
		CommissionRate:           num("commission_rate"),
		GrowthServiceRate:        num("growth_service_rate"),
		TransactionFeeRate:       num("transaction_fee_rate"),
		VATRate:                  num("vat_rate"),
		DutyRateMin:              num("duty_rate_min"),
		DutyRateMax:              num("duty_rate_max"),
		InfrastructureFee:        num("infrastructure_fee"),
		OrderProcessingFee:       num("order_processing_fee"),
		OrderProcessingFeeWaived: flag("order_processing_fee_waived"),
		NewSellerWaived:          flag("new_seller_waived"),
	}
	if v, ok := snap["growth_service_cap"].(float64); ok {
		dto.GrowthServiceCap = &v
	}
	return dto
}

func breakdownFromResult(r *pricing.Result) BreakdownDTO {
	return BreakdownDTO{
		RetailPrice:        r.RetailPrice,
		PreTaxPrice:        r.PreTaxPrice,
		DiscountedPrice:    r.DiscountedPrice,
		PurchaseCost:       r.PurchaseCost,
		LogisticsCost:      r.LogisticsCost,
		CostBase:           r.CostBase,
		ImportDuty:         r.ImportDuty,
		ImportVAT:          r.ImportVAT,
		ImportTax:          r.ImportTax,
		SalesVAT:           r.SalesVAT,
		Commission:         r.Commission,
		GrowthFee:          r.GrowthFee,
		TransactionFee:     r.TransactionFee,
		InfrastructureFee:  r.InfrastructureFee,
		OrderProcessingFee: r.OrderProcessingFee,
		TotalFees:          r.TotalFees,
		TargetRevenue:      r.TargetRevenue,
		NetRevenue:         r.NetRevenue,
		NetProfit:          r.NetProfit,
		ProfitRate:         r.ProfitRate,
		ReturnCost:         r.ReturnCost,
		AdjustedProfit:     r.AdjustedProfit,
		AdjustedProfitRate: r.AdjustedProfitRate,
		Iterations:         r.Iterations,
		Converged:          r.Converged,
	}
}

func breakdownFromQuote(q *models.Quote) BreakdownDTO {
	return BreakdownDTO{
		RetailPrice:        q.RetailPrice,
		PreTaxPrice:        q.PreTaxPrice,
		DiscountedPrice:    q.DiscountedPrice,
		PurchaseCost:       q.PurchaseCost,
		LogisticsCost:      q.LogisticsCost,
		CostBase:           q.CostBase,
		ImportDuty:         q.ImportDuty,
		ImportVAT:          q.ImportVAT,
		ImportTax:          q.ImportTax,
		SalesVAT:           q.SalesVAT,
		Commission:         q.Commission,
		GrowthFee:          q.GrowthFee,
		TransactionFee:     q.TransactionFee,
		InfrastructureFee:  q.InfrastructureFee,
		OrderProcessingFee: q.OrderProcessingFee,
		TotalFees:          q.TotalFees,
		TargetRevenue:      q.TargetRevenue,
		NetRevenue:         q.NetRevenue,
		NetProfit:          q.NetProfit,
		ProfitRate:         q.ProfitRate,
		ReturnCost:         q.ReturnCost,
		AdjustedProfit:     q.AdjustedProfit,
		AdjustedProfitRate: q.AdjustedProfitRate,
		Iterations:         q.Iterations,
		Converged:          q.Converged,
	}
}

func responseFromQuote(q *models.Quote) *QuoteResponse {
	dutyRate := q.DutyRate
	createdAt := q.CreatedAt
	return &QuoteResponse{
		QuoteID:  q.QuoteID,
		Status:   q.Status,
		Country:  q.Country,
		Currency: q.Currency,
		Category: q.Category,
		Tier:     q.Tier,
		Input: models.QuoteInput{
			Country:          q.Country,
			Category:         q.Category,
			PurchaseCost:     q.PurchaseCost,
			LogisticsCost:    q.LogisticsCost,
			TargetProfitRate: q.TargetProfitRate,
			DutyRate:         &dutyRate,
			SellerDiscount:   q.SellerDiscount,
			PlatformSubsidy:  q.PlatformSubsidy,
			ReturnRate:       q.ReturnRate,
		},
		Schedule:    scheduleFromSnapshot(q.ScheduleSnapshot),
		Breakdown:   breakdownFromQuote(q),
		CreatedAt:   &createdAt,
		ConfirmedAt: q.ConfirmedAt,
	}
}

func summaryFromQuote(q *models.Quote) *QuoteSummary {
	return &QuoteSummary{
		QuoteID:     q.QuoteID,
		Status:      q.Status,
		Country:     q.Country,
		Currency:    q.Currency,
		Category:    q.Category,
		RetailPrice: q.RetailPrice,
		NetRevenue:  q.NetRevenue,
		ProfitRate:  q.ProfitRate,
		Converged:   q.Converged,
		CreatedAt:   q.CreatedAt,
		ConfirmedAt: q.ConfirmedAt,
	}
}
