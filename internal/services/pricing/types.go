package pricing

// Request carries the merchant's cost basis and pricing knobs for one quote.
// DutyRate is the caller's choice within the schedule's duty-rate range.
type Request struct {
	PurchaseCost     float64
	LogisticsCost    float64
	TargetProfitRate float64
	DutyRate         float64
	SellerDiscount   float64
	PlatformSubsidy  float64
	ReturnRate       float64
}

// CostBase is the landed cost the target revenue is computed from.
func (r Request) CostBase() float64 {
	return r.PurchaseCost + r.LogisticsCost
}

// Result is the full price, fee, tax and profit breakdown at the solved
// (or evaluated) retail price.
type Result struct {
	RetailPrice     float64
	PreTaxPrice     float64
	DiscountedPrice float64

	PurchaseCost  float64
	LogisticsCost float64
	CostBase      float64

	ImportDuty float64
	ImportVAT  float64
	ImportTax  float64
	SalesVAT   float64

	Commission         float64
	GrowthFee          float64
	TransactionFee     float64
	InfrastructureFee  float64
	OrderProcessingFee float64
	TotalFees          float64

	TargetRevenue float64
	NetRevenue    float64
	NetProfit     float64
	ProfitRate    float64

	ReturnCost         float64
	AdjustedProfit     float64
	AdjustedProfitRate float64

	Iterations int
	Converged  bool
}
