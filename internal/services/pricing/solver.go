package pricing

import (
	"fmt"
	"math"

	"crossquote/internal/models"
)

type Solver struct{}

func NewSolver() *Solver {
	return &Solver{}
}

// Solve finds the retail price at which the merchant's net revenue equals
// costBase x (1 + targetProfitRate) under the given schedule.
func (s *Solver) Solve(schedule *models.FeeSchedule, req Request) (*Result, error) {
	denom, err := linearDenominator(schedule)
	if err != nil {
		return nil, err
	}

	costBase := req.CostBase()
	targetRevenue := costBase * (1 + req.TargetProfitRate)
	importTax := req.PurchaseCost * (req.DutyRate + (1+req.DutyRate)*schedule.VATRate)
	fixed := schedule.FixedFees()

	// Closed form of the uncapped linear system.
	price := (targetRevenue + fixed + importTax +
		req.SellerDiscount*(schedule.CommissionRate+schedule.GrowthServiceRate)) / denom

	iterations := 0
	converged := false
	for i := 0; i < MaxIterations; i++ {
		iterations = i + 1
		residual := targetRevenue - netRevenueAt(schedule, req, price, fixed, importTax)
		if math.Abs(residual) < Tolerance {
			converged = true
			break
		}
		// Net revenue is linear on each side of the cap, so a step with the
		// active regime's slope lands on that regime's root.
		slope := denom
		if (price-req.SellerDiscount)*schedule.GrowthServiceRate >= schedule.GrowthServiceCap {
			slope = denom + schedule.GrowthServiceRate
		}
		price += residual / slope
	}

	result := breakdownAt(schedule, req, price)
	result.TargetRevenue = targetRevenue
	result.Iterations = iterations
	result.Converged = converged
	return result, nil
}

// EvaluateAt reports the breakdown the schedule yields at a caller-chosen
// retail price, without solving for one.
func (s *Solver) EvaluateAt(schedule *models.FeeSchedule, req Request, price float64) (*Result, error) {
	if _, err := linearDenominator(schedule); err != nil {
		return nil, err
	}
	result := breakdownAt(schedule, req, price)
	result.TargetRevenue = req.CostBase() * (1 + req.TargetProfitRate)
	result.Converged = true
	return result, nil
}

// linearDenominator validates the schedule and returns the slope of the
// uncapped fee system, 1 - c - g - t - v/(1+v).
func linearDenominator(schedule *models.FeeSchedule) (float64, error) {
	combined := schedule.CommissionRate + schedule.GrowthServiceRate +
		schedule.TransactionFeeRate + schedule.VATRate/(1+schedule.VATRate)
	if combined >= 1 {
		return 0, fmt.Errorf("%w: combined rate %.4f", ErrDegenerateSchedule, combined)
	}
	return 1 - combined, nil
}

type feeSet struct {
	commission  float64
	growth      float64
	transaction float64
	salesVAT    float64
}

// feesAt computes each platform fee and the sales VAT at price. Commission
// and growth fee bite on the discounted price; the transaction fee bites on
// the price net of discount and subsidy; sales VAT comes out of the price on
// a VAT-inclusive basis.
func feesAt(schedule *models.FeeSchedule, req Request, price float64) feeSet {
	discounted := price - req.SellerDiscount
	return feeSet{
		commission:  discounted * schedule.CommissionRate,
		growth:      math.Min(discounted*schedule.GrowthServiceRate, schedule.GrowthServiceCap),
		transaction: (price - req.SellerDiscount - req.PlatformSubsidy) * schedule.TransactionFeeRate,
		salesVAT:    price * schedule.VATRate / (1 + schedule.VATRate),
	}
}

// netRevenueAt is what the merchant keeps at price: the discounted price
// less platform fees, sales VAT, fixed fees and import tax. The merchant
// funds the discount; the subsidy is platform money and only narrows the
// transaction-fee base.
func netRevenueAt(schedule *models.FeeSchedule, req Request, price, fixed, importTax float64) float64 {
	f := feesAt(schedule, req, price)
	return price - req.SellerDiscount -
		f.commission - f.growth - f.transaction - f.salesVAT - fixed - importTax
}

func breakdownAt(schedule *models.FeeSchedule, req Request, price float64) *Result {
	f := feesAt(schedule, req, price)

	costBase := req.CostBase()
	importDuty := req.PurchaseCost * req.DutyRate
	importVAT := req.PurchaseCost * (1 + req.DutyRate) * schedule.VATRate

	orderProcessing := schedule.OrderProcessingFee
	if schedule.Waiver.Waived {
		orderProcessing = 0
	}
	fixed := schedule.InfrastructureFee + orderProcessing

	netRevenue := price - req.SellerDiscount -
		f.commission - f.growth - f.transaction - f.salesVAT - fixed - importDuty - importVAT
	netProfit := netRevenue - costBase
	returnCost := netRevenue * req.ReturnRate
	adjustedProfit := netProfit - returnCost

	return &Result{
		RetailPrice:     price,
		PreTaxPrice:     price / (1 + schedule.VATRate),
		DiscountedPrice: price - req.SellerDiscount,

		PurchaseCost:  req.PurchaseCost,
		LogisticsCost: req.LogisticsCost,
		CostBase:      costBase,

		ImportDuty: importDuty,
		ImportVAT:  importVAT,
		ImportTax:  importDuty + importVAT,
		SalesVAT:   f.salesVAT,

		Commission:         f.commission,
		GrowthFee:          f.growth,
		TransactionFee:     f.transaction,
		InfrastructureFee:  schedule.InfrastructureFee,
		OrderProcessingFee: orderProcessing,
		TotalFees:          f.commission + f.growth + f.transaction + fixed,

		NetRevenue: netRevenue,
		NetProfit:  netProfit,
		ProfitRate: profitRate(netProfit, costBase),

		ReturnCost:         returnCost,
		AdjustedProfit:     adjustedProfit,
		AdjustedProfitRate: profitRate(adjustedProfit, costBase),
	}
}

// profitRate guards the costBase == 0 case, where the rate is defined as 0.
func profitRate(profit, costBase float64) float64 {
	if costBase == 0 {
		return 0
	}
	return profit / costBase
}
