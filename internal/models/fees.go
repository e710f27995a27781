package models

import "time"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryOther       Category = "other"
)

// Valid reports whether the category is one of the enumerated set.
func (c Category) Valid() bool {
	return c == CategoryElectronics || c == CategoryOther
}

type SellerTier string

const (
	TierStandard  SellerTier = "standard"
	TierPreferred SellerTier = "preferred"
)

// Band is a commission range. Flat rates carry Low == High. The effective
// rate is the arithmetic midpoint, an approximation of the true per-order
// rate, which varies by sub-category.
type Band struct {
	Low  float64
	High float64
}

func Flat(rate float64) Band {
	return Band{Low: rate, High: rate}
}

func (b Band) Effective() float64 {
	return (b.Low + b.High) / 2
}

// Waiver is the resolved order-processing-fee decision for one request.
type Waiver struct {
	NewSellerWaived          bool
	ExistingSellerFreeOrders int
	Waived                   bool
}

// FeeSchedule is the per-request fee and tax schedule a quote is priced
// against. It is constructed fresh per request and never mutated. The duty
// rate itself is not part of the schedule: callers choose one inside
// [DutyRateMin, DutyRateMax] on the pricing request.
type FeeSchedule struct {
	Country  string
	Currency string
	Category Category
	Tier     SellerTier

	CommissionRate     float64
	GrowthServiceRate  float64
	GrowthServiceCap   float64 // math.Inf(1) when uncapped
	TransactionFeeRate float64
	VATRate            float64
	DutyRateMin        float64
	DutyRateMax        float64
	InfrastructureFee  float64
	OrderProcessingFee float64
	Waiver             Waiver
}

// FixedFees is the per-order fixed amount the schedule charges, with the
// order-processing fee dropped when waived.
func (f *FeeSchedule) FixedFees() float64 {
	if f.Waiver.Waived {
		return f.InfrastructureFee
	}
	return f.InfrastructureFee + f.OrderProcessingFee
}

// SellerAttrs is the seller state the resolver evaluates waivers against.
type SellerAttrs struct {
	Tier             SellerTier
	SignupDate       time.Time
	OrdersThisPeriod int
}

// CountrySchedule is one row of the static reference table. Notes are
// display data passed through to clients, never consumed by the solver.
type CountrySchedule struct {
	Code        string
	Name        string
	Currency    string
	DefaultTier SellerTier

	Commission      map[Category]Band
	TierCommission  map[SellerTier]Band
	GrowthRates     map[Category]float64
	GrowthCap       float64 // math.Inf(1) when uncapped
	TransactionRate float64
	VATRate         float64
	DutyRateMin     float64
	DutyRateMax     float64

	InfrastructureFee  float64
	OrderProcessingFee float64
	NewSellerGraceDays int
	FreeOrderThreshold int

	Notes []string
}
