package models

import "math"

// CountrySchedules is the static reference table, keyed by ISO 3166-1
// alpha-2 code. Rates are the operator's published defaults grossed up to
// include VAT on the fee where the market bills that way; they are
// illustrative figures, not tax advice. Fixed fees and caps are in the
// country's local currency.
var CountrySchedules = map[string]CountrySchedule{
	"TH": {
		Code:        "TH",
		Name:        "Thailand",
		Currency:    "THB",
		DefaultTier: TierStandard,
		Commission: map[Category]Band{
			CategoryElectronics: Flat(0.0642), // 6% + 7% VAT on the fee
			CategoryOther:       {Low: 0.0535, High: 0.0856},
		},
		TierCommission: map[SellerTier]Band{
			TierPreferred: Flat(0.0749), // bonus program adds one point
		},
		GrowthRates: map[Category]float64{
			CategoryElectronics: 0.0642,
			CategoryOther:       0.0642,
		},
		GrowthCap:          199,
		TransactionRate:    0.0321, // 3% + VAT
		VATRate:            0.07,
		DutyRateMin:        0,
		DutyRateMax:        0.30,
		InfrastructureFee:  1.07,
		OrderProcessingFee: 5.35,
		NewSellerGraceDays: 30,
		FreeOrderThreshold: 50,
		Notes: []string{
			"Commission and transaction rates include 7% VAT charged on the fee.",
			"Illustrative defaults for cross-border sellers; not tax advice.",
		},
	},
	"MY": {
		Code:        "MY",
		Name:        "Malaysia",
		Currency:    "MYR",
		DefaultTier: TierStandard,
		Commission: map[Category]Band{
			CategoryElectronics: Flat(0.0540),
			CategoryOther:       {Low: 0.0432, High: 0.0864},
		},
		GrowthRates: map[Category]float64{
			CategoryElectronics: 0.0216,
			CategoryOther:       0.0216,
		},
		GrowthCap:          30,
		TransactionRate:    0.0216,
		VATRate:            0.08, // SST on imported digital-platform services
		DutyRateMin:        0,
		DutyRateMax:        0.25,
		InfrastructureFee:  0.54,
		OrderProcessingFee: 2.16,
		NewSellerGraceDays: 60,
		FreeOrderThreshold: 100,
		Notes: []string{
			"Fee rates include 8% service tax.",
			"Illustrative defaults for cross-border sellers; not tax advice.",
		},
	},
	"PH": {
		Code:        "PH",
		Name:        "Philippines",
		Currency:    "PHP",
		DefaultTier: TierStandard,
		Commission: map[Category]Band{
			CategoryElectronics: Flat(0.0616),
			CategoryOther:       {Low: 0.0448, High: 0.0784},
		},
		GrowthRates: map[Category]float64{
			CategoryElectronics: 0.0224,
			CategoryOther:       0.0224,
		},
		GrowthCap:          299,
		TransactionRate:    0.0246,
		VATRate:            0.12,
		DutyRateMin:        0,
		DutyRateMax:        0.30,
		InfrastructureFee:  5.60,
		OrderProcessingFee: 8.96,
		NewSellerGraceDays: 90,
		FreeOrderThreshold: 50,
		Notes: []string{
			"Fee rates include 12% VAT.",
			"Illustrative defaults for cross-border sellers; not tax advice.",
		},
	},
	"VN": {
		Code:        "VN",
		Name:        "Vietnam",
		Currency:    "VND",
		DefaultTier: TierStandard,
		Commission: map[Category]Band{
			CategoryElectronics: Flat(0.0432),
			CategoryOther:       {Low: 0.0324, High: 0.0648},
		},
		GrowthRates: map[Category]float64{
			CategoryElectronics: 0.0216,
			CategoryOther:       0.0216,
		},
		GrowthCap:          50000,
		TransactionRate:    0.0324,
		VATRate:            0.08,
		DutyRateMin:        0,
		DutyRateMax:        0.30,
		InfrastructureFee:  3000,
		OrderProcessingFee: 1620,
		NewSellerGraceDays: 30,
		FreeOrderThreshold: 30,
		Notes: []string{
			"Fee rates include 8% VAT.",
			"Illustrative defaults for cross-border sellers; not tax advice.",
		},
	},
	"SG": {
		Code:        "SG",
		Name:        "Singapore",
		Currency:    "SGD",
		DefaultTier: TierStandard,
		Commission: map[Category]Band{
			CategoryElectronics: Flat(0.0545),
			CategoryOther:       {Low: 0.0436, High: 0.0872},
		},
		TierCommission: map[SellerTier]Band{
			TierPreferred: Flat(0.0654),
		},
		GrowthRates: map[Category]float64{
			CategoryElectronics: 0.0218,
			CategoryOther:       0.0218,
		},
		GrowthCap:          math.Inf(1), // no published cap
		TransactionRate:    0.0218,
		VATRate:            0.09,
		DutyRateMin:        0,
		DutyRateMax:        0, // GST only, goods largely duty free
		InfrastructureFee:  0.33,
		OrderProcessingFee: 1.09,
		NewSellerGraceDays: 14,
		FreeOrderThreshold: 20,
		Notes: []string{
			"Fee rates include 9% GST.",
			"Illustrative defaults for cross-border sellers; not tax advice.",
		},
	},
	"ID": {
		Code:        "ID",
		Name:        "Indonesia",
		Currency:    "IDR",
		DefaultTier: TierStandard,
		Commission: map[Category]Band{
			CategoryElectronics: Flat(0.0444),
			CategoryOther:       {Low: 0.0333, High: 0.0777},
		},
		GrowthRates: map[Category]float64{
			CategoryElectronics: 0.0222,
			CategoryOther:       0.0222,
		},
		GrowthCap:          40000,
		TransactionRate:    0.0444,
		VATRate:            0.11,
		DutyRateMin:        0,
		DutyRateMax:        0.375,
		InfrastructureFee:  1110,
		OrderProcessingFee: 1665,
		NewSellerGraceDays: 45,
		FreeOrderThreshold: 25,
		Notes: []string{
			"Fee rates include 11% VAT.",
			"Illustrative defaults for cross-border sellers; not tax advice.",
		},
	},
}
