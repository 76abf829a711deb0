package interest

import "github.com/shopspring/decimal"

// =============================================================================
// RATE INTERPRETATION - How Nepali lenders quote rates
// =============================================================================

// MonthlyRateThreshold splits quoted rates: anything below it is a monthly
// percentage, anything at or above it an annual percentage. A quote of
// exactly 10 is annual.
var MonthlyRateThreshold = decimal.NewFromInt(10)

var monthsPerYear = decimal.NewFromInt(MonthsPerYear)

type RateBasis string

const (
	BasisMonthly RateBasis = "monthly" // quoted rate was per month
	BasisAnnual  RateBasis = "annual"  // quoted rate was per year
)

// Rates holds a quoted rate and both derived percentages.
type Rates struct {
	Input   decimal.Decimal `json:"input"`
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
	Basis   RateBasis       `json:"basis"`
}

// RatesFor interprets a quoted percentage rate.
//
//	rate < 10   monthly = rate,      annual = rate * 12
//	rate >= 10  monthly = rate / 12, annual = rate
//
// The discontinuity at 10 is intended: 9.999 means 119.988% a year.
func RatesFor(rate decimal.Decimal) Rates {
	if rate.LessThan(MonthlyRateThreshold) {
		return Rates{
			Input:   rate,
			Annual:  rate.Mul(monthsPerYear),
			Monthly: rate,
			Basis:   BasisMonthly,
		}
	}
	return Rates{
		Input:   rate,
		Annual:  rate,
		Monthly: rate.Div(monthsPerYear),
		Basis:   BasisAnnual,
	}
}
