package interest

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT - Raw strings as typed by the user
// =============================================================================

// Input is what the form (or API body, or CLI flags) provides.
type Input struct {
	Principal    string `json:"principal"`
	InterestRate string `json:"interest_rate"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// Parsed is a fully validated Input.
type Parsed struct {
	Principal decimal.Decimal
	Rate      decimal.Decimal
	Start     BSDate
	End       BSDate
	Duration  Duration
}

// ParseInput validates eagerly in a fixed order: principal, rate, start
// date, end date, ordering. The first failure is returned.
func ParseInput(in Input) (Parsed, error) {
	principal, ok := parseNumber(in.Principal)
	if !ok || !principal.IsPositive() {
		return Parsed{}, &InvalidPrincipalError{Input: in.Principal}
	}

	rate, ok := parseNumber(in.InterestRate)
	if !ok || rate.IsNegative() {
		return Parsed{}, &InvalidRateError{Input: in.InterestRate}
	}

	start, err := ParseBSDate("start_date", in.StartDate)
	if err != nil {
		return Parsed{}, err
	}
	end, err := ParseBSDate("end_date", in.EndDate)
	if err != nil {
		return Parsed{}, err
	}

	d, err := ComputeDuration(start, end)
	if err != nil {
		return Parsed{}, err
	}

	return Parsed{
		Principal: principal,
		Rate:      rate,
		Start:     start,
		End:       end,
		Duration:  d,
	}, nil
}

// MaxFractionDigits bounds the scale of principal and rate, matching the
// precision kept by division.
const MaxFractionDigits = 16

// parseNumber accepts a decimal literal whose value is a finite float64 and
// whose scale is at most MaxFractionDigits. Exponent notation is allowed
// within those bounds.
func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Decimal{}, false
	}
	if d.IsZero() {
		return decimal.Zero, true
	}
	if d.Exponent() < -MaxFractionDigits {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Calculate validates the input and runs the accrual engine.
func Calculate(in Input) (Result, error) {
	p, err := ParseInput(in)
	if err != nil {
		return Result{}, err
	}
	return ComputeInterest(p.Principal, p.Rate, p.Duration)
}
