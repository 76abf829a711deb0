/*
Package interest provides the compound interest engine for Bikram Sambat
date ranges.

PURPOSE:
  Turns a principal, a quoted rate and a BS start/end date pair into a
  year-by-year accrual ledger and a final amount. Everything in this
  package is pure: no I/O, no clocks, no shared state.

KEY CONCEPTS IN THIS FILE (types.go):
  - Duration: elapsed (years, months, days) under the fixed 30/365 model
  - LedgerEntry: one row of the accrual breakdown
  - Rates: how a quoted rate was interpreted (monthly vs annual)
  - Result: final amount, total interest and the ordered ledger

CALENDAR MODEL:
  Every BS month is exactly 30 days and every BS year exactly 365 days.
  The real Bikram Sambat calendar has variable month lengths; this engine
  deliberately does not model them. All numeric outputs depend on it.

PRECISION:
  Amounts are decimal.Decimal. Only Result.FinalAmount and
  Result.TotalInterest are rounded (2 places, half away from zero).
  Entry values keep full precision, so displayed per-entry interest can
  differ by a cent from the displayed total.

USAGE:
  result, err := interest.Calculate(interest.Input{
      Principal:    "100000",
      InterestRate: "3",
      StartDate:    "2078-01-01",
      EndDate:      "2080-04-04",
  })

SEE ALSO:
  - date.go: BSDate parsing and ComputeDuration
  - rate.go: Threshold-based rate interpretation
  - accrual.go: ComputeInterest
  - calculate.go: Input validation and composition
  - errors.go: Error kinds
*/
package interest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DaysPerMonth  = 30
	DaysPerYear   = 365
	MonthsPerYear = 12

	// RoundingPlaces applies to FinalAmount and TotalInterest only.
	RoundingPlaces = 2
)

var hundred = decimal.NewFromInt(100)

// =============================================================================
// DURATION - Elapsed time under the fixed 30-day month model
// =============================================================================

// Duration is the elapsed (years, months, days) between two BS dates.
// After Normalize: Months in [0,11], Days in [0,29].
type Duration struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// Normalize borrows negative components from the next larger unit and
// carries overflowing ones into it. Years is left as is and may go
// negative when the input did not describe a forward interval.
func (d Duration) Normalize() Duration {
	carry := floorDiv(d.Days, DaysPerMonth)
	d.Months += carry
	d.Days -= carry * DaysPerMonth

	carry = floorDiv(d.Months, MonthsPerYear)
	d.Years += carry
	d.Months -= carry * MonthsPerYear
	return d
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func (d Duration) IsZero() bool       { return d.Years == 0 && d.Months == 0 && d.Days == 0 }
func (d Duration) HasRemainder() bool { return d.Months > 0 || d.Days > 0 }

// TotalDays counts the duration in days (365-day years, 30-day months).
func (d Duration) TotalDays() int {
	return d.Years*DaysPerYear + d.Months*DaysPerMonth + d.Days
}

func (d Duration) String() string {
	return fmt.Sprintf("%s, %s, %s",
		plural(d.Years, "year"), plural(d.Months, "month"), plural(d.Days, "day"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// =============================================================================
// LEDGER ENTRY - One row of the accrual breakdown
// =============================================================================

type EntryKind string

const (
	EntryYear    EntryKind = "year"    // One full compounding year
	EntryPartial EntryKind = "partial" // Trailing months and days
)

// LedgerEntry is immutable once appended to a Result.
type LedgerEntry struct {
	Kind              EntryKind       `json:"kind"`
	Period            string          `json:"period"`
	StartingPrincipal decimal.Decimal `json:"starting_principal"`
	Interest          decimal.Decimal `json:"interest"`
	EndingAmount      decimal.Decimal `json:"ending_amount"`
	Derivation        string          `json:"derivation"`
}

// =============================================================================
// RESULT
// =============================================================================

type Result struct {
	Principal     decimal.Decimal `json:"principal"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	Rates         Rates           `json:"rates"`
	Duration      Duration        `json:"duration"`
	Entries       []LedgerEntry   `json:"entries"`
}

// InterestSum adds the unrounded per-entry interest.
func (r Result) InterestSum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range r.Entries {
		sum = sum.Add(e.Interest)
	}
	return sum
}

// partialLabel names the trailing entry, e.g. "3 Months 4 Days".
func partialLabel(months, days int) string {
	var parts []string
	if months > 0 {
		parts = append(parts, plural(months, "Month"))
	}
	if days > 0 {
		parts = append(parts, plural(days, "Day"))
	}
	return strings.Join(parts, " ")
}

func money(d decimal.Decimal) string { return d.StringFixed(RoundingPlaces) }
