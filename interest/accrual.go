/*
accrual.go - Compound interest accrual over a Duration

PURPOSE:
  Produces the ledger: one entry per full year (annual compounding), then
  one combined entry for any trailing months and days.

ALGORITHM:
  current := principal
  for each full year N:
      interest := current * annual / 100
      append "Year N"; current += interest
  if months or days remain:
      monthly := current * monthlyRate / 100     (post-compounding principal)
      partial := monthly * months + (monthly / 30) * days
      append one entry; current += partial
  final := round2(current); total := round2(current - principal)

INVARIANTS:
  - Entries are chronological and never modified after append
  - Only FinalAmount and TotalInterest are rounded
  - Zero duration -> empty ledger, final == principal
  - No amount exceeds math.MaxFloat64

SEE ALSO:
  - rate.go: RatesFor (monthly vs annual interpretation)
  - date.go: ComputeDuration
*/
package interest

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	daysPerMonth = decimal.NewFromInt(DaysPerMonth)
	maxAmount    = decimal.NewFromFloat(math.MaxFloat64)
)

// ComputeInterest runs the accrual loop. It re-checks the principal and
// rate bounds; everything else is assumed validated. Accrual stops with
// *OverflowError once the amount exceeds the largest float64.
func ComputeInterest(principal, rate decimal.Decimal, d Duration) (Result, error) {
	if !principal.IsPositive() {
		return Result{}, &InvalidPrincipalError{Input: principal.String()}
	}
	if rate.IsNegative() {
		return Result{}, &InvalidRateError{Input: rate.String()}
	}

	rates := RatesFor(rate)
	current := principal
	entries := make([]LedgerEntry, 0, d.Years+1)

	for year := 1; year <= d.Years; year++ {
		accrued := current.Mul(rates.Annual).Div(hundred)
		next := current.Add(accrued)
		if next.GreaterThan(maxAmount) {
			return Result{}, &OverflowError{Period: fmt.Sprintf("Year %d", year)}
		}
		entries = append(entries, LedgerEntry{
			Kind:              EntryYear,
			Period:            fmt.Sprintf("Year %d", year),
			StartingPrincipal: current,
			Interest:          accrued,
			EndingAmount:      next,
			Derivation: fmt.Sprintf("%s × %s%% = %s",
				money(current), percent(rates.Annual), money(accrued)),
		})
		current = next
	}

	if d.HasRemainder() {
		entry := partialEntry(current, rates, d.Months, d.Days)
		if entry.EndingAmount.GreaterThan(maxAmount) {
			return Result{}, &OverflowError{Period: entry.Period}
		}
		entries = append(entries, entry)
		current = entry.EndingAmount
	}

	return Result{
		Principal:     principal,
		FinalAmount:   current.Round(RoundingPlaces),
		TotalInterest: current.Sub(principal).Round(RoundingPlaces),
		Rates:         rates,
		Duration:      d,
		Entries:       entries,
	}, nil
}

// partialEntry accrues simple monthly interest on the post-compounding
// principal, with a day being one thirtieth of a month.
func partialEntry(current decimal.Decimal, rates Rates, months, days int) LedgerEntry {
	monthlyAmount := current.Mul(rates.Monthly).Div(hundred)
	monthsInterest := monthlyAmount.Mul(decimal.NewFromInt(int64(months)))
	dailyAmount := monthlyAmount.Div(daysPerMonth)
	daysInterest := dailyAmount.Mul(decimal.NewFromInt(int64(days)))
	accrued := monthsInterest.Add(daysInterest)

	var parts []string
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%s × %s%% = %s per month × %d = %s",
			money(current), percent(rates.Monthly), money(monthlyAmount), months, money(monthsInterest)))
	}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%s ÷ %d = %s per day × %d = %s",
			money(monthlyAmount), DaysPerMonth, money(dailyAmount), days, money(daysInterest)))
	}

	return LedgerEntry{
		Kind:              EntryPartial,
		Period:            partialLabel(months, days),
		StartingPrincipal: current,
		Interest:          accrued,
		EndingAmount:      current.Add(accrued),
		Derivation:        strings.Join(parts, "; "),
	}
}

// percent renders a rate without trailing zeros, capped at 4 places.
func percent(d decimal.Decimal) string { return d.Round(4).String() }
