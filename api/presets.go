/*
presets.go - Sample inputs for demos and front-end shortcuts

PURPOSE:
  Pre-built inputs that show the engine's behaviors: the monthly-quoted
  rate, the annual-quoted rate, the boundary at 10, and a zero-length
  range. Presets are inputs only; clients still POST them to
  /api/calculate.

USAGE VIA API:
  GET /api/presets

ADDING NEW PRESETS:
  Append to 'presets' with a unique ID. TestPresets_AllCalculate checks
  that every preset is valid input.

SEE ALSO:
  - handlers.go: ListPresets handler
*/
package api

import "github.com/warp/sambat-interest/interest"

// =============================================================================
// PRESET DEFINITIONS
// =============================================================================

var presets = []PresetDTO{
	{
		ID:          "monthly-quote",
		Name:        "Monthly quote",
		Description: "Rs 1,00,000 at 3 (read as 3% a month, 36% a year) for 2 years 3 months 4 days",
		Input: interest.Input{
			Principal:    "100000",
			InterestRate: "3",
			StartDate:    "2078-01-01",
			EndDate:      "2080-04-04",
		},
	},
	{
		ID:          "annual-quote",
		Name:        "Annual quote",
		Description: "Rs 5,00,000 at 12 (read as 12% a year, 1% a month) for 3 years 6 months",
		Input: interest.Input{
			Principal:    "500000",
			InterestRate: "12",
			StartDate:    "2077-04-15",
			EndDate:      "2080-10-15",
		},
	},
	{
		ID:          "boundary",
		Name:        "Rate at the boundary",
		Description: "10 is the lowest rate read as annual; 9.99 would be monthly",
		Input: interest.Input{
			Principal:    "250000",
			InterestRate: "10",
			StartDate:    "2079-01-01",
			EndDate:      "2081-01-01",
		},
	},
	{
		ID:          "partial-only",
		Name:        "Less than a year",
		Description: "Only the trailing months and days accrue; no compounding",
		Input: interest.Input{
			Principal:    "75000",
			InterestRate: "2",
			StartDate:    "2080-02-20",
			EndDate:      "2080-09-05",
		},
	},
	{
		ID:          "same-day",
		Name:        "Same day",
		Description: "Start equals end: empty ledger, no interest",
		Input: interest.Input{
			Principal:    "10000",
			InterestRate: "2",
			StartDate:    "2080-01-01",
			EndDate:      "2080-01-01",
		},
	},
}
