/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the interest engine and the stored format from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Wrappers

TYPES:
  Calculation:
    CalculateRequest, CalculationDTO, LedgerEntryDTO, RatesDTO, DurationDTO

  Saved calculations:
    SaveCalculationRequest, SavedCalculationDTO

  Presets:
    PresetDTO

INPUT NUMBERS:
  principal and interest_rate are strings in the engine. Clients may send
  either "100000" or 100000; numberString accepts both and keeps the text.

AMOUNTS:
  Responses carry float64 amounts. final_amount and total_interest are
  already rounded to two places; entry amounts are not.

SEE ALSO:
  - handlers.go: Uses these types
  - saved/codec.go: Storage format (separate from this API format)
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/sambat-interest/interest"
	"github.com/warp/sambat-interest/saved"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// numberString accepts a JSON string or a JSON number.
type numberString string

func (n *numberString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = numberString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", b)
	}
	*n = numberString(num.String())
	return nil
}

// CalculateRequest is the request to run a calculation.
type CalculateRequest struct {
	Principal    numberString `json:"principal"`
	InterestRate numberString `json:"interest_rate"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
}

func (r CalculateRequest) Input() interest.Input {
	return interest.Input{
		Principal:    string(r.Principal),
		InterestRate: string(r.InterestRate),
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

// SaveCalculationRequest is the request to save a calculation under a name.
// The result is recomputed server-side from the inputs.
type SaveCalculationRequest struct {
	Name string `json:"name"`
	CalculateRequest
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type RatesDTO struct {
	Input   float64 `json:"input"`
	Annual  float64 `json:"annual"`
	Monthly float64 `json:"monthly"`
	Basis   string  `json:"basis"`
}

type DurationDTO struct {
	Years     int    `json:"years"`
	Months    int    `json:"months"`
	Days      int    `json:"days"`
	TotalDays int    `json:"total_days"`
	Text      string `json:"text"`
}

type LedgerEntryDTO struct {
	Kind              string  `json:"kind"`
	Period            string  `json:"period"`
	StartingPrincipal float64 `json:"starting_principal"`
	Interest          float64 `json:"interest"`
	EndingAmount      float64 `json:"ending_amount"`
	Derivation        string  `json:"derivation"`
}

// CalculationDTO is a calculation result.
type CalculationDTO struct {
	Principal     float64          `json:"principal"`
	FinalAmount   float64          `json:"final_amount"`
	TotalInterest float64          `json:"total_interest"`
	Rates         RatesDTO         `json:"rates"`
	Duration      DurationDTO      `json:"duration"`
	Entries       []LedgerEntryDTO `json:"entries"`
}

// SavedCalculationDTO is one saved calculation.
type SavedCalculationDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Timestamp string         `json:"timestamp"`
	Input     interest.Input `json:"input"`
	Result    CalculationDTO `json:"result"`
}

// PresetDTO is a sample input a front end can offer.
type PresetDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Input       interest.Input `json:"input"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toCalculationDTO(r interest.Result) CalculationDTO {
	entries := make([]LedgerEntryDTO, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = LedgerEntryDTO{
			Kind:              string(e.Kind),
			Period:            e.Period,
			StartingPrincipal: float(e.StartingPrincipal),
			Interest:          float(e.Interest),
			EndingAmount:      float(e.EndingAmount),
			Derivation:        e.Derivation,
		}
	}
	return CalculationDTO{
		Principal:     float(r.Principal),
		FinalAmount:   float(r.FinalAmount),
		TotalInterest: float(r.TotalInterest),
		Rates: RatesDTO{
			Input:   float(r.Rates.Input),
			Annual:  float(r.Rates.Annual),
			Monthly: float(r.Rates.Monthly),
			Basis:   string(r.Rates.Basis),
		},
		Duration: DurationDTO{
			Years:     r.Duration.Years,
			Months:    r.Duration.Months,
			Days:      r.Duration.Days,
			TotalDays: r.Duration.TotalDays(),
			Text:      r.Duration.String(),
		},
		Entries: entries,
	}
}

func toSavedDTO(s saved.SavedCalculation) SavedCalculationDTO {
	return SavedCalculationDTO{
		ID:        s.ID,
		Name:      s.Name,
		Timestamp: s.Timestamp.Format(time.RFC3339),
		Input:     s.Input,
		Result:    toCalculationDTO(s.Result),
	}
}

func float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
