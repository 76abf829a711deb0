package saved

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/sambat-interest/interest"
)

// =============================================================================
// WIRE FORMAT - One JSON array under the storage key
// =============================================================================
// Decimals are encoded as JSON strings so the round trip is exact.

type record struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Name      string         `json:"name"`
	Input     interest.Input `json:"input"`
	Result    resultRecord   `json:"result"`
}

type resultRecord struct {
	Principal     decimal.Decimal   `json:"principal"`
	FinalAmount   decimal.Decimal   `json:"final_amount"`
	TotalInterest decimal.Decimal   `json:"total_interest"`
	Rates         ratesRecord       `json:"rates"`
	Duration      interest.Duration `json:"duration"`
	Entries       []entryRecord     `json:"entries"`
}

type ratesRecord struct {
	Input   decimal.Decimal `json:"input"`
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
	Basis   string          `json:"basis"`
}

type entryRecord struct {
	Kind              string          `json:"kind"`
	Period            string          `json:"period"`
	StartingPrincipal decimal.Decimal `json:"starting_principal"`
	Interest          decimal.Decimal `json:"interest"`
	EndingAmount      decimal.Decimal `json:"ending_amount"`
	Derivation        string          `json:"derivation"`
}

// Encode serializes the whole collection.
func Encode(c Collection) (string, error) {
	records := make([]record, len(c))
	for i, s := range c {
		records[i] = toRecord(s)
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode saved calculations: %w", err)
	}
	return string(b), nil
}

// Decode parses a value produced by Encode. Any failure wraps ErrMalformed.
func Decode(value string) (Collection, error) {
	var records []record
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	c := make(Collection, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrMalformed, i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrMalformed, r.ID)
		}
		seen[r.ID] = true
		c = append(c, fromRecord(r))
	}
	return c, nil
}

func toRecord(s SavedCalculation) record {
	entries := make([]entryRecord, len(s.Result.Entries))
	for i, e := range s.Result.Entries {
		entries[i] = entryRecord{
			Kind:              string(e.Kind),
			Period:            e.Period,
			StartingPrincipal: e.StartingPrincipal,
			Interest:          e.Interest,
			EndingAmount:      e.EndingAmount,
			Derivation:        e.Derivation,
		}
	}
	return record{
		ID:        s.ID,
		Timestamp: s.Timestamp,
		Name:      s.Name,
		Input:     s.Input,
		Result: resultRecord{
			Principal:     s.Result.Principal,
			FinalAmount:   s.Result.FinalAmount,
			TotalInterest: s.Result.TotalInterest,
			Rates: ratesRecord{
				Input:   s.Result.Rates.Input,
				Annual:  s.Result.Rates.Annual,
				Monthly: s.Result.Rates.Monthly,
				Basis:   string(s.Result.Rates.Basis),
			},
			Duration: s.Result.Duration,
			Entries:  entries,
		},
	}
}

func fromRecord(r record) SavedCalculation {
	entries := make([]interest.LedgerEntry, len(r.Result.Entries))
	for i, e := range r.Result.Entries {
		entries[i] = interest.LedgerEntry{
			Kind:              interest.EntryKind(e.Kind),
			Period:            e.Period,
			StartingPrincipal: e.StartingPrincipal,
			Interest:          e.Interest,
			EndingAmount:      e.EndingAmount,
			Derivation:        e.Derivation,
		}
	}
	return SavedCalculation{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Name:      r.Name,
		Input:     r.Input,
		Result: interest.Result{
			Principal:     r.Result.Principal,
			FinalAmount:   r.Result.FinalAmount,
			TotalInterest: r.Result.TotalInterest,
			Rates: interest.Rates{
				Input:   r.Result.Rates.Input,
				Annual:  r.Result.Rates.Annual,
				Monthly: r.Result.Rates.Monthly,
				Basis:   interest.RateBasis(r.Result.Rates.Basis),
			},
			Duration: r.Result.Duration,
			Entries:  entries,
		},
	}
}
