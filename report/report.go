// Package report renders a calculation result as a human-readable table
// or as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/warp/sambat-interest/interest"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formats accepted by Write.
const (
	FormatPretty = "pretty"
	FormatCSV    = "csv"
)

// Write renders result in the named format.
func Write(w io.Writer, format string, result interest.Result) error {
	switch format {
	case FormatPretty, "":
		return Pretty(w, result)
	case FormatCSV:
		return CSV(w, result)
	default:
		return fmt.Errorf("invalid output format: %s", format)
	}
}

// Pretty writes summary lines followed by the breakdown table. Amounts use
// thousands separators and two decimals.
func Pretty(w io.Writer, result interest.Result) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "Principal      | %s\n", amount(p, result.Principal)); err != nil {
		return err
	}
	_, _ = p.Fprintf(w, "Rate           | %s%% %s (%s%% a year, %s%% a month)\n",
		result.Rates.Input.String(), result.Rates.Basis,
		result.Rates.Annual.Round(4).String(), result.Rates.Monthly.Round(4).String())
	_, _ = p.Fprintf(w, "Duration       | %s\n", result.Duration)
	_, _ = p.Fprintf(w, "Total interest | %s\n", amount(p, result.TotalInterest))
	_, _ = p.Fprintf(w, "Final amount   | %s\n", amount(p, result.FinalAmount))

	if len(result.Entries) == 0 {
		_, err := fmt.Fprintln(w, "\nNo interest accrues: start and end dates are the same.")
		return err
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tPrincipal\tInterest\tAmount\t")
	for _, e := range result.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			e.Period, amount(p, e.StartingPrincipal), amount(p, e.Interest), amount(p, e.EndingAmount))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, e := range result.Entries {
		fmt.Fprintf(w, "%s: %s\n", e.Period, e.Derivation)
	}
	return nil
}

// CSV writes one header row and one row per ledger entry. Amounts are
// plain two-decimal numbers.
func CSV(w io.Writer, result interest.Result) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"period", "kind", "starting_principal", "interest", "ending_amount", "derivation"}}
	for _, e := range result.Entries {
		rows = append(rows, []string{
			e.Period,
			string(e.Kind),
			e.StartingPrincipal.StringFixed(2),
			e.Interest.StringFixed(2),
			e.EndingAmount.StringFixed(2),
			e.Derivation,
		})
	}
	rows = append(rows, []string{
		"Total", "", result.Principal.StringFixed(2), result.TotalInterest.StringFixed(2), result.FinalAmount.StringFixed(2),
		"duration " + strconv.Itoa(result.Duration.Years) + "y " +
			strconv.Itoa(result.Duration.Months) + "m " + strconv.Itoa(result.Duration.Days) + "d",
	})
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func amount(p *message.Printer, d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return p.Sprintf("%.2f", f)
}
