/*
main.go - Command-line calculator

PURPOSE:
  Runs one calculation and prints the result, without a server or store.

COMMAND-LINE FLAGS:
  -principal  Amount lent
  -rate       Interest rate; below 10 is monthly, 10 or more is annual
  -start      Start date, YYYY-MM-DD in Bikram Sambat
  -end        End date, YYYY-MM-DD in Bikram Sambat
  -format     pretty (default), csv or json
  -log-level  Log level for diagnostics on stderr

EXIT CODES:
  0 on success, 1 on invalid input or output failure.

EXAMPLES:
  ./bsinterest -principal=100000 -rate=3 -start=2078-01-01 -end=2080-04-04
  ./bsinterest -principal=500000 -rate=12 -start=2077-04-15 -end=2080-10-15 -format=csv
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/warp/sambat-interest/config"
	"github.com/warp/sambat-interest/interest"
	"github.com/warp/sambat-interest/report"
	"go.uber.org/zap"
)

const formatJSON = "json"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bsinterest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	principal := fs.String("principal", "", "amount lent")
	rate := fs.String("rate", "", "interest rate (below 10 is monthly, 10 or more is annual)")
	start := fs.String("start", "", "start date, YYYY-MM-DD (BS)")
	end := fs.String("end", "", "end date, YYYY-MM-DD (BS)")
	format := fs.String("format", report.FormatPretty, "output format: pretty, csv or json")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logger, err := config.NewLogger(config.LoggingConfig{Level: *logLevel, Format: "console"}, "")
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	in := interest.Input{
		Principal:    *principal,
		InterestRate: *rate,
		StartDate:    *start,
		EndDate:      *end,
	}

	result, err := interest.Calculate(in)
	if err != nil {
		logger.Debug("calculation rejected",
			zap.String("kind", interest.Kind(err)),
			zap.Error(err),
		)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger.Debug("calculation complete",
		zap.Stringer("duration", result.Duration),
		zap.String("final_amount", result.FinalAmount.StringFixed(2)),
	)

	if err := write(stdout, *format, result); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func write(w io.Writer, format string, result interest.Result) error {
	if format != formatJSON {
		return report.Write(w, format, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
