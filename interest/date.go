package interest

import (
	"fmt"
	"regexp"
	"strconv"
)

// =============================================================================
// BS DATE - Bikram Sambat date under the fixed 30-day month model
// =============================================================================

// BSDate is a (year, month, day) triple. Parsing checks the pattern only:
// month 13 or day 35 are accepted as-is.
type BSDate struct {
	Year  int
	Month int
	Day   int
}

// DateLayout is the human form of the accepted pattern.
const DateLayout = "YYYY-MM-DD"

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ParseBSDate parses a fixed-width "DDDD-DD-DD" string. field names the
// input in the returned error.
func ParseBSDate(field, s string) (BSDate, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return BSDate{}, &InvalidDateFormatError{Field: field, Input: s}
	}
	// The pattern guarantees digits, so Atoi cannot fail.
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return BSDate{Year: year, Month: month, Day: day}, nil
}

// MustParseBSDate panics on malformed input. For tests and literal dates.
func MustParseBSDate(s string) BSDate {
	d, err := ParseBSDate("date", s)
	if err != nil {
		panic(err)
	}
	return d
}

// Compare orders dates lexicographically by (year, month, day).
// Returns -1, 0 or +1.
func (d BSDate) Compare(other BSDate) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func (d BSDate) Before(other BSDate) bool { return d.Compare(other) < 0 }
func (d BSDate) Equal(other BSDate) bool  { return d.Compare(other) == 0 }
func (d BSDate) After(other BSDate) bool  { return d.Compare(other) > 0 }

func (d BSDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// =============================================================================
// DATE DIFFERENCE
// =============================================================================

// ComputeDuration returns the elapsed time from start to end using
// fixed-radix subtraction: base 30 for days, base 12 for months. This is
// not a calendar computation.
//
// Fails with *OrderingError when end strictly precedes start. Equal dates
// yield the zero Duration.
func ComputeDuration(start, end BSDate) (Duration, error) {
	if end.Before(start) {
		return Duration{}, &OrderingError{Start: start, End: end}
	}

	d := Duration{
		Years:  end.Year - start.Year,
		Months: end.Month - start.Month,
		Days:   end.Day - start.Day,
	}.Normalize()

	// Out-of-range day or month values can order correctly yet borrow
	// past zero years.
	if d.Years < 0 {
		return Duration{}, &OrderingError{Start: start, End: end}
	}
	return d, nil
}
