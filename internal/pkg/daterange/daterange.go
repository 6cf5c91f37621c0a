// Package daterange validates calendar-day ranges and decides whether two of
// them overlap.
//
// Dates are kept as canonical YYYY-MM-DD strings. The format is fixed-width and
// zero-padded, so lexicographic order equals chronological order and no
// calendar parsing is needed to compare them. Values such as 2026-02-30 match
// the pattern and are accepted as-is.
package daterange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Layout is the canonical date layout.
const Layout = "2006-01-02"

var (
	ErrInvalidFormat = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidRange  = errors.New("to must be after from (minimum one day)")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Error reports which bound of a range failed validation.
type Error struct {
	Field string
	Value string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Range is a half-open interval [From, To).
type Range struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IsDate reports whether s matches the canonical pattern.
func IsDate(s string) bool {
	return datePattern.MatchString(s)
}

// Validate checks both bounds and returns the range when To is strictly after From.
func Validate(from, to string) (Range, error) {
	if !IsDate(from) {
		return Range{}, &Error{Field: "from", Value: from, Err: ErrInvalidFormat}
	}
	if !IsDate(to) {
		return Range{}, &Error{Field: "to", Value: to, Err: ErrInvalidFormat}
	}
	if to <= from {
		return Range{}, &Error{Field: "to", Value: to, Err: ErrInvalidRange}
	}
	return Range{From: from, To: to}, nil
}

// Overlaps reports whether [a1,a2) and [b1,b2) share at least one day.
// Ranges that only touch at an endpoint do not overlap.
func Overlaps(a1, a2, b1, b2 string) bool {
	return a1 < b2 && a2 > b1
}

func (r Range) Overlaps(other Range) bool {
	return Overlaps(r.From, r.To, other.From, other.To)
}

// OverlapCondition renders the Overlaps rule as a SQL condition over stored
// rows whose interval lives in fromCol/toCol. Search uses this form; both
// must stay in sync with Overlaps.
func (r Range) OverlapCondition(fromCol, toCol string) (string, []any) {
	return fmt.Sprintf("%s < ? AND %s > ?", fromCol, toCol), []any{r.To, r.From}
}

// Nights counts calendar days between From and To. Out-of-range month or day
// values are normalised the way time.Date does (2026-02-30 is 2026-03-02).
func (r Range) Nights() int {
	from, okFrom := civil(r.From)
	to, okTo := civil(r.To)
	if !okFrom || !okTo {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}

func (r Range) String() string {
	return "[" + r.From + "," + r.To + ")"
}

func civil(s string) (time.Time, bool) {
	if !IsDate(s) {
		return time.Time{}, false
	}
	y, _ := strconv.Atoi(s[0:4])
	m, _ := strconv.Atoi(s[5:7])
	d, _ := strconv.Atoi(s[8:10])
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}
