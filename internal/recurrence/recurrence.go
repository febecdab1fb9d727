// Package recurrence expands fixed monthly transactions into dated series.
//
// A fixed transaction with N installments is materialized as N rows dated
// anchor, anchor+1 month, ..., anchor+(N-1) months. Every row carries the
// same group identifier and the date of the last installment.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxInstallments bounds the size of one fixed series.
const MaxInstallments = 120

// ErrInvalidInstallments is returned for counts outside 1..MaxInstallments.
var ErrInvalidInstallments = errors.New("invalid installment count")

// Series is the expansion of an anchor date into monthly installments.
type Series struct {
	Dates   []time.Time
	EndDate time.Time
}

// Len returns the number of installments in the series.
func (s Series) Len() int { return len(s.Dates) }

// AddMonths advances anchor by n calendar months, keeping the day of month
// and clamping it to the last day of the target month when that day does
// not exist there (Jan 31 + 1 month = Feb 28 or 29). The result is midnight
// UTC.
func AddMonths(anchor time.Time, n int) time.Time {
	y, m, d := anchor.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// ValidateInstallments checks that n is a usable installment count.
func ValidateInstallments(n int) error {
	if n < 1 || n > MaxInstallments {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidInstallments, n, MaxInstallments)
	}
	return nil
}

// Expand returns the n monthly dates starting at anchor.
func Expand(anchor time.Time, n int) (Series, error) {
	if err := ValidateInstallments(n); err != nil {
		return Series{}, err
	}
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = AddMonths(anchor, i)
	}
	return Series{Dates: dates, EndDate: dates[n-1]}, nil
}

// NewGroupID returns a random 128-bit identifier for a new series.
func NewGroupID() string {
	return uuid.New().String()
}
