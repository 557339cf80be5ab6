package booking

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// StayPeriod is the half-open date range [checkIn, checkOut) of a stay.
// Both bounds are whole days at UTC midnight; the check-out day itself is
// not occupied, so a stay ending on a given day and another starting on
// the same day can share the room (same-day turnover).
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in := truncateToDate(checkIn)
	out := truncateToDate(checkOut)

	if !in.Before(out) {
		return StayPeriod{}, ErrInvalidStayRange
	}

	return StayPeriod{checkIn: in, checkOut: out}, nil
}

func ParseStayPeriod(checkIn, checkOut string) (StayPeriod, error) {
	in, err := time.ParseInLocation(dateLayout, checkIn, time.UTC)
	if err != nil {
		return StayPeriod{}, ErrInvalidStayRange
	}
	out, err := time.ParseInLocation(dateLayout, checkOut, time.UTC)
	if err != nil {
		return StayPeriod{}, ErrInvalidStayRange
	}
	return NewStayPeriod(in, out)
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

// Overlaps reports whether two stays on the same room would compete for a
// night. Equal boundaries do not overlap.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

func (p StayPeriod) IsZero() bool {
	return p.checkIn.IsZero() && p.checkOut.IsZero()
}

// ToDaterange renders the period as a Postgres daterange literal,
// e.g. "[2024-06-01,2024-06-04)".
func (p StayPeriod) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(dateLayout), p.checkOut.Format(dateLayout))
}

func (p StayPeriod) String() string {
	return p.checkIn.Format(dateLayout) + " to " + p.checkOut.Format(dateLayout)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Money is an amount in cents. Persisted as BIGINT.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}
