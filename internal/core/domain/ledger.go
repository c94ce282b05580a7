package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
)

const (
	// MinDemeritPoints and MaxDemeritPoints bound a single offense.
	MinDemeritPoints = 1
	MaxDemeritPoints = 6

	// SuspensionWindowYears is the length of the rolling window.
	SuspensionWindowYears = 2

	youngDriverAge       = 21
	youngDriverThreshold = 6
	adultThreshold       = 12
)

// Offense is one ledger entry: all points recorded against a single date.
type Offense struct {
	Date   time.Time `json:"date"`
	Points int       `json:"points"`
}

// DemeritLedger accumulates offense points per date and tracks suspension.
// The zero value is not usable; call NewDemeritLedger.
type DemeritLedger struct {
	points    map[time.Time]int
	total     int
	suspended bool
}

// NewDemeritLedger returns an empty ledger.
func NewDemeritLedger() *DemeritLedger {
	return &DemeritLedger{points: make(map[time.Time]int)}
}

// SuspensionThreshold returns the points total a driver of the given age must exceed to be suspended.
func SuspensionThreshold(age int) int {
	if age < youngDriverAge {
		return youngDriverThreshold
	}
	return adultThreshold
}

// ValidateOffense checks an offense without recording it and returns the parsed date.
func ValidateOffense(date string, points int) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	if points < MinDemeritPoints || points > MaxDemeritPoints {
		return time.Time{}, fmt.Errorf("%w: got %d", apperrors.ErrInvalidPoints, points)
	}
	return d, nil
}

// AddOffense records points against date and recomputes suspension using the
// driver's age at now. Nothing is recorded when validation fails.
func (l *DemeritLedger) AddOffense(date string, points int, birthdate string, now time.Time) error {
	d, err := ValidateOffense(date, points)
	if err != nil {
		return err
	}
	l.points[d] += points
	l.recompute(Age(birthdate, now))
	return nil
}

// IsSuspended returns the flag computed by the last AddOffense.
func (l *DemeritLedger) IsSuspended() bool {
	return l.suspended
}

// MaxWindowPoints returns the worst window total computed by the last AddOffense.
func (l *DemeritLedger) MaxWindowPoints() int {
	return l.total
}

// Len returns the number of distinct offense dates.
func (l *DemeritLedger) Len() int {
	return len(l.points)
}

// Entries returns the ledger sorted by date.
func (l *DemeritLedger) Entries() []Offense {
	out := make([]Offense, 0, len(l.points))
	for d, p := range l.points {
		out = append(out, Offense{Date: d, Points: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Clone returns an independent copy of the ledger.
func (l *DemeritLedger) Clone() *DemeritLedger {
	c := &DemeritLedger{
		points:    make(map[time.Time]int, len(l.points)),
		total:     l.total,
		suspended: l.suspended,
	}
	for d, p := range l.points {
		c.points[d] = p
	}
	return c
}

func (l *DemeritLedger) recompute(age int) {
	l.total = maxWindowSum(l.Entries())
	l.suspended = l.total > SuspensionThreshold(age)
}

// maxWindowSum anchors a window at every offense date d, covering [d, d+2y]
// with both ends included, and returns the largest window total. entries must
// be sorted by date.
func maxWindowSum(entries []Offense) int {
	best, running, end := 0, 0, 0
	for start := range entries {
		limit := windowEnd(entries[start].Date)
		for end < len(entries) && !entries[end].Date.After(limit) {
			running += entries[end].Points
			end++
		}
		if running > best {
			best = running
		}
		running -= entries[start].Points
	}
	return best
}

// windowEnd returns the last day of the window opened at d. A window opened on
// 29 February closes on 28 February rather than rolling into March.
func windowEnd(d time.Time) time.Time {
	end := d.AddDate(SuspensionWindowYears, 0, 0)
	if end.Day() != d.Day() {
		end = end.AddDate(0, 0, -end.Day())
	}
	return end
}
