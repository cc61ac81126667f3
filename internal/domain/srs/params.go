package srs

import (
	"errors"
	"fmt"
)

// Params configures the fixed-interval spaced repetition schedule.
//
// Intervals is indexed by the review count after the review being recorded:
// the Nth completed review (N starting at 1) schedules the next review
// Intervals[N-1] days out. A card whose review count reaches RequiredReviews
// is fully reviewed and no longer scheduled.
type Params struct {
	// RequiredReviews is the number of completed reviews after which a card
	// is considered fully reviewed.
	RequiredReviews int

	// Intervals holds the scheduling intervals in days. Intervals[0] is also
	// the interval used for a card's very first schedule at creation time.
	Intervals []int
}

// Errors returned by Params validation.
var (
	ErrInvalidRequiredReviews = errors.New("required reviews must be at least 1")
	ErrIntervalCountMismatch  = errors.New("interval count must equal required reviews")
	ErrNonPositiveInterval    = errors.New("intervals must be positive")
)

// NewDefaultParams returns the standard schedule: three reviews at
// 1, 7 and 21 day intervals.
func NewDefaultParams() *Params {
	return &Params{
		RequiredReviews: 3,
		Intervals:       []int{1, 7, 21},
	}
}

// Validate checks the params for internal consistency.
func (p *Params) Validate() error {
	if p.RequiredReviews < 1 {
		return ErrInvalidRequiredReviews
	}

	if len(p.Intervals) != p.RequiredReviews {
		return fmt.Errorf("%w: have %d intervals for %d reviews",
			ErrIntervalCountMismatch, len(p.Intervals), p.RequiredReviews)
	}

	for i, days := range p.Intervals {
		if days <= 0 {
			return fmt.Errorf("%w: interval %d is %d days", ErrNonPositiveInterval, i, days)
		}
	}

	return nil
}
