package srs

import (
	"errors"
	"testing"
	"time"
)

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel()

	t.Run("valid params are accepted", func(t *testing.T) {
		svc, err := NewServiceWithParams(&Params{RequiredReviews: 2, Intervals: []int{1, 3}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := svc.StageFor(2); got != StageFullyReviewed {
			t.Errorf("StageFor(2) = %q, want %q", got, StageFullyReviewed)
		}
	})

	t.Run("interval count must match required reviews", func(t *testing.T) {
		_, err := NewServiceWithParams(&Params{RequiredReviews: 3, Intervals: []int{1, 7}})
		if !errors.Is(err, ErrIntervalCountMismatch) {
			t.Errorf("err = %v, want ErrIntervalCountMismatch", err)
		}
	})

	t.Run("intervals must be positive", func(t *testing.T) {
		_, err := NewServiceWithParams(&Params{RequiredReviews: 2, Intervals: []int{1, 0}})
		if !errors.Is(err, ErrNonPositiveInterval) {
			t.Errorf("err = %v, want ErrNonPositiveInterval", err)
		}
	})

	t.Run("required reviews must be at least one", func(t *testing.T) {
		_, err := NewServiceWithParams(&Params{RequiredReviews: 0, Intervals: nil})
		if !errors.Is(err, ErrInvalidRequiredReviews) {
			t.Errorf("err = %v, want ErrInvalidRequiredReviews", err)
		}
	})
}

func TestServiceAdvanceValidation(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("nil card is rejected", func(t *testing.T) {
		_, err := svc.Advance(nil, now)
		if !errors.Is(err, ErrNilCard) {
			t.Errorf("err = %v, want ErrNilCard", err)
		}
	})

	t.Run("negative review count is rejected", func(t *testing.T) {
		card := testCard(t, 0, false, nil)
		card.ReviewCount = -1
		_, err := svc.Advance(card, now)
		if !errors.Is(err, ErrNegativeReviewCount) {
			t.Errorf("err = %v, want ErrNegativeReviewCount", err)
		}
	})

	t.Run("fully reviewed card is rejected", func(t *testing.T) {
		card := testCard(t, 3, true, nil)
		_, err := svc.Advance(card, now)
		if !errors.Is(err, ErrCardFullyReviewed) {
			t.Errorf("err = %v, want ErrCardFullyReviewed", err)
		}
	})
}

func TestServiceFullProgression(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	card := testCard(t, 0, false, nil)
	intervals := []int{1, 7}

	for i, days := range intervals {
		next, err := svc.Advance(card, now)
		if err != nil {
			t.Fatalf("review %d: unexpected error: %v", i+1, err)
		}
		want := now.AddDate(0, 0, days)
		if next.NextReviewAt == nil || !next.NextReviewAt.Equal(want) {
			t.Fatalf("review %d: NextReviewAt = %v, want %v", i+1, next.NextReviewAt, want)
		}
		card = next
		now = want
	}

	final, err := svc.Advance(card, now)
	if err != nil {
		t.Fatalf("final review: unexpected error: %v", err)
	}
	if !final.IsFullyReviewed || final.NextReviewAt != nil || final.ReviewCount != 3 {
		t.Errorf("final state = {count: %d, fully: %v, next: %v}, want {3, true, nil}",
			final.ReviewCount, final.IsFullyReviewed, final.NextReviewAt)
	}

	if _, err := svc.Advance(final, now); !errors.Is(err, ErrCardFullyReviewed) {
		t.Errorf("advancing a completed card: err = %v, want ErrCardFullyReviewed", err)
	}
}
