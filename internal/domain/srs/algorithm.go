package srs

import (
	"sort"
	"time"

	"github.com/recallapp/recall-api/internal/domain"
)

// Stage is the coarse progress label derived from a card's review count.
type Stage string

// Possible stage values. The display strings match what clients render.
const (
	StageNew           Stage = "New"
	StageFirstReview   Stage = "First Review"
	StageSecondReview  Stage = "Second Review"
	StageFullyReviewed Stage = "Fully Reviewed"
)

// stageFor maps a review count to its stage. Negative counts are clamped to
// zero rather than rejected; callers that care about the precondition check
// it before persisting.
func stageFor(reviewCount int, params *Params) Stage {
	if reviewCount < 0 {
		reviewCount = 0
	}

	if reviewCount >= params.RequiredReviews {
		return StageFullyReviewed
	}

	switch reviewCount {
	case 0:
		return StageNew
	case 1:
		return StageFirstReview
	default:
		return StageSecondReview
	}
}

// isDue reports whether a card should be offered for review at the given
// instant. Fully reviewed cards are never due. A card with no schedule is
// due by default: legacy rows that were never scheduled count as the most
// overdue. Comparisons use full timestamp precision, not calendar dates.
func isDue(card *domain.Card, now time.Time) bool {
	if card.IsFullyReviewed {
		return false
	}

	if card.NextReviewAt == nil {
		return true
	}

	return !now.Before(*card.NextReviewAt)
}

// advance computes the card state after recording one more completed review.
//
// It follows immutability principles: the input card is not modified, a new
// card value carrying the post-review state is returned. The review that just
// happened is the (ReviewCount+1)th, and that post-increment count selects the
// interval: the 1st review schedules 1 day out, the 2nd 7 days out, and the
// 3rd completes the card instead of rescheduling it, clearing NextReviewAt.
// LastReviewedAt is stamped with now so one timestamp covers both the review
// event and the schedule mutation.
func advance(card *domain.Card, now time.Time, params *Params) *domain.Card {
	next := *card

	next.ReviewCount = card.ReviewCount + 1
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt

	if next.ReviewCount >= params.RequiredReviews {
		next.IsFullyReviewed = true
		next.NextReviewAt = nil
		return &next
	}

	next.IsFullyReviewed = false
	due := now.AddDate(0, 0, params.Intervals[next.ReviewCount-1])
	next.NextReviewAt = &due

	return &next
}

// initialReviewAt computes the zeroth scheduling event applied at card
// creation: the first review falls Intervals[0] days after the creation
// timestamp, independent of advance.
func initialReviewAt(createdAt time.Time, params *Params) time.Time {
	return createdAt.AddDate(0, 0, params.Intervals[0])
}

// filterDue returns the cards due at now, ordered ascending by NextReviewAt
// with never-scheduled cards first (treated as most overdue). The input slice
// is not modified.
func filterDue(cards []*domain.Card, now time.Time, params *Params) []*domain.Card {
	due := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if isDue(card, now) {
			due = append(due, card)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].NextReviewAt, due[j].NextReviewAt
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})

	return due
}
