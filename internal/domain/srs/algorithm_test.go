package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/recallapp/recall-api/internal/domain"
)

func testCard(t *testing.T, reviewCount int, fullyReviewed bool, nextReviewAt *time.Time) *domain.Card {
	t.Helper()
	return &domain.Card{
		ID:              uuid.New(),
		DeckID:          uuid.New(),
		Question:        "What is the capital of France?",
		Answer:          "Paris",
		DifficultyLevel: domain.DifficultyMedium,
		ReviewCount:     reviewCount,
		IsFullyReviewed: fullyReviewed,
		NextReviewAt:    nextReviewAt,
		CreatedAt:       time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStageFor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name        string
		reviewCount int
		expected    Stage
	}{
		{name: "zero reviews is New", reviewCount: 0, expected: StageNew},
		{name: "one review is First Review", reviewCount: 1, expected: StageFirstReview},
		{name: "two reviews is Second Review", reviewCount: 2, expected: StageSecondReview},
		{name: "three reviews is Fully Reviewed", reviewCount: 3, expected: StageFullyReviewed},
		{name: "beyond three stays Fully Reviewed", reviewCount: 7, expected: StageFullyReviewed},
		{name: "negative count clamps to New", reviewCount: -2, expected: StageNew},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stageFor(tc.reviewCount, params); got != tc.expected {
				t.Errorf("stageFor(%d) = %q, want %q", tc.reviewCount, got, tc.expected)
			}
		})
	}
}

func TestIsDue(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	testCases := []struct {
		name     string
		card     *domain.Card
		expected bool
	}{
		{
			name:     "next review in the past is due",
			card:     testCard(t, 1, false, &past),
			expected: true,
		},
		{
			name:     "next review exactly now is due",
			card:     testCard(t, 1, false, &now),
			expected: true,
		},
		{
			name:     "next review in the future is not due",
			card:     testCard(t, 1, false, &future),
			expected: false,
		},
		{
			name:     "never scheduled card is due by default",
			card:     testCard(t, 0, false, nil),
			expected: true,
		},
		{
			name:     "fully reviewed card is never due",
			card:     testCard(t, 3, true, nil),
			expected: false,
		},
		{
			name:     "fully reviewed card with stale schedule is still not due",
			card:     testCard(t, 3, true, &past),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDue(tc.card, now); got != tc.expected {
				t.Errorf("isDue() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("first review schedules one day out", func(t *testing.T) {
		card := testCard(t, 0, false, nil)
		next := advance(card, now, params)

		if next.ReviewCount != 1 {
			t.Errorf("ReviewCount = %d, want 1", next.ReviewCount)
		}
		if next.IsFullyReviewed {
			t.Error("card should not be fully reviewed after first review")
		}
		want := now.AddDate(0, 0, 1)
		if next.NextReviewAt == nil || !next.NextReviewAt.Equal(want) {
			t.Errorf("NextReviewAt = %v, want %v", next.NextReviewAt, want)
		}
	})

	t.Run("second review schedules seven days out", func(t *testing.T) {
		card := testCard(t, 1, false, nil)
		next := advance(card, now, params)

		if next.ReviewCount != 2 {
			t.Errorf("ReviewCount = %d, want 2", next.ReviewCount)
		}
		want := now.AddDate(0, 0, 7)
		if next.NextReviewAt == nil || !next.NextReviewAt.Equal(want) {
			t.Errorf("NextReviewAt = %v, want %v", next.NextReviewAt, want)
		}
	})

	t.Run("third review completes the card", func(t *testing.T) {
		card := testCard(t, 2, false, nil)
		next := advance(card, now, params)

		if next.ReviewCount != 3 {
			t.Errorf("ReviewCount = %d, want 3", next.ReviewCount)
		}
		if !next.IsFullyReviewed {
			t.Error("card should be fully reviewed after third review")
		}
		if next.NextReviewAt != nil {
			t.Errorf("NextReviewAt = %v, want nil", next.NextReviewAt)
		}
	})

	t.Run("advance stamps last reviewed and preserves the input card", func(t *testing.T) {
		card := testCard(t, 0, false, nil)
		next := advance(card, now, params)

		if next.LastReviewedAt == nil || !next.LastReviewedAt.Equal(now) {
			t.Errorf("LastReviewedAt = %v, want %v", next.LastReviewedAt, now)
		}
		if card.ReviewCount != 0 || card.LastReviewedAt != nil {
			t.Error("advance must not mutate its input")
		}
	})
}

func TestInitialReviewAt(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	createdAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	got := initialReviewAt(createdAt, params)
	want := createdAt.AddDate(0, 0, 1)
	if !got.Equal(want) {
		t.Errorf("initialReviewAt() = %v, want %v", got, want)
	}
}

func TestFilterDue(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	earlier := now.Add(-72 * time.Hour)
	later := now.Add(-1 * time.Hour)
	future := now.Add(24 * time.Hour)

	unscheduled := testCard(t, 0, false, nil)
	overdue := testCard(t, 1, false, &earlier)
	barelyDue := testCard(t, 2, false, &later)
	notDue := testCard(t, 1, false, &future)
	finished := testCard(t, 3, true, nil)

	due := filterDue([]*domain.Card{notDue, barelyDue, finished, overdue, unscheduled}, now, params)

	if len(due) != 3 {
		t.Fatalf("len(due) = %d, want 3", len(due))
	}
	if due[0].ID != unscheduled.ID {
		t.Errorf("due[0] = %v, want the never-scheduled card first", due[0].ID)
	}
	if due[1].ID != overdue.ID {
		t.Errorf("due[1] = %v, want the most overdue scheduled card", due[1].ID)
	}
	if due[2].ID != barelyDue.ID {
		t.Errorf("due[2] = %v, want the least overdue card last", due[2].ID)
	}
}
