// Package dashboard aggregates a user's cards and review history into the
// figures shown on the study dashboard: due buckets, per-stage counts,
// average recent score, and the study streak.
package dashboard

import (
	"time"

	"github.com/recallapp/recall-api/internal/domain"
	"github.com/recallapp/recall-api/internal/domain/srs"
)

// Bucket windows, half-open on full timestamps.
const (
	weekWindowDays  = 7
	monthWindowDays = 30
)

// recentScoreWindow is the number of most recent reviews that feed the
// average score.
const recentScoreWindow = 30

// Stats holds the aggregated dashboard figures for one user.
type Stats struct {
	TotalCards   int               `json:"total_cards"`
	DueToday     int               `json:"due_today"`
	DueThisWeek  int               `json:"due_this_week"`
	DueThisMonth int               `json:"due_this_month"`
	StageCounts  map[srs.Stage]int `json:"stage_counts"`
	TotalReviews int               `json:"total_reviews"`
	AverageScore float64           `json:"average_score"`
	StudyStreak  int               `json:"study_streak"`
}

// Aggregate computes dashboard statistics from a user's full card and review
// collections. reviews must be ordered oldest first, as returned by the
// review store. The function is pure; now is the single time reference.
func Aggregate(
	cards []*domain.Card,
	reviews []*domain.Review,
	now time.Time,
	scheduler srs.Service,
) *Stats {
	stats := &Stats{
		TotalCards:   len(cards),
		StageCounts:  make(map[srs.Stage]int),
		TotalReviews: len(reviews),
	}

	weekEnd := now.AddDate(0, 0, weekWindowDays)
	monthEnd := now.AddDate(0, 0, monthWindowDays)

	for _, card := range cards {
		stats.StageCounts[scheduler.StageFor(card.ReviewCount)]++

		if scheduler.IsDue(card, now) {
			stats.DueToday++
		}

		if card.IsFullyReviewed || card.NextReviewAt == nil {
			continue
		}
		at := *card.NextReviewAt
		switch {
		case !at.Before(now) && at.Before(weekEnd):
			stats.DueThisWeek++
		case !at.Before(weekEnd) && at.Before(monthEnd):
			stats.DueThisMonth++
		}
	}

	stats.AverageScore = averageRecentScore(reviews)
	stats.StudyStreak = studyStreak(reviews, now)

	return stats
}

// averageRecentScore averages the scores of the most recent reviews,
// returning 0 when there are none.
func averageRecentScore(reviews []*domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	start := 0
	if len(reviews) > recentScoreWindow {
		start = len(reviews) - recentScoreWindow
	}

	var sum float64
	for _, review := range reviews[start:] {
		sum += review.Score
	}
	return sum / float64(len(reviews)-start)
}

// studyStreak counts consecutive calendar days with at least one review,
// walking backward from today. A missing today does not break the streak if
// yesterday has activity; the walk then continues backward from yesterday.
func studyStreak(reviews []*domain.Review, now time.Time) int {
	if len(reviews) == 0 {
		return 0
	}

	days := make(map[time.Time]bool, len(reviews))
	for _, review := range reviews {
		days[dateOf(review.ReviewedAt)] = true
	}

	day := dateOf(now)
	if !days[day] {
		day = day.AddDate(0, 0, -1)
		if !days[day] {
			return 0
		}
	}

	streak := 0
	for days[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
