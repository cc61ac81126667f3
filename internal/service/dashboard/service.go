package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/domain/srs"
	"github.com/recallapp/recall-api/internal/platform/logger"
	"github.com/recallapp/recall-api/internal/store"
)

// DashboardService provides aggregated study statistics.
type DashboardService interface {
	// GetStats computes the dashboard statistics for a user. A user with no
	// cards or reviews gets zeroed stats, not an error.
	GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error)
}

// Verify interface compliance at compile time
var _ DashboardService = (*dashboardServiceImpl)(nil)

type dashboardServiceImpl struct {
	cardStore   store.CardStore
	reviewStore store.ReviewStore
	srsService  srs.Service
	logger      *slog.Logger
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(
	cardStore store.CardStore,
	reviewStore store.ReviewStore,
	srsService srs.Service,
	logger *slog.Logger,
) DashboardService {
	if cardStore == nil {
		panic("cardStore cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}
	if srsService == nil {
		panic("srsService cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &dashboardServiceImpl{
		cardStore:   cardStore,
		reviewStore: reviewStore,
		srsService:  srsService,
		logger:      logger.With(slog.String("component", "dashboard_service")),
	}
}

// GetStats implements DashboardService.GetStats.
func (s *dashboardServiceImpl) GetStats(
	ctx context.Context,
	userID uuid.UUID,
) (*Stats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list cards for dashboard",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	reviews, err := s.reviewStore.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list reviews for dashboard",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	stats := Aggregate(cards, reviews, time.Now().UTC(), s.srsService)

	log.Debug("computed dashboard stats",
		slog.String("user_id", userID.String()),
		slog.Int("total_cards", stats.TotalCards),
		slog.Int("due_today", stats.DueToday),
		slog.Int("study_streak", stats.StudyStreak))

	return stats, nil
}
