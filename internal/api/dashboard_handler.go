package api

import (
	"log/slog"
	"net/http"

	"github.com/recallapp/recall-api/internal/api/middleware"
	"github.com/recallapp/recall-api/internal/api/shared"
	"github.com/recallapp/recall-api/internal/platform/logger"
	"github.com/recallapp/recall-api/internal/service/dashboard"
)

// DashboardHandler handles dashboard statistics requests
type DashboardHandler struct {
	dashboardService dashboard.DashboardService
	logger           *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	dashboardService dashboard.DashboardService,
	logger *slog.Logger,
) *DashboardHandler {
	if dashboardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("dashboardService cannot be nil for DashboardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DashboardHandler")
	}

	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger.With(slog.String("component", "dashboard_handler")),
	}
}

// GetStats handles GET /dashboard/stats requests.
// It returns the authenticated user's aggregated study statistics.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.dashboardService.GetStats(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to compute dashboard statistics", err)
		return
	}

	log.Debug("dashboard stats computed",
		slog.String("user_id", userID.String()),
		slog.Int("total_cards", stats.TotalCards))
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
