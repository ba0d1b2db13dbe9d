package handlers

import (
	"net/http"
	"time"

	"fleetchat/internal/analytics"
)

// DashboardContext handles GET /api/dashboard/context?period=last%20month.
// It returns the same aggregated context the chat prompt is built from.
func (h *Handler) DashboardContext(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)
	period := analytics.ResolvePeriod(r.URL.Query().Get("period"), time.Now())

	uc, err := h.aggregator.Aggregate(r.Context(), userID, period)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to aggregate records")
		return
	}
	respondJSON(w, http.StatusOK, uc)
}
