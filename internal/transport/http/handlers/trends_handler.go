package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/service"
	"github.com/muudhq/muud-backend/internal/transport/http/middleware"
)

type TrendsHandler struct {
	trendsService *service.TrendsService
	logger        *zap.SugaredLogger
}

func NewTrendsHandler(trendsService *service.TrendsService, logger *zap.SugaredLogger) *TrendsHandler {
	return &TrendsHandler{trendsService: trendsService, logger: logger}
}

func (h *TrendsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	dashboard, err := h.trendsService.Get(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("load dashboard failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"dashboard": dashboard})
}

func (h *TrendsHandler) UpdateDashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var update service.DashboardUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	dashboard, err := h.trendsService.Update(r.Context(), userID, update)
	if err != nil {
		h.logger.Errorw("update dashboard failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"dashboard": dashboard})
}
