package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/domain"
	"github.com/muudhq/muud-backend/internal/service"
	"github.com/muudhq/muud-backend/internal/transport/http/middleware"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.SugaredLogger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		h.writeProfileError(w, "loading profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var update service.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, update)
	if err != nil {
		h.writeProfileError(w, "updating profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *ProfileHandler) SetOnboarding(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var onboarding domain.Onboarding
	if err := json.NewDecoder(r.Body).Decode(&onboarding); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	profile, err := h.profileService.SetOnboarding(r.Context(), userID, onboarding)
	if err != nil {
		h.writeProfileError(w, "saving onboarding", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *ProfileHandler) writeProfileError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	h.logger.Errorw(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
}
