package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/service"
	"github.com/muudhq/muud-backend/internal/transport/http/middleware"
)

type PeopleHandler struct {
	peopleService *service.PeopleService
	logger        *zap.SugaredLogger
}

func NewPeopleHandler(peopleService *service.PeopleService, logger *zap.SugaredLogger) *PeopleHandler {
	return &PeopleHandler{peopleService: peopleService, logger: logger}
}

func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.peopleService.List(r.Context(), actorID, page, limit)
	if err != nil {
		h.logger.Errorw("list people failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *PeopleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	profile, err := h.peopleService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			h.logger.Errorw("load person failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"person": profile})
}
