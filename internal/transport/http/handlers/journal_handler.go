package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/service"
	"github.com/muudhq/muud-backend/internal/transport/http/middleware"
)

type JournalHandler struct {
	journalService *service.JournalService
	logger         *zap.SugaredLogger
}

func NewJournalHandler(journalService *service.JournalService, logger *zap.SugaredLogger) *JournalHandler {
	return &JournalHandler{journalService: journalService, logger: logger}
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.JournalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	journal, err := h.journalService.Create(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrEmptyJournal) {
			writeError(w, http.StatusBadRequest, "EMPTY_JOURNAL", "A caption or an image is required")
		} else {
			h.logger.Errorw("create journal failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"journal": journal})
}

func (h *JournalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	journals, err := h.journalService.ListMine(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("list journals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"journals": journals})
}
