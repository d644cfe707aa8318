package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/service"
	"github.com/muudhq/muud-backend/pkg/validator"
)

type UploadHandler struct {
	uploadService *service.UploadService
	logger        *zap.SugaredLogger
}

func NewUploadHandler(uploadService *service.UploadService, logger *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, logger: logger}
}

func (h *UploadHandler) CreateURL(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateUploadRequest(input.FileName, input.ContentType); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	signed, err := h.uploadService.CreateUploadURL(r.Context(), input.FileName)
	if err != nil {
		h.logger.Errorw("presign upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, signed)
}
