package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/service"
	"github.com/muudhq/muud-backend/internal/transport/http/middleware"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.SugaredLogger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

func (h *ChatHandler) CreateOrGetConversation(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	var input struct {
		OtherUserID string `json:"other_user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.OtherUserID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USER_ID", "other_user_id is required")
		return
	}
	otherID, err := uuid.Parse(input.OtherUserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid other_user_id")
		return
	}

	conv, err := h.chatService.CreateOrGetConversation(r.Context(), actorID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIdentity):
			writeError(w, http.StatusBadRequest, "INVALID_IDENTITY", "Cannot start a conversation with this user")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			h.logger.Errorw("create or get conversation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversation": conv})
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	var input struct {
		ConversationID string `json:"conversation_id"`
		Text           string `json:"text"`
		ImageURL       string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.ConversationID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_CONVERSATION_ID", "conversation_id is required")
		return
	}
	convID, err := uuid.Parse(input.ConversationID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation_id")
		return
	}

	msg, err := h.chatService.SendMessage(r.Context(), actorID, convID, input.Text, input.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "MISSING_TEXT", "text is required")
		case errors.Is(err, service.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
		case errors.Is(err, service.ErrNotParticipant):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this conversation")
		default:
			h.logger.Errorw("send message failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	convID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	var before *uuid.UUID
	if beforeStr := r.URL.Query().Get("before"); beforeStr != "" {
		id, err := uuid.Parse(beforeStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid before cursor")
			return
		}
		before = &id
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
	}

	messages, err := h.chatService.ListMessages(r.Context(), actorID, convID, limit, before)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
		case errors.Is(err, service.ErrNotParticipant):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this conversation")
		default:
			h.logger.Errorw("list messages failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	summaries, err := h.chatService.ListMyConversations(r.Context(), actorID)
	if err != nil {
		h.logger.Errorw("list conversations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversations": summaries})
}
