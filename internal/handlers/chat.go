package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fleetchat/internal/chat"
)

// ChatRequest is the incoming chat message.
type ChatRequest struct {
	Message string `json:"message"`
}

// SendMessage handles POST /api/chat/send.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "Message is empty")
		return
	}

	userID := h.currentUserID(w, r)
	session, err := h.chats.Get(userID)
	if err != nil {
		h.logger.Error("opening session failed", zap.Int64("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to open chat session")
		return
	}

	if err := session.Send(r.Context(), req.Message); err != nil {
		h.logger.Warn("chat turn failed", zap.Int64("user_id", userID), zap.Error(err))
		switch {
		case errors.Is(err, chat.ErrBusy):
			respondJSON(w, http.StatusConflict, session.Snapshot())
		case errors.Is(err, chat.ErrQuotaExhausted), errors.Is(err, chat.ErrFeatureDisabled):
			respondJSON(w, http.StatusPaymentRequired, session.Snapshot())
		default:
			respondJSON(w, http.StatusBadGateway, session.Snapshot())
		}
		return
	}

	respondJSON(w, http.StatusOK, session.Snapshot())
}

// GetChat handles GET /api/chat.
func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)
	session, err := h.chats.Get(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to open chat session")
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// ClearChat handles DELETE /api/chat.
func (h *Handler) ClearChat(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)
	session, err := h.chats.Get(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to open chat session")
		return
	}
	if err := session.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear chat history")
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}
