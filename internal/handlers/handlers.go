package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"fleetchat/internal/analytics"
	"fleetchat/internal/chat"
	"fleetchat/internal/database"
)

type Handler struct {
	repo        *database.Repository
	aggregator  *analytics.Aggregator
	chats       *chat.Manager
	logger      *zap.Logger
	defaultUser int64
}

func New(repo *database.Repository, aggregator *analytics.Aggregator, chats *chat.Manager, logger *zap.Logger) (*Handler, error) {
	defaultUser, err := repo.EnsureDefaultUser()
	if err != nil {
		return nil, err
	}
	return &Handler{
		repo:        repo,
		aggregator:  aggregator,
		chats:       chats,
		logger:      logger,
		defaultUser: defaultUser,
	}, nil
}

func (h *Handler) currentUserID(w http.ResponseWriter, r *http.Request) int64 {
	if cookie, err := r.Cookie("fc_user_id"); err == nil {
		if id, err := strconv.ParseInt(cookie.Value, 10, 64); err == nil && id > 0 {
			if _, err := h.repo.GetUser(id); err == nil {
				return id
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "fc_user_id",
		Value:    strconv.FormatInt(h.defaultUser, 10),
		Path:     "/",
		HttpOnly: false,
	})
	return h.defaultUser
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
