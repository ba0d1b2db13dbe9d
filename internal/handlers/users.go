package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.ListUsers()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	user, err := h.repo.CreateUser(req.Name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// SelectUser handles POST /api/users/select.
func (h *Handler) SelectUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := h.repo.GetUser(req.ID)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "fc_user_id",
		Value:    strconv.FormatInt(user.ID, 10),
		Path:     "/",
		HttpOnly: false,
	})
	respondJSON(w, http.StatusOK, user)
}
