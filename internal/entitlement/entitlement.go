// Package entitlement exposes the plan/quota collaborator consulted before a
// chat turn is attempted. This core only reads entitlement state.
package entitlement

import (
	"fmt"

	"fleetchat/internal/models"
)

// UserReader is the slice of the record store the entitlement check needs.
type UserReader interface {
	GetUser(id int64) (*models.User, error)
}

// StoreService reads plan state from the users table. It satisfies the chat
// package's Entitlements interface.
type StoreService struct {
	users UserReader
}

func NewStoreService(users UserReader) *StoreService {
	return &StoreService{users: users}
}

func (s *StoreService) Remaining(userID int64) (int, error) {
	u, err := s.users.GetUser(userID)
	if err != nil {
		return 0, fmt.Errorf("reading entitlement: %w", err)
	}
	return u.MessagesRemaining, nil
}

func (s *StoreService) FeatureEnabled(userID int64) (bool, error) {
	u, err := s.users.GetUser(userID)
	if err != nil {
		return false, fmt.Errorf("reading entitlement: %w", err)
	}
	return u.AIEnabled, nil
}
