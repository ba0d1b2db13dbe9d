package models

// User carries the account row plus the entitlement fields the chat pipeline
// consults before sending: remaining message quota and the AI feature flag.
type User struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Plan              string `json:"plan"` // "free" | "pro"
	MessagesRemaining int    `json:"messages_remaining"`
	AIEnabled         bool   `json:"ai_enabled"`
}
