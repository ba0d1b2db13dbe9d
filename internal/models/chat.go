package models

import "time"

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn half in a conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSession is the durable unit of chat persistence: the ordered
// message log for one logical chat plus its last-modified time.
type ConversationSession struct {
	Messages      []ChatMessage `json:"messages"`
	LastUpdatedAt time.Time     `json:"last_updated_at"`
}
