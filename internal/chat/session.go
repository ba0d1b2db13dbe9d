package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleetchat/internal/analytics"
	"fleetchat/internal/llm"
	"fleetchat/internal/models"
)

// State of a session between commands.
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
)

var (
	ErrBusy            = errors.New("a message is already being sent")
	ErrClosed          = errors.New("session is closed")
	ErrQuotaExhausted  = errors.New("no AI messages remaining on this plan")
	ErrFeatureDisabled = errors.New("AI assistant is not enabled for this plan")
)

// Completer is the outbound completion boundary.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userTurn string, history []llm.Turn) (string, error)
}

// ContextBuilder reduces a window of records into a UserContext.
type ContextBuilder interface {
	Aggregate(ctx context.Context, userID int64, period models.Period) (models.UserContext, error)
}

// Store is the durable key-value store owning the serialized session.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Entitlements is the read-only plan collaborator.
type Entitlements interface {
	Remaining(userID int64) (int, error)
	FeatureEnabled(userID int64) (bool, error)
}

// Snapshot is what a UI layer renders: current state, the ordered log, and the
// last user-facing error.
type Snapshot struct {
	State     State                `json:"state"`
	Messages  []models.ChatMessage `json:"messages"`
	LastError string               `json:"last_error,omitempty"`
}

// Deps carries everything a session needs injected.
type Deps struct {
	Builder      ContextBuilder
	Completer    Completer
	Store        Store
	Entitlements Entitlements
	Logger       *zap.Logger

	MaxRetries   int
	RetryDelay   time.Duration
	HistoryLimit int

	// Now and Sleep are injectable for deterministic tests; nil means the
	// real clock.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Session orchestrates one conversation: optimistic append, aggregation,
// prompt build, the retry loop around the completion call, rollback on
// terminal failure, and durable persistence of the message log.
type Session struct {
	mu        sync.Mutex
	userID    int64
	key       string
	state     State
	messages  []models.ChatMessage
	lastError string
	closed    bool

	deps Deps
}

func NewSession(userID int64, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	if deps.MaxRetries < 0 {
		deps.MaxRetries = 0
	}
	if deps.HistoryLimit <= 0 {
		deps.HistoryLimit = 5
	}
	return &Session{
		userID: userID,
		key:    sessionKey(userID),
		state:  StateIdle,
		deps:   deps,
	}
}

func sessionKey(userID int64) string {
	return "session-" + strconv.FormatInt(userID, 10)
}

// Open loads the persisted log. Corrupt or unparsable stored state is
// discarded and treated as an empty session, never surfaced as fatal.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.deps.Store.Get(s.key)
	if err != nil {
		return err
	}
	if data == nil {
		s.messages = nil
		return nil
	}

	var stored models.ConversationSession
	if err := json.Unmarshal(data, &stored); err != nil {
		s.deps.Logger.Warn("discarding corrupt session state", zap.Error(err))
		s.messages = nil
		return nil
	}
	s.messages = stored.Messages
	return nil
}

// Close marks the session inactive. A completion still in flight when Close
// is called drops its result instead of committing to a closed session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Clear wipes the message log, in memory and in the store.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.lastError = ""
	return s.deps.Store.Delete(s.key)
}

// Snapshot returns a copy of the observable session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]models.ChatMessage, len(s.messages))
	copy(messages, s.messages)
	return Snapshot{State: s.state, Messages: messages, LastError: s.lastError}
}

// Send runs one end-to-end turn. It rejects concurrent sends and exhausted
// quota before touching the network, appends the user message optimistically,
// and on final failure rolls it back so the log never holds an unanswered
// question.
func (s *Session) Send(ctx context.Context, content string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.state == StateSending {
		s.mu.Unlock()
		return ErrBusy
	}

	enabled, err := s.deps.Entitlements.FeatureEnabled(s.userID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !enabled {
		s.lastError = ErrFeatureDisabled.Error()
		s.mu.Unlock()
		return ErrFeatureDisabled
	}
	remaining, err := s.deps.Entitlements.Remaining(s.userID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if remaining <= 0 {
		s.lastError = ErrQuotaExhausted.Error()
		s.mu.Unlock()
		return ErrQuotaExhausted
	}

	userMsg := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: s.deps.Now(),
	}
	s.messages = append(s.messages, userMsg)
	s.state = StateSending
	s.lastError = ""
	history := llm.BuildHistory(s.messages[:len(s.messages)-1], s.deps.HistoryLimit)
	if err := s.persistLocked(); err != nil {
		s.deps.Logger.Warn("persisting session failed", zap.Error(err))
	}
	s.mu.Unlock()

	period := analytics.ResolvePeriod(content, s.deps.Now())
	uc, err := s.deps.Builder.Aggregate(ctx, s.userID, period)
	if err != nil {
		// Store failures are not retried: a failed aggregation makes the
		// whole turn meaningless.
		s.failTurn(userMsg.ID, "Could not load your business records. Please try again.")
		return err
	}

	systemPrompt := llm.ComposeSystemPrompt(uc)

	var reply string
	for attempt := 1; ; attempt++ {
		reply, err = s.deps.Completer.Complete(ctx, systemPrompt, content, history)
		if err == nil {
			break
		}

		kind := llm.Classify(err)
		retry, delay := RetryDecision(kind, attempt, s.deps.MaxRetries, s.deps.RetryDelay)
		s.deps.Logger.Warn("completion attempt failed",
			zap.Int("attempt", attempt),
			zap.String("kind", string(kind)),
			zap.Bool("retrying", retry),
			zap.Error(err),
		)
		if !retry {
			s.failTurn(userMsg.ID, kind.UserMessage())
			return err
		}
		s.deps.Sleep(delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// The session went away while the call was in flight; drop the
		// result and leave no orphaned question behind.
		s.removeMessageLocked(userMsg.ID)
		s.state = StateIdle
		if err := s.persistLocked(); err != nil {
			s.deps.Logger.Warn("persisting session failed", zap.Error(err))
		}
		return ErrClosed
	}
	s.messages = append(s.messages, models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: s.deps.Now(),
	})
	s.state = StateIdle
	if err := s.persistLocked(); err != nil {
		s.deps.Logger.Warn("persisting session failed", zap.Error(err))
	}
	return nil
}

// failTurn rolls back the optimistic user message and records the user-facing
// error.
func (s *Session) failTurn(messageID, userMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeMessageLocked(messageID)
	s.lastError = userMessage
	s.state = StateIdle
	if err := s.persistLocked(); err != nil {
		s.deps.Logger.Warn("persisting session failed", zap.Error(err))
	}
}

func (s *Session) removeMessageLocked(messageID string) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].ID == messageID {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return
		}
	}
}

func (s *Session) persistLocked() error {
	stored := models.ConversationSession{
		Messages:      s.messages,
		LastUpdatedAt: s.deps.Now(),
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return s.deps.Store.Set(s.key, data)
}
