package chat

import (
	"time"

	"fleetchat/internal/llm"
)

// RetryDecision is the pure retry policy for one failed attempt. attempt is
// 1-based: the first failure is attempt 1. Terminal kinds never retry; others
// retry up to maxRetries extra attempts with linear backoff
// (baseDelay × attempt).
func RetryDecision(kind llm.ErrorKind, attempt, maxRetries int, baseDelay time.Duration) (bool, time.Duration) {
	if kind.Terminal() {
		return false, 0
	}
	if attempt > maxRetries {
		return false, 0
	}
	return true, baseDelay * time.Duration(attempt)
}
