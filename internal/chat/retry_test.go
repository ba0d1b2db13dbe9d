package chat

import (
	"testing"
	"time"

	"fleetchat/internal/llm"
)

func TestRetryDecisionLinearBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	retry, delay := RetryDecision(llm.KindRateLimited, 1, 2, base)
	if !retry || delay != 100*time.Millisecond {
		t.Fatalf("attempt 1: retry=%v delay=%v, want true/100ms", retry, delay)
	}

	retry, delay = RetryDecision(llm.KindRateLimited, 2, 2, base)
	if !retry || delay != 200*time.Millisecond {
		t.Fatalf("attempt 2: retry=%v delay=%v, want true/200ms", retry, delay)
	}

	retry, _ = RetryDecision(llm.KindRateLimited, 3, 2, base)
	if retry {
		t.Fatal("attempt 3 exceeds two extra attempts, must not retry")
	}
}

func TestRetryDecisionTerminalKinds(t *testing.T) {
	for _, kind := range []llm.ErrorKind{llm.KindConfiguration, llm.KindCredentialInvalid, llm.KindSafetyBlocked} {
		if retry, _ := RetryDecision(kind, 1, 5, time.Second); retry {
			t.Fatalf("%s is terminal, must not retry", kind)
		}
	}
}

func TestRetryDecisionRetryableKinds(t *testing.T) {
	for _, kind := range []llm.ErrorKind{
		llm.KindRateLimited,
		llm.KindQuotaExceeded,
		llm.KindInvalidRequest,
		llm.KindModelUnavailable,
		llm.KindEmptyResponse,
		llm.KindNetwork,
		llm.KindService,
	} {
		if retry, _ := RetryDecision(kind, 1, 2, time.Second); !retry {
			t.Fatalf("%s should retry on the first failure", kind)
		}
	}
}
