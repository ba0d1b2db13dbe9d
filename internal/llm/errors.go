package llm

import "errors"

// ErrorKind is the closed classification of completion failures. Every failure
// the client surfaces carries exactly one kind.
type ErrorKind string

const (
	KindConfiguration     ErrorKind = "configuration-error"
	KindCredentialInvalid ErrorKind = "credential-invalid"
	KindRateLimited       ErrorKind = "rate-limited"
	KindQuotaExceeded     ErrorKind = "quota-exceeded"
	KindInvalidRequest    ErrorKind = "invalid-request"
	KindModelUnavailable  ErrorKind = "model-unavailable"
	KindEmptyResponse     ErrorKind = "empty-response"
	KindSafetyBlocked     ErrorKind = "safety-blocked"
	KindNetwork           ErrorKind = "network-error"
	KindService           ErrorKind = "service-error"
)

// Terminal reports whether retrying can never change the outcome.
func (k ErrorKind) Terminal() bool {
	switch k {
	case KindConfiguration, KindCredentialInvalid, KindSafetyBlocked:
		return true
	}
	return false
}

// UserMessage maps the kind to the message shown in the chat log.
func (k ErrorKind) UserMessage() string {
	switch k {
	case KindConfiguration:
		return "The AI assistant is not configured. Please set a valid API key."
	case KindCredentialInvalid:
		return "The AI service rejected the configured API key."
	case KindRateLimited:
		return "The AI service is busy right now. Please try again in a moment."
	case KindQuotaExceeded:
		return "The AI usage quota has been exhausted. Please try again later."
	case KindInvalidRequest:
		return "The request could not be processed. Please rephrase your question."
	case KindModelUnavailable:
		return "The AI model is currently unavailable. Please try again later."
	case KindEmptyResponse:
		return "The AI service returned an empty answer. Please try again."
	case KindSafetyBlocked:
		return "The answer was blocked by the AI service's content filters."
	case KindNetwork:
		return "Could not reach the AI service. Please check your connection."
	default:
		return "Something went wrong while contacting the AI service. Please try again."
	}
}

// Error is a classified completion failure carrying the original service
// message for logs.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// Classify extracts the kind from an error returned by the client. Anything
// that is not a classified *Error counts as a service error.
func Classify(err error) ErrorKind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return KindService
}
