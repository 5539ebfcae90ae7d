package llm

import (
	"context"
	"errors"
	"net"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrorKind buckets provider failures so the HTTP layer can pick a status
// code without inspecting vendor error types.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrAuth
	ErrRateLimit
	ErrTimeout
	ErrConnection
)

// Classify maps a provider error to its kind. Typed errors from the SDK and
// the context package are checked first; string matching is the fallback for
// transport errors that arrive unwrapped.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return ErrAuth
		case 429:
			return ErrRateLimit
		case 408, 504:
			return ErrTimeout
		}
		return ErrUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "invalid_api_key"):
		return ErrAuth
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests"):
		return ErrRateLimit
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return ErrTimeout
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset") || strings.Contains(msg, "no such host"):
		return ErrConnection
	}
	return ErrUnknown
}
