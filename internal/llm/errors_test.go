package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ErrUnknown},
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline", fmt.Errorf("calling provider: %w", context.DeadlineExceeded), ErrTimeout},
		{"api 401", &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}, ErrAuth},
		{"api 403", &openai.APIError{HTTPStatusCode: http.StatusForbidden}, ErrAuth},
		{"api 429", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, ErrRateLimit},
		{"api 504", &openai.APIError{HTTPStatusCode: http.StatusGatewayTimeout}, ErrTimeout},
		{"api 500", &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}, ErrUnknown},
		{"bad api key string", errors.New("invalid_api_key: check your key"), ErrAuth},
		{"rate limit string", errors.New("rate limit exceeded"), ErrRateLimit},
		{"refused", errors.New("dial tcp: connection refused"), ErrConnection},
		{"no such host", errors.New("lookup api.example: no such host"), ErrConnection},
		{"other", errors.New("something else"), ErrUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("%s: Classify = %v, want %v", tc.name, got, tc.want)
		}
	}
}
