package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Groq talks to the Groq chat-completion API, which speaks the OpenAI wire
// protocol, so the OpenAI SDK pointed at a different base URL does the job.
type Groq struct {
	api *openai.Client
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
}

const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

func NewGroq(cfg GroqConfig) *Groq {
	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = cfg.BaseURL
	if c.BaseURL == "" {
		c.BaseURL = DefaultGroqBaseURL
	}
	return &Groq{api: openai.NewClientWithConfig(c)}
}

func (g *Groq) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       params.Model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := g.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("el modelo no devolvió ninguna respuesta")
	}
	return resp.Choices[0].Message.Content, nil
}
