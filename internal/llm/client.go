package llm

import (
	"context"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one prior turn of a muse conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TextClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ChatClient interface {
	Chat(ctx context.Context, history []ChatMessage, message string, system string) (string, error)
}

type ImageClient interface {
	// GenerateImage returns raw image bytes for the given prompt.
	// aspectRatio is "1:1", "16:9" or "9:16".
	GenerateImage(ctx context.Context, prompt string, aspectRatio string) ([]byte, error)
}
