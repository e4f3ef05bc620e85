package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwellhq/inkwell/internal/config"
)

// NewClient builds the gateway clients for the configured provider. A nil
// ImageClient means the provider cannot synthesize images and image features
// should report "not supported" instead of failing the whole request.
func NewClient(ctx context.Context, cfg config.LLMConfig) (TextClient, ChatClient, ImageClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		c := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.ImageModel, cfg.BaseURL)
		return instrumentText(c), instrumentChat(c), instrumentImage(c), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, nil, nil, err
		}
		return instrumentText(c), instrumentChat(c), nil, nil

	case "claude":
		c := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		return instrumentText(c), instrumentChat(c), nil, nil

	case "ollama":
		// Ollama speaks the OpenAI-compatible API; no image endpoint.
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // Dummy key, ignored by Ollama but required by the client
		}

		c := NewOpenAIClient(apiKey, cfg.Model, "", baseURL)
		return instrumentText(c), instrumentChat(c), nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
