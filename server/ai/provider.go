// Package ai wraps the generative-language API behind a small provider.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/semaphore"

	"github.com/lehuyanh/trogiang/internal/profile"
)

// Config holds the AI provider configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	ChatModel  string
	MaxRetries int
	Timeout    time.Duration
	// MaxInFlight caps concurrent chat completions.
	MaxInFlight int64
}

// DefaultConfig returns the default configuration, targeting Gemini's
// OpenAI-compatible endpoint.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta/openai",
		APIKey:      "",
		ChatModel:   "gemini-2.0-flash",
		MaxRetries:  3,
		Timeout:     30 * time.Second,
		MaxInFlight: 4,
	}
}

// NewConfigFromProfile creates a provider config from the runtime profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := DefaultConfig()
	cfg.APIKey = p.LLMAPIKey
	if p.LLMBaseURL != "" {
		cfg.BaseURL = p.LLMBaseURL
	}
	if p.LLMModel != "" {
		cfg.ChatModel = p.LLMModel
	}
	return cfg
}

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// ChatService is the LLM chat interface consumed by the chat orchestration layer.
type ChatService interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Provider provides chat completions over any OpenAI-compatible endpoint.
type Provider struct {
	client *openai.Client
	config *Config
	sem    *semaphore.Weighted
}

// NewProvider creates a new AI provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxInFlight == 0 {
		cfg.MaxInFlight = 4
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gemini-2.0-flash"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		sem:    semaphore.NewWeighted(cfg.MaxInFlight),
	}, nil
}

// Chat performs a chat completion.
func (p *Provider) Chat(ctx context.Context, messages []Message) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	var result string
	err := p.doWithRetry(ctx, func() error {
		llmMessages := make([]openai.ChatCompletionMessage, len(messages))
		for i, msg := range messages {
			llmMessages[i] = openai.ChatCompletionMessage{
				Role:    msg.Role,
				Content: msg.Content,
			}
		}

		req := openai.ChatCompletionRequest{
			Model:    p.config.ChatModel,
			Messages: llmMessages,
		}

		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat response")
		}
		result = resp.Choices[0].Message.Content
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}

	return result, nil
}

// Validate checks the provider configuration.
func (p *Provider) Validate() error {
	if p.config.APIKey == "" {
		return fmt.Errorf("API key is required, set TROGIANG_LLM_API_KEY")
	}
	return nil
}

// doWithRetry executes a function with exponential backoff retry.
func (p *Provider) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < p.config.MaxRetries-1 {
				waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				slog.Debug("AI request failed, retrying",
					"attempt", attempt+1,
					"wait_time", waitTime,
					"error", err)
				select {
				case <-time.After(waitTime):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}

// Ensure Provider implements ChatService.
var _ ChatService = (*Provider)(nil)
