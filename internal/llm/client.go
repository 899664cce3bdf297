// internal/llm/client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Config holds the chat completion endpoint settings. APIKey is
// optional; when empty the client authenticates with bearer tokens from
// the TokenProvider instead.
type Config struct {
	Endpoint   string
	Deployment string
	Model      string
	APIVersion string
	APIKey     string
}

// Client is a thin wrapper over the Azure OpenAI chat completion API:
// prompt in, answer text out.
type Client struct {
	cfg    Config
	tokens TokenProvider
	logger *logrus.Logger
}

func NewClient(cfg Config, tokens TokenProvider, logger *logrus.Logger) *Client {
	return &Client{
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
	}
}

// Complete sends the prompt as a single user message and returns the
// first choice's content. Any failure, including an empty choice list,
// is an error.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	clientCfg, err := c.clientConfig(ctx)
	if err != nil {
		return "", err
	}

	start := time.Now()

	resp, err := openai.NewClientWithConfig(clientCfg).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	c.logger.WithFields(logrus.Fields{
		"model":       c.cfg.Model,
		"deployment":  c.cfg.Deployment,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Chat completion finished")

	return resp.Choices[0].Message.Content, nil
}

// clientConfig builds a per-call client configuration. With token auth
// the bearer token is fetched fresh for every call so expiry is handled
// by the provider, not here.
func (c *Client) clientConfig(ctx context.Context) (openai.ClientConfig, error) {
	var cfg openai.ClientConfig

	if c.cfg.APIKey != "" {
		cfg = openai.DefaultAzureConfig(c.cfg.APIKey, c.cfg.Endpoint)
	} else {
		token, err := c.tokens(ctx)
		if err != nil {
			return openai.ClientConfig{}, fmt.Errorf("bearer token: %w", err)
		}
		cfg = openai.DefaultAzureConfig(token, c.cfg.Endpoint)
		cfg.APIType = openai.APITypeAzureAD
	}

	if c.cfg.APIVersion != "" {
		cfg.APIVersion = c.cfg.APIVersion
	}
	deployment := c.cfg.Deployment
	cfg.AzureModelMapperFunc = func(string) string { return deployment }

	return cfg, nil
}

// parseAPIError extracts a readable message from API failures.
func parseAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("completion API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	return fmt.Errorf("completion request failed: %w", err)
}
