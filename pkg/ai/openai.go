package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrEmptyResponse is returned when the provider answers without any choices or content
var ErrEmptyResponse = errors.New("model returned an empty response")

// ChatRequest is a single system+user exchange that must be answered with a JSON object
type ChatRequest struct {
	Model           string
	System          string
	User            string
	Temperature     float32
	ReasoningEffort string
}

// Completer is implemented by anything that can answer a ChatRequest
type Completer interface {
	CompleteJSON(ctx context.Context, req ChatRequest) (string, error)
}

// Client talks to an OpenAI-compatible chat completions API
type Client struct {
	client     *openai.Client
	maxRetries int
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

type loggingTransport struct {
	base   http.RoundTripper
	logger *zap.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var size int
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(body))
		size = len(body)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("request_bytes", size),
		zap.Duration("latency", time.Since(start)),
	}
	if resp != nil {
		fields = append(fields, zap.Int("status", resp.StatusCode))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	t.logger.Debug("model API call", fields...)

	return resp, err
}

// NewClient builds a client from config. A nil logger disables request logging.
func NewClient(cfg *config.OpenAIConfig, logger *zap.Logger) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	if logger != nil {
		httpClient.Transport = &loggingTransport{base: http.DefaultTransport, logger: logger}
	} else {
		logger = zap.NewNop()
	}
	clientCfg.HTTPClient = httpClient

	return &Client{
		client:     openai.NewClientWithConfig(clientCfg),
		maxRetries: cfg.MaxRetries,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 2 * time.Second
			bo.MaxInterval = 10 * time.Second
			bo.MaxElapsedTime = 2 * time.Minute
			return bo
		},
		logger: logger,
	}
}

// CompleteJSON sends the request in JSON mode and returns the raw message content.
// Network failures, 429 and 5xx responses are retried up to the configured limit.
func (c *Client) CompleteJSON(ctx context.Context, req ChatRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	// reasoning models reject a custom temperature
	if req.ReasoningEffort != "" {
		chatReq.ReasoningEffort = req.ReasoningEffort
	} else {
		chatReq.Temperature = req.Temperature
	}

	var content string
	attempt := 0
	op := func() error {
		attempt++
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			if ctx.Err() != nil || !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return backoff.Permanent(ErrEmptyResponse)
		}
		content = resp.Choices[0].Message.Content
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("⚠️ Model call failed, retrying",
			zap.String("model", req.Model),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxRetries)), ctx)
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		return "", fmt.Errorf("chat completion with %s failed: %w", req.Model, err)
	}

	return content, nil
}

// StatusCode returns the HTTP status carried by a provider error, or 0
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// IsRetryable reports whether a failed call is worth repeating
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	status := StatusCode(err)
	if status == 0 {
		// no HTTP status means the request never got an answer
		return true
	}
	return status == http.StatusTooManyRequests || status >= 500
}

// IsRateLimited reports whether the provider rejected the call for quota reasons
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}
