package muse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// RequestTimeout bounds a single generation call. There are no retries; a
// failed call degrades to a fallback sentence.
const RequestTimeout = 10 * time.Second

// Fixed sampling parameters for every request.
const (
	defaultModel        = openai.ChatModelGPT4oMini
	temperature         = 0.9
	maxCompletionTokens = 120
)

// Fallback sentences shown in place of a completion when a call fails. The UI
// and the tests share them.
const (
	FallbackGeneric      = "The muse went quiet. Try again in a moment."
	FallbackUnauthorized = "The muse refused your API key. Double-check it and try again."
)

var (
	ErrNoAPIKey        = errors.New("no API key configured")
	ErrUnauthorized    = errors.New("API key rejected")
	ErrEmptyCompletion = errors.New("empty completion")
)

// Result carries the outcome of one generation request back to the UI. The
// token identifies the request; the UI discards results whose token is stale,
// so a slow response never overwrites a newer one.
type Result struct {
	Token uuid.UUID
	Text  string
	Err   error
}

// Client wraps the generation API with fixed sampling parameters and a fixed
// timeout.
type Client struct {
	api    openai.Client
	hasKey bool

	// Timeout bounds each Generate call. Defaults to RequestTimeout.
	Timeout time.Duration
}

// NewClient returns a client bound to the API key. Extra request options are
// prepended for tests (base URL overrides). A blank key is allowed at
// construction; Generate reports it without attempting a call.
func NewClient(apiKey string, opts ...option.RequestOption) *Client {
	all := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &Client{
		api:     openai.NewClient(all...),
		hasKey:  strings.TrimSpace(apiKey) != "",
		Timeout: RequestTimeout,
	}
}

// Generate sends the phrase to the generation API and returns the completion
// text. Auth failures map to ErrUnauthorized; a completion with no text maps
// to ErrEmptyCompletion.
func (c *Client) Generate(ctx context.Context, phrase string) (string, error) {
	if !c.hasKey {
		return "", ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: defaultModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(phrase),
		},
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxCompletionTokens),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			if apierr.StatusCode == http.StatusUnauthorized || apierr.StatusCode == http.StatusForbidden {
				return "", ErrUnauthorized
			}
		}
		return "", fmt.Errorf("generation request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}

// FallbackFor maps a generation failure to the sentence shown to the user.
func FallbackFor(err error) string {
	if errors.Is(err, ErrUnauthorized) {
		return FallbackUnauthorized
	}
	return FallbackGeneric
}
