package muse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient("test-key", option.WithBaseURL(srv.URL+"/"))
}

func completionBody(content string) string {
	return `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "gpt-4o-mini",
		"choices": [
			{
				"index": 0,
				"message": {"role": "assistant", "content": ` + `"` + content + `"` + `},
				"finish_reason": "stop"
			}
		]
	}`
}

func TestGenerate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("A lighthouse keeper finds a violin.")))
	})

	got, err := c.Generate(context.Background(), "test phrase")
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	want := "A lighthouse keeper finds a violin."
	if got != want {
		t.Errorf("got = %q, expected = %q\n", got, want)
	}
}

func TestGenerate_TrimsWhitespace(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("\\n  A prompt.  \\n")))
	})

	got, err := c.Generate(context.Background(), "test phrase")
	if err != nil {
		t.Fatalf("error: %v\n", err)
	}

	want := "A prompt."
	if got != want {
		t.Errorf("got = %q, expected = %q\n", got, want)
	}
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("")))
	})

	_, err := c.Generate(context.Background(), "test phrase")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("got = %v, expected = %v\n", err, ErrEmptyCompletion)
	}
}

func TestGenerate_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	})

	_, err := c.Generate(context.Background(), "test phrase")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got = %v, expected = %v\n", err, ErrUnauthorized)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("too late")))
	})
	c.Timeout = 50 * time.Millisecond

	_, err := c.Generate(context.Background(), "test phrase")
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Errorf("timeout misreported as auth failure: %v\n", err)
	}

	// A timeout degrades to the generic fallback sentence, not an exception
	// surfaced to the user.
	got := FallbackFor(err)
	want := FallbackGeneric

	if got != want {
		t.Errorf("got = %q, expected = %q\n", got, want)
	}
}

func TestGenerate_NoAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	// Blank key: reported up front, the server must never be reached.
	c := NewClient("", option.WithBaseURL(srv.URL+"/"))

	_, err := c.Generate(context.Background(), "test phrase")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("got = %v, expected = %v\n", err, ErrNoAPIKey)
	}

	if called {
		t.Error("blank-key client made a network request")
	}
}

func TestFallbackFor(t *testing.T) {
	tests := []struct {
		description string
		err         error
		want        string
	}{
		{description: "auth failure", err: ErrUnauthorized, want: FallbackUnauthorized},
		{description: "wrapped auth failure", err: errors.Join(errors.New("outer"), ErrUnauthorized), want: FallbackUnauthorized},
		{description: "generic failure", err: errors.New("boom"), want: FallbackGeneric},
		{description: "empty completion", err: ErrEmptyCompletion, want: FallbackGeneric},
	}

	for _, tc := range tests {
		got := FallbackFor(tc.err)
		if got != tc.want {
			t.Errorf("(%s) got = %q, expected = %q\n", tc.description, got, tc.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("lighthouse", "marmalade", "in exactly six words")

	for _, part := range []string{"lighthouse", "marmalade", "in exactly six words"} {
		if !strings.Contains(got, part) {
			t.Errorf("prompt %q missing %q\n", got, part)
		}
	}
}
