package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(rt http.RoundTripper) *Client {
	return NewClient(Config{APIKey: "test-key"}, &http.Client{Transport: rt})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func TestGenerateSendsPromptAndJoinsParts(t *testing.T) {
	var (
		seenPath   string
		seenKey    string
		seenMethod string
		seenBody   generateRequest
	)

	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenPath = r.URL.Path
		seenKey = r.Header.Get("x-goog-api-key")
		seenMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&seenBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"Q1: A?\n"},{"text":"A) x"}]}}]}`), nil
	}))

	text, err := client.Generate(context.Background(), "make a quiz")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != "Q1: A?\nA) x" {
		t.Fatalf("unexpected text: %q", text)
	}
	if seenMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", seenMethod)
	}
	if seenPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Fatalf("unexpected path: %s", seenPath)
	}
	if seenKey != "test-key" {
		t.Fatalf("expected api key header, got %q", seenKey)
	}
	if len(seenBody.Contents) != 1 || seenBody.Contents[0].Parts[0].Text != "make a quiz" {
		t.Fatalf("unexpected request body: %+v", seenBody)
	}
}

func TestGeneratePropagatesNonOKStatus(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"error":{"message":"quota"}}`), nil
	}))

	_, err := client.Generate(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGenerateJSONDecodeError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "not-json"), nil
	}))

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected JSON decode error")
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty list", body: `{"candidates":[]}`},
		{name: "blocked", body: `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{name: "blank text", body: `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tt.body), nil
			}))
			if _, err := client.Generate(context.Background(), "prompt"); !errors.Is(err, ErrNoCandidates) {
				t.Fatalf("expected ErrNoCandidates, got %v", err)
			}
		})
	}
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	called := false
	client := NewClient(Config{}, &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})})

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected missing key error")
	}
	if called {
		t.Fatal("expected no request without an api key")
	}
}

func TestNewClientCustomBaseURLAndModel(t *testing.T) {
	var seenURL string
	client := NewClient(Config{APIKey: "k", Model: "gemini-pro", BaseURL: "http://localhost:9999/"}, &http.Client{
		Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			seenURL = r.URL.String()
			return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`), nil
		}),
	})

	if _, err := client.Generate(context.Background(), "prompt"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if seenURL != "http://localhost:9999/v1beta/models/gemini-pro:generateContent" {
		t.Fatalf("unexpected url: %s", seenURL)
	}
}
