package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateReply_UnconfiguredSentinel(t *testing.T) {
	p := NewOpenRouterProvider("", "", "openai/gpt-4o-mini", "", "")

	reply, err := p.GenerateReply(context.Background(), Request{SessionID: "s1", Text: "hi"})
	if err != nil {
		t.Fatalf("missing credential must not error: %v", err)
	}
	if reply != UnconfiguredReply {
		t.Fatalf("expected sentinel, got %q", reply)
	}
}

func TestGenerateReply_ForwardsAnnotationsAndThreadKey(t *testing.T) {
	var captured openRouterChatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "analyzed"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "test-key", "openai/gpt-4o-mini", "", "")

	reply, err := p.GenerateReply(context.Background(), Request{
		SessionID: "sess-42",
		Text:      "review my code",
		ImageData: "aGVsbG8=",
		AudioData: "d29ybGQ=",
		Model:     "GPT-5.2", // unqualified hint, ignored
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply != "analyzed" {
		t.Fatalf("unexpected reply %q", reply)
	}

	if captured.User != "sess-42" {
		t.Fatalf("session id not forwarded as thread key, got %q", captured.User)
	}
	if captured.Model != "openai/gpt-4o-mini" {
		t.Fatalf("unqualified hint must not override model, got %q", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("expected system+user messages, got %+v", captured.Messages)
	}
	content := captured.Messages[1].Content
	if !strings.HasPrefix(content, "review my code") {
		t.Fatalf("user text missing: %q", content)
	}
	if !strings.Contains(content, "[Image provided for analysis]") {
		t.Fatalf("image annotation missing: %q", content)
	}
	if !strings.Contains(content, "[Audio message provided]") {
		t.Fatalf("audio annotation missing: %q", content)
	}
}

func TestGenerateReply_QualifiedHintOverridesModel(t *testing.T) {
	var captured openRouterChatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "test-key", "openai/gpt-4o-mini", "", "")
	if _, err := p.GenerateReply(context.Background(), Request{
		SessionID: "s1", Text: "hi", Model: "anthropic/claude-sonnet-4",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if captured.Model != "anthropic/claude-sonnet-4" {
		t.Fatalf("qualified hint should be honored, got %q", captured.Model)
	}
}

func TestGenerateReply_ProviderFailureIsUniform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "test-key", "openai/gpt-4o-mini", "", "")
	_, err := p.GenerateReply(context.Background(), Request{SessionID: "s1", Text: "hi"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "generation failed") {
		t.Fatalf("uniform prefix missing: %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("underlying message lost: %v", err)
	}
}

func TestTranscribeAudio_Placeholder(t *testing.T) {
	p := NewOpenRouterProvider("", "key", "m", "", "")
	got, err := p.TranscribeAudio(context.Background(), "d29ybGQ=")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got != TranscriptionPlaceholder {
		t.Fatalf("unexpected transcription %q", got)
	}
}
