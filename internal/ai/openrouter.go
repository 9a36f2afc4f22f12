package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// UnconfiguredReply is returned instead of an error when no provider
// credential is set so the rest of the system stays usable without one.
const UnconfiguredReply = "AI service is not configured. Please set OPENROUTER_API_KEY in the .env file."

// TranscriptionPlaceholder is what TranscribeAudio returns until a real
// speech-to-text service is wired in.
const TranscriptionPlaceholder = "[Audio transcription would be implemented here with Whisper API or similar service]"

const systemPrompt = `You are an AI Interview Assistant helping candidates prepare for technical interviews.
Provide clear, concise, and helpful answers to interview questions.
Focus on practical advice, code examples where relevant, and industry best practices.
Be supportive and encouraging while being honest and accurate.`

const (
	imageNote = "\n\n[Image provided for analysis]"
	audioNote = "\n\n[Audio message provided]"
)

type OpenRouterProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	SiteURL string
	AppName string
	Client  *http.Client
}

type openRouterMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterChatReq struct {
	Model    string          `json:"model"`
	Messages []openRouterMsg `json:"messages"`
	User     string          `json:"user,omitempty"`
}

type openRouterChatResp struct {
	Choices []struct {
		Message openRouterMsg `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenRouterProvider(baseURL, apiKey, model, siteURL, appName string) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &OpenRouterProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		SiteURL: siteURL,
		AppName: appName,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

// GenerateReply forwards one user turn to the chat-completions endpoint.
// Attachment payloads are not decoded locally; the outgoing text only carries
// a note that they were supplied. Provider failures come back as a single
// *GenerationError.
func (p *OpenRouterProvider) GenerateReply(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(p.APIKey) == "" {
		return UnconfiguredReply, nil
	}
	if p.Client == nil {
		return "", &GenerationError{Err: errors.New("openrouter: http client is nil")}
	}

	content := req.Text
	if req.ImageData != "" {
		content += imageNote
	}
	if req.AudioData != "" {
		content += audioNote
	}

	// Session model hints like "GPT-5.2" are informational; only a
	// provider-qualified id overrides the configured model.
	model := strings.TrimSpace(p.Model)
	if hint := strings.TrimSpace(req.Model); strings.Contains(hint, "/") {
		model = hint
	}
	if model == "" {
		return "", &GenerationError{Err: errors.New("openrouter: model is required")}
	}

	body := openRouterChatReq{
		Model: model,
		User:  req.SessionID,
		Messages: []openRouterMsg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: content},
		},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(p.BaseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	if p.SiteURL != "" {
		httpReq.Header.Set("HTTP-Referer", p.SiteURL)
	}
	if p.AppName != "" {
		httpReq.Header.Set("X-Title", p.AppName)
	}

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", &GenerationError{Err: fmt.Errorf("openrouter: %s", msg)}
	}

	var decoded openRouterChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &GenerationError{Err: err}
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", &GenerationError{Err: errors.New(decoded.Error.Message)}
	}
	if len(decoded.Choices) == 0 {
		return "", &GenerationError{Err: errors.New("openrouter: empty response")}
	}
	return decoded.Choices[0].Message.Content, nil
}

// TranscribeAudio is a placeholder hook; it is not called from the chat flow.
func (p *OpenRouterProvider) TranscribeAudio(ctx context.Context, audioData string) (string, error) {
	_ = ctx
	_ = audioData
	return TranscriptionPlaceholder, nil
}
