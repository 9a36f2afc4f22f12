package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// OllamaProvider talks to a local Ollama instance. It needs no credential, so
// the unconfigured sentinel never applies here.
type OllamaProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3:latest"
	}
	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

type ollamaMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatReq struct {
	Model    string      `json:"model"`
	Messages []ollamaMsg `json:"messages"`
	Stream   bool        `json:"stream"`
}

type ollamaChatResp struct {
	Message ollamaMsg `json:"message"`
	Error   string    `json:"error,omitempty"`
}

func (p *OllamaProvider) GenerateReply(ctx context.Context, req Request) (string, error) {
	if p.Client == nil {
		return "", &GenerationError{Err: errors.New("ollama: http client is nil")}
	}

	content := req.Text
	if req.ImageData != "" {
		content += imageNote
	}
	if req.AudioData != "" {
		content += audioNote
	}

	model := p.Model
	if req.Model != "" {
		model = req.Model
	}

	body := ollamaChatReq{
		Model:  model,
		Stream: false,
		Messages: []ollamaMsg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: content},
		},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	url := fmt.Sprintf("%s/api/chat", p.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &GenerationError{Err: fmt.Errorf("ollama: status %d", resp.StatusCode)}
	}

	var decoded ollamaChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &GenerationError{Err: err}
	}
	if decoded.Error != "" {
		return "", &GenerationError{Err: errors.New(decoded.Error)}
	}
	return decoded.Message.Content, nil
}
