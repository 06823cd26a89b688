package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"attrition-go/internal/config"
)

const (
	openaiAPIURL       = "https://api.openai.com/v1/chat/completions"
	openaiDefaultModel = "gpt-4o"
)

// OpenAIProvider implements Provider using a Chat Completions endpoint.
type OpenAIProvider struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewOpenAI builds a provider from the AI configuration section.
func NewOpenAI(conf config.AIConfig) (*OpenAIProvider, error) {
	if conf.APIKey == "" {
		return nil, ErrNotConfigured
	}
	url := conf.Endpoint
	if url == "" {
		url = openaiAPIURL
	}
	model := conf.Model
	if model == "" {
		model = openaiDefaultModel
	}
	return &OpenAIProvider{
		apiKey: conf.APIKey,
		apiURL: url,
		model:  model,
		client: &http.Client{Timeout: conf.Timeout},
	}, nil
}

func (o *OpenAIProvider) Name() string { return "openai" }

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string, s Settings) (string, error) {
	model := s.Model
	if model == "" {
		model = o.model
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}

	reqBody := openaiRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Stream:    false,
		Messages: []openaiMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("openai: parse response: %w", err)
	}

	// An empty choice list is a valid reply with no content; callers
	// substitute FallbackText.
	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}

type openaiRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Stream    bool            `json:"stream"`
	Messages  []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}
