package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient generates text through the generateContent endpoint.
type GeminiClient struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewGeminiClient creates a client. baseURL may be empty for the public API.
func NewGeminiClient(apiKey, model, baseURL string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiClient{
		client:  resty.New().SetTimeout(timeout).SetRetryCount(0),
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Complete calls generateContent once and returns the first candidate text.
func (g *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.model)

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{
				Text: prompt,
			}},
		}},
		GenerationConfig: geminiGenerationConfig{MaxOutputTokens: maxTokens},
	}

	var result geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", g.apiKey).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(url)

	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("API error: %s", result.Error.Message)
	}

	if resp.IsError() {
		return "", fmt.Errorf("unexpected status code %d", resp.StatusCode())
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
