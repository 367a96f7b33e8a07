package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const completionTemperature = 0.35

// OpenAIClient calls the OpenAI responses API.
type OpenAIClient struct {
	client *resty.Client
	model  string
}

// NewOpenAIClient builds a client for the given base URL (default
// https://api.openai.com), API key and model name.
func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey).
		SetTimeout(60 * time.Second)

	return &OpenAIClient{client: c, model: model}
}

type inputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type inputMessage struct {
	Role    string         `json:"role"`
	Content []inputContent `json:"content"`
}

type completionRequest struct {
	Model       string         `json:"model"`
	Temperature float64        `json:"temperature"`
	Input       []inputMessage `json:"input"`
}

type completionResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Text  string `json:"text"`
			Value string `json:"value"`
		} `json:"content"`
	} `json:"output"`
}

// Complete sends one completion request and returns the raw output text.
func (o *OpenAIClient) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	reqBody := completionRequest{
		Model:       o.model,
		Temperature: completionTemperature,
		Input: []inputMessage{
			{Role: "system", Content: []inputContent{{Type: "input_text", Text: systemPrompt}}},
			{Role: "user", Content: []inputContent{{Type: "input_text", Text: userContent}}},
		},
	}

	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/v1/responses")
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("completion status %d: %s", resp.StatusCode(), resp.String())
	}

	var cr completionResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	return extractOutputText(cr), nil
}

// extractOutputText prefers the flattened output_text field and falls back
// to joining the per-item content chunks.
func extractOutputText(cr completionResponse) string {
	if t := strings.TrimSpace(cr.OutputText); t != "" {
		return t
	}
	var chunks []string
	for _, item := range cr.Output {
		for _, c := range item.Content {
			text := c.Text
			if text == "" {
				text = c.Value
			}
			if t := strings.TrimSpace(text); t != "" {
				chunks = append(chunks, t)
			}
		}
	}
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}
