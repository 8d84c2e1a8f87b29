// Package inference contains the outbound clients for text-generation
// backends: a local Ollama server for the grading service and the hosted
// Gemini API for the repository grader.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gradelab/code-grading-api/internal/core/domain"
)

// DefaultTimeout is generous on purpose: a cold model can spend minutes
// loading before the first token is produced.
const DefaultTimeout = 180 * time.Second

const warmupPrompt = "Hello"

// OllamaClient calls a local Ollama server's synchronous generate endpoint.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaClient creates a client for the given base URL and model.
func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "mistral"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OllamaClient{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate submits the prompt and returns the model's response text. A
// non-2xx answer surfaces as a *domain.UpstreamError carrying the upstream
// status and body; transport failures wrap domain.ErrUpstream.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	return result.Response, nil
}

// Warmup issues a minimal generation purely to force model residency.
func (c *OllamaClient) Warmup(ctx context.Context) error {
	_, err := c.Generate(ctx, warmupPrompt)
	return err
}

// Model returns the configured model name.
func (c *OllamaClient) Model() string {
	return c.model
}
