/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ollama is the gateway to a locally hosted Ollama model server.
// Generation calls never return Go errors for model-side failures; they
// report success or a failure reason in the result value so callers can
// degrade or fall back without unwinding the pipeline.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/config"
)

// TextGenerator is the surface the enrichment orchestrator depends on.
type TextGenerator interface {
	// GenerateStructured prompts the model for a JSON object and attempts to
	// repair and parse whatever comes back.
	GenerateStructured(ctx context.Context, prompt, model string) StructuredResult
}

// GenerationResult is the outcome of a single generation call.
type GenerationResult struct {
	Success         bool   `json:"success"`
	Model           string `json:"model"`
	Response        string `json:"response,omitempty"`
	Error           string `json:"error,omitempty"`
	PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
	EvalCount       int    `json:"eval_count,omitempty"`
}

// StructuredResult extends GenerationResult with the parsed JSON payload.
// IsJSON is true only when the repaired response text parsed successfully.
type StructuredResult struct {
	GenerationResult
	IsJSON    bool           `json:"is_json"`
	Parsed    map[string]any `json:"parsed_response,omitempty"`
	JSONError string         `json:"json_error,omitempty"`
}

// Client talks to the Ollama HTTP API.
type Client struct {
	cfg    config.OllamaConfig
	http   *http.Client
	logger *zap.Logger
}

var _ TextGenerator = (*Client)(nil)

// NewClient creates a client for the configured Ollama host. Timeouts are
// applied per call from the config, so the underlying http.Client has none.
func NewClient(cfg config.OllamaConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

// DefaultModel returns the configured default model name.
func (c *Client) DefaultModel() string {
	return c.cfg.DefaultModel
}

// Probe reports whether the Ollama server is reachable.
func (c *Client) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("ollama probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ListModels returns the names of models installed on the server.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach ollama at %s: %w", c.cfg.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama /api/tags returned HTTP %d", resp.StatusCode)
	}

	var payload struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}

	names := make([]string, 0, len(payload.Models))
	for _, m := range payload.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// ValidateModel reports whether the named model is installed on the server.
func (c *Client) ValidateModel(ctx context.Context, model string) bool {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false
	}
	for _, m := range models {
		if m == model {
			return true
		}
	}
	return false
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

// Generate runs a single completion against the model. Transport errors,
// timeouts and non-200 statuses are reported inside the result, not as a
// Go error.
func (c *Client) Generate(ctx context.Context, prompt, model string) GenerationResult {
	if model == "" {
		model = c.cfg.DefaultModel
	}
	result := GenerationResult{Model: model}

	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.cfg.Temperature,
			TopP:        c.cfg.TopP,
			NumPredict:  c.cfg.NumPredict,
		},
	})
	if err != nil {
		result.Error = fmt.Sprintf("failed to encode request: %v", err)
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.GenerateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		result.Error = fmt.Sprintf("failed to build request: %v", err)
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			result.Error = "request timed out; the model might be taking too long to respond"
		} else {
			result.Error = fmt.Sprintf("connection error: %v", err)
		}
		c.logger.Warn("generation call failed", zap.String("model", model), zap.String("reason", result.Error))
		return result
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read response: %v", err)
		return result
	}
	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		return result
	}

	var payload struct {
		Response        string `json:"response"`
		PromptEvalCount int    `json:"prompt_eval_count"`
		EvalCount       int    `json:"eval_count"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		result.Error = fmt.Sprintf("failed to decode response: %v", err)
		return result
	}

	result.Success = true
	result.Response = payload.Response
	result.PromptEvalCount = payload.PromptEvalCount
	result.EvalCount = payload.EvalCount
	return result
}

// structuredSuffix forces plain-JSON output. Local models routinely ignore
// parts of it, which is why the repair pass exists.
const structuredSuffix = `

IMPORTANT:
- Respond ONLY with a valid JSON object.
- DO NOT include explanations, comments, markdown (` + "```" + `), or triple quotes.
- DO NOT OMIT any columns or use ellipsis (...) or phrases like "omitted for brevity".
- Include ALL requested fields for ALL columns.
- Use ONLY double quotes (") for JSON keys and string values.
- The response must be directly parseable as JSON.
`

// GenerateStructured prompts for a JSON object, then repairs and parses the
// model output. A response that cannot be parsed is not an error: the result
// carries IsJSON=false plus the parse failure reason, and the raw text stays
// available for diagnostics.
func (c *Client) GenerateStructured(ctx context.Context, prompt, model string) StructuredResult {
	result := StructuredResult{
		GenerationResult: c.Generate(ctx, prompt+structuredSuffix, model),
	}
	if !result.Success {
		return result
	}

	parsed, err := ParseModelJSON(result.Response)
	if err != nil {
		result.JSONError = err.Error()
		c.logger.Warn("model response was not parseable JSON",
			zap.String("model", result.Model),
			zap.String("reason", result.JSONError))
		return result
	}

	result.IsJSON = true
	result.Parsed = parsed
	return result
}

// ShowModel fetches metadata for an installed model via /api/show.
func (c *Client) ShowModel(ctx context.Context, model string) (map[string]any, error) {
	if model == "" {
		model = c.cfg.DefaultModel
	}

	body, err := json.Marshal(map[string]string{"name": model})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/show", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach ollama at %s: %w", c.cfg.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model %q not found or not accessible (HTTP %d)", model, resp.StatusCode)
	}

	var info map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode model info: %w", err)
	}
	return info, nil
}

// TestModel sends a trivial prompt to verify the model produces output.
func (c *Client) TestModel(ctx context.Context, model string) GenerationResult {
	return c.Generate(ctx, "Hello! Please respond with a simple greeting.", model)
}

// EstimateTokens gives a rough token count for prompt budgeting, assuming
// four characters per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}
