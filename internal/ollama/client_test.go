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
package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.OllamaConfig{
		BaseURL:         srv.URL,
		DefaultModel:    "gemma:latest",
		ProbeTimeout:    2 * time.Second,
		GenerateTimeout: 2 * time.Second,
		Temperature:     0.1,
		TopP:            0.9,
		NumPredict:      1000,
	}, zap.NewNop())
}

func TestProbe(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	assert.True(t, c.Probe(context.Background()))
}

func TestProbeUnreachable(t *testing.T) {
	c := NewClient(config.OllamaConfig{
		BaseURL:      "http://127.0.0.1:1",
		ProbeTimeout: 200 * time.Millisecond,
	}, zap.NewNop())
	assert.False(t, c.Probe(context.Background()))
}

func TestListModels(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "gemma:latest"},
				{"name": "mistral"},
			},
		})
	}))

	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemma:latest", "mistral"}, models)
	assert.True(t, c.ValidateModel(context.Background(), "mistral"))
	assert.False(t, c.ValidateModel(context.Background(), "llama2"))
}

func TestGenerate(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemma:latest", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 0.1, req.Options.Temperature)
		assert.Equal(t, 1000, req.Options.NumPredict)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":          "hello",
			"prompt_eval_count": 12,
			"eval_count":        5,
		})
	}))

	result := c.Generate(context.Background(), "say hello", "")
	assert.True(t, result.Success)
	assert.Equal(t, "hello", result.Response)
	assert.Equal(t, "gemma:latest", result.Model)
	assert.Equal(t, 12, result.PromptEvalCount)
	assert.Equal(t, 5, result.EvalCount)
}

func TestGenerateServerErrorIsResultNotError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))

	result := c.Generate(context.Background(), "say hello", "gemma:latest")
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "HTTP 500")
	assert.Contains(t, result.Error, "model not loaded")
}

func TestGenerateTimeout(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	c.cfg.GenerateTimeout = 50 * time.Millisecond

	result := c.Generate(context.Background(), "slow", "")
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "timed out")
}

func TestGenerateStructured(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Prompt, "Respond ONLY with a valid JSON object")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": "Here you go:\n```json\n{\"enhanced_columns\": []}\n```\nLet me know if you need more.",
		})
	}))

	result := c.GenerateStructured(context.Background(), "enhance", "")
	require.True(t, result.Success)
	assert.True(t, result.IsJSON)
	assert.Contains(t, result.Parsed, "enhanced_columns")
}

func TestGenerateStructuredUnparseable(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": "I cannot produce JSON for this request.",
		})
	}))

	result := c.GenerateStructured(context.Background(), "enhance", "")
	assert.True(t, result.Success)
	assert.False(t, result.IsJSON)
	assert.NotEmpty(t, result.JSONError)
	assert.Equal(t, "I cannot produce JSON for this request.", result.Response)
}

func TestShowModel(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/show", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral", req["name"])

		_ = json.NewEncoder(w).Encode(map[string]any{"parameters": "num_ctx 4096"})
	}))

	info, err := c.ShowModel(context.Background(), "mistral")
	require.NoError(t, err)
	assert.Equal(t, "num_ctx 4096", info["parameters"])
}

func TestShowModelNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.ShowModel(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens("abc"))
	assert.Equal(t, 25, EstimateTokens(string(make([]byte, 100))))
}
