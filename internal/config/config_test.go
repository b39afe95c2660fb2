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
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "gemma:latest", cfg.Ollama.DefaultModel)
	assert.Equal(t, 5*time.Second, cfg.Ollama.ProbeTimeout)
	assert.Equal(t, 120*time.Second, cfg.Ollama.GenerateTimeout)
	assert.Equal(t, 0.1, cfg.Ollama.Temperature)
	assert.Equal(t, 1000, cfg.Ollama.NumPredict)
	assert.Equal(t, 8, cfg.Enrichment.ChunkSize)
	assert.Equal(t, 3, cfg.Enrichment.MaxAttempts)
	assert.Equal(t, "Snowflake", cfg.Project.TargetPlatform)
	assert.Equal(t, "General", cfg.Project.Industry)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ollama:
  base_url: http://model-host:11434
  default_model: llama3:8b
enrichment:
  chunk_size: 4
project:
  industry: Healthcare
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://model-host:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3:8b", cfg.Ollama.DefaultModel)
	assert.Equal(t, 4, cfg.Enrichment.ChunkSize)
	assert.Equal(t, "Healthcare", cfg.Project.Industry)
	// Untouched keys keep their defaults.
	assert.Equal(t, 3, cfg.Enrichment.MaxAttempts)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SCHEMA_ENRICHER_OLLAMA_DEFAULT_MODEL", "mistral:7b")
	t.Setenv("SCHEMA_ENRICHER_PROJECT_NAME", "claims")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mistral:7b", cfg.Ollama.DefaultModel)
	assert.Equal(t, "claims", cfg.Project.Name)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enrichment:\n  chunk_size: 0\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "chunk_size")
}
