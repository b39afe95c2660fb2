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
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Ollama     OllamaConfig
	Enrichment EnrichmentConfig
	Project    ProjectConfig
}

// OllamaConfig holds connection and sampling settings for the model host.
type OllamaConfig struct {
	BaseURL         string
	DefaultModel    string
	ProbeTimeout    time.Duration
	GenerateTimeout time.Duration
	Temperature     float64
	TopP            float64
	NumPredict      int
}

// EnrichmentConfig controls the chunked enhancement loop.
type EnrichmentConfig struct {
	ChunkSize   int
	MaxAttempts int
}

// ProjectConfig describes the migration project that artifacts are generated for.
type ProjectConfig struct {
	Name           string
	SourceSystem   string
	TargetPlatform string
	Industry       string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.default_model", "gemma:latest")
	v.SetDefault("ollama.probe_timeout", "5s")
	v.SetDefault("ollama.generate_timeout", "120s")
	v.SetDefault("ollama.temperature", 0.1)
	v.SetDefault("ollama.top_p", 0.9)
	v.SetDefault("ollama.num_predict", 1000)

	v.SetDefault("enrichment.chunk_size", 8)
	v.SetDefault("enrichment.max_attempts", 3)

	v.SetDefault("project.name", "migration_table")
	v.SetDefault("project.source_system", "Legacy System")
	v.SetDefault("project.target_platform", "Snowflake")
	v.SetDefault("project.industry", "General")
}

// Load reads configuration from defaults, an optional config file, and
// SCHEMA_ENRICHER_* environment variables, in increasing precedence order.
// Command flags override all of these in cmd.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SCHEMA_ENRICHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", cfgFile, err)
		}
	}

	cfg := &Config{
		Ollama: OllamaConfig{
			BaseURL:         v.GetString("ollama.base_url"),
			DefaultModel:    v.GetString("ollama.default_model"),
			ProbeTimeout:    v.GetDuration("ollama.probe_timeout"),
			GenerateTimeout: v.GetDuration("ollama.generate_timeout"),
			Temperature:     v.GetFloat64("ollama.temperature"),
			TopP:            v.GetFloat64("ollama.top_p"),
			NumPredict:      v.GetInt("ollama.num_predict"),
		},
		Enrichment: EnrichmentConfig{
			ChunkSize:   v.GetInt("enrichment.chunk_size"),
			MaxAttempts: v.GetInt("enrichment.max_attempts"),
		},
		Project: ProjectConfig{
			Name:           v.GetString("project.name"),
			SourceSystem:   v.GetString("project.source_system"),
			TargetPlatform: v.GetString("project.target_platform"),
			Industry:       v.GetString("project.industry"),
		},
	}

	if cfg.Enrichment.ChunkSize < 1 {
		return nil, fmt.Errorf("enrichment.chunk_size must be at least 1, got %d", cfg.Enrichment.ChunkSize)
	}
	if cfg.Enrichment.MaxAttempts < 1 {
		return nil, fmt.Errorf("enrichment.max_attempts must be at least 1, got %d", cfg.Enrichment.MaxAttempts)
	}

	return cfg, nil
}
