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

// Package enricher drives AI-powered schema enhancement. It partitions the
// inferred schema into small chunks, retries each chunk with escalating
// prompt degradation, and guarantees structurally complete output by falling
// back to deterministic rules when the model cannot be trusted.
package enricher

import (
	"context"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/config"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/ollama"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/profile"
)

// Service orchestrates chunked enrichment against a text generator.
type Service struct {
	gen    ollama.TextGenerator
	cfg    config.EnrichmentConfig
	logger *zap.Logger
}

// NewService creates an enrichment service.
func NewService(gen ollama.TextGenerator, cfg config.EnrichmentConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, cfg: cfg, logger: logger}
}

// Enhance enriches every profile and returns one EnrichedColumn per input,
// in input order, plus at most one trailing overall assessment record. It
// never fails: chunks the model cannot handle are resolved by the rule-based
// fallback, marked with FallbackUsed.
//
// Chunks are processed strictly sequentially. The model host is a shared
// local resource and ordered output assembly depends on it.
func (s *Service) Enhance(ctx context.Context, profiles []profile.ColumnProfile, opts Options) []EnrichedColumn {
	chunkSize := opts.ChunkSize
	if chunkSize < 1 {
		chunkSize = s.cfg.ChunkSize
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = s.cfg.MaxAttempts
	}

	totalChunks := (len(profiles) + chunkSize - 1) / chunkSize
	out := make([]EnrichedColumn, 0, len(profiles)+1)

	for i := 0; i < totalChunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(profiles) {
			end = len(profiles)
		}
		chunk := profiles[start:end]

		s.logger.Info("processing chunk",
			zap.Int("chunk", i+1),
			zap.Int("total_chunks", totalChunks),
			zap.Int("columns", len(chunk)))

		out = append(out, s.enhanceChunk(ctx, chunk, maxAttempts, opts)...)

		if opts.OnChunk != nil {
			opts.OnChunk(i+1, totalChunks)
		}
	}

	if hasDimension(opts.dimensions(), DimensionQuality) {
		if assessment, ok := s.overallAssessment(ctx, profiles, opts); ok {
			out = append(out, assessment)
		}
	}

	return out
}

// enhanceChunk runs the retry/degradation ladder for one chunk. Every failed
// attempt, whatever the cause, advances to the next prompt tier; exhausting
// the ladder resolves through the fallback, never an error.
func (s *Service) enhanceChunk(ctx context.Context, chunk []profile.ColumnProfile, maxAttempts int, opts Options) []EnrichedColumn {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prompt := buildPrompt(attempt, chunk, opts)
		result := s.gen.GenerateStructured(ctx, prompt, opts.Model)

		aiColumns, reason := acceptChunkResponse(result, len(chunk))
		if reason != "" {
			s.logger.Warn("chunk attempt rejected",
				zap.Int("attempt", attempt),
				zap.String("reason", reason))
			continue
		}

		return mergeChunk(chunk, aiColumns)
	}

	s.logger.Warn("all attempts exhausted, using rule-based fallback",
		zap.Int("columns", len(chunk)))
	return enrichFallback(chunk)
}

// aiColumn is the per-column object the model returns inside
// "enhanced_columns".
type aiColumn struct {
	SuggestedName             string
	BusinessDescription       string
	DataQualityNotes          string
	TransformationSuggestions []string
	ConfidenceScore           float64
	IndustryContext           string
	ComplianceNotes           string
	BusinessImportance        string
	DataQualityRules          []string
	PotentialKPIs             []string
}

// acceptChunkResponse applies the chunk acceptance contract: gateway
// success, parseable JSON, an enhanced_columns array of exactly the chunk
// length. The returned reason is empty on acceptance.
func acceptChunkResponse(result ollama.StructuredResult, want int) ([]aiColumn, string) {
	if !result.Success {
		return nil, "generation failed: " + result.Error
	}
	if !result.IsJSON {
		return nil, "response was not valid JSON: " + result.JSONError
	}

	raw, ok := result.Parsed["enhanced_columns"].([]any)
	if !ok {
		return nil, "response missing enhanced_columns array"
	}
	if len(raw) != want {
		return nil, "column count mismatch"
	}

	columns := make([]aiColumn, 0, want)
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, "enhanced_columns entry is not an object"
		}
		columns = append(columns, aiColumn{
			SuggestedName:             getString(obj, "suggested_name"),
			BusinessDescription:       getString(obj, "business_description"),
			DataQualityNotes:          getString(obj, "data_quality_notes"),
			TransformationSuggestions: getStringSlice(obj, "transformation_suggestions"),
			ConfidenceScore:           getFloat(obj, "confidence_score", 0.5),
			IndustryContext:           getString(obj, "industry_context"),
			ComplianceNotes:           getString(obj, "compliance_notes"),
			BusinessImportance:        getString(obj, "business_importance"),
			DataQualityRules:          getStringSlice(obj, "data_quality_rules"),
			PotentialKPIs:             getStringSlice(obj, "potential_kpis"),
		})
	}
	return columns, ""
}

// mergeChunk overlays accepted model output onto the original profiles,
// pairing by position, and computes the derived fields.
func mergeChunk(chunk []profile.ColumnProfile, aiColumns []aiColumn) []EnrichedColumn {
	out := make([]EnrichedColumn, 0, len(chunk))
	for i, p := range chunk {
		ai := aiColumns[i]

		suggested := ai.SuggestedName
		if suggested == "" {
			suggested = p.Name
		}

		col := EnrichedColumn{
			ColumnProfile:             p,
			SuggestedName:             suggested,
			BusinessDescription:       ai.BusinessDescription,
			DataQualityNotes:          ai.DataQualityNotes,
			TransformationSuggestions: ai.TransformationSuggestions,
			ConfidenceScore:           clamp01(ai.ConfidenceScore),
			IndustryContext:           ai.IndustryContext,
			ComplianceNotes:           ai.ComplianceNotes,
			BusinessImportance:        ai.BusinessImportance,
			DataQualityRules:          ai.DataQualityRules,
			PotentialKPIs:             ai.PotentialKPIs,
			Enhanced:                  true,
		}
		finalizeDerivedFields(&col)
		out = append(out, col)
	}
	return out
}

// overallAssessment issues one unchunked request for a dataset-wide quality
// summary. Failure is non-fatal; the record is simply omitted.
func (s *Service) overallAssessment(ctx context.Context, profiles []profile.ColumnProfile, opts Options) (EnrichedColumn, bool) {
	result := s.gen.GenerateStructured(ctx, overallAssessmentPrompt(profiles), opts.Model)
	if !result.Success || !result.IsJSON {
		s.logger.Warn("overall assessment skipped", zap.String("reason", result.Error+result.JSONError))
		return EnrichedColumn{}, false
	}

	overall, ok := result.Parsed["overall_assessment"].(map[string]any)
	if !ok {
		return EnrichedColumn{}, false
	}

	return EnrichedColumn{
		IsOverallAssessment: true,
		DataQualityScore:    clamp01(getFloat(overall, "data_quality_score", 0.5)),
		MainConcerns:        getStringSlice(overall, "main_concerns"),
		Recommendations:     getStringSlice(overall, "recommendations"),
		Enhanced:            true,
	}, true
}

func getString(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func getFloat(obj map[string]any, key string, fallback float64) float64 {
	switch v := obj[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}

func getStringSlice(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
