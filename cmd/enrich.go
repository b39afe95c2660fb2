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
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/config"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/enricher"
)

var (
	enrichOutFile    string
	enrichDimensions []string
	enrichChunkSize  int
	enrichAttempts   int
	enrichNoProgress bool
)

// enrichedSchemaFile is the on-disk format shared between the enrich and
// generate commands.
type enrichedSchemaFile struct {
	Project     config.ProjectConfig      `json:"project"`
	Model       string                    `json:"model"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Columns     []enricher.EnrichedColumn `json:"columns"`
}

var enrichCmd = &cobra.Command{
	Use:   "enrich <file>",
	Short: "Enrich an inferred schema with AI-generated business metadata",
	Long: `Enrich profiles the input file and then asks the configured Ollama
model for suggested names, business descriptions, and the other requested
enhancement dimensions, in small chunks with retries. Chunks the model cannot
answer reliably are completed with deterministic rule-based suggestions, so
the command always produces a full schema.`,
	Example: `  csv_schema_enricher enrich data/bookings.csv --industry "Online Travel Agency (OTA)"
  csv_schema_enricher enrich extract.csv --dimensions column_names,business_descriptions,industry_context
  csv_schema_enricher enrich extract.csv --model llama3:8b --out enriched.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func runEnrich(cmd *cobra.Command, args []string) error {
	dims, err := enricher.ParseDimensions(enrichDimensions)
	if err != nil {
		return err
	}

	_, profiles, err := loadDataset(args[0])
	if err != nil {
		return err
	}

	client := newOllamaClient()
	ctx := cmd.Context()
	if !client.Probe(ctx) {
		logger.Warn("model host unreachable, all columns will use rule-based fallback",
			zap.String("base_url", cfg.Ollama.BaseURL))
	} else if !client.ValidateModel(ctx, cfg.Ollama.DefaultModel) {
		logger.Warn("configured model not found on host",
			zap.String("model", cfg.Ollama.DefaultModel))
	}

	opts := enricher.Options{
		Dimensions:  dims,
		ChunkSize:   enrichChunkSize,
		MaxAttempts: enrichAttempts,
		Industry:    cfg.Project.Industry,
	}

	if !enrichNoProgress {
		chunkSize := opts.ChunkSize
		if chunkSize < 1 {
			chunkSize = cfg.Enrichment.ChunkSize
		}
		totalChunks := (len(profiles) + chunkSize - 1) / chunkSize
		bar := progressbar.NewOptions(totalChunks,
			progressbar.OptionSetDescription("enriching schema"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetWriter(os.Stderr))
		opts.OnChunk = func(done, total int) {
			_ = bar.Set(done)
		}
	}

	service := enricher.NewService(client, cfg.Enrichment, logger)
	columns := service.Enhance(ctx, profiles, opts)

	fallbacks := 0
	for _, col := range columns {
		if col.FallbackUsed {
			fallbacks++
		}
	}
	logger.Info("enrichment complete",
		zap.Int("columns", len(columns)),
		zap.Int("fallback_columns", fallbacks))

	out := enrichedSchemaFile{
		Project:     cfg.Project,
		Model:       cfg.Ollama.DefaultModel,
		GeneratedAt: time.Now().UTC(),
		Columns:     columns,
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode enriched schema: %w", err)
	}
	if err := os.WriteFile(enrichOutFile, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", enrichOutFile, err)
	}
	logger.Info("enriched schema written", zap.String("file", enrichOutFile))
	return nil
}

func init() {
	enrichCmd.Flags().StringVarP(&enrichOutFile, "out", "o", "enriched_schema.json", "Output file for the enriched schema JSON")
	enrichCmd.Flags().StringSliceVar(&enrichDimensions, "dimensions", nil,
		"Enhancement dimensions to request (column_names, business_descriptions, data_quality_assessment, transformation_suggestions, industry_context)")
	enrichCmd.Flags().IntVar(&enrichChunkSize, "chunk-size", 0, "Columns per model request (0 uses the configured default)")
	enrichCmd.Flags().IntVar(&enrichAttempts, "max-attempts", 0, "Attempts per chunk before rule-based fallback (0 uses the configured default)")
	enrichCmd.Flags().BoolVar(&enrichNoProgress, "no-progress", false, "Disable the progress bar")
}
