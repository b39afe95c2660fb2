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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/bizcontext"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/config"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/dataset"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/ollama"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/profile"
)

var (
	cfgFile string
	verbose bool

	// Model host flags
	ollamaURL string
	modelName string

	// Project context flags
	projectName    string
	sourceSystem   string
	targetPlatform string
	industry       string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "csv_schema_enricher",
	Short: "A tool to enrich CSV schemas with AI-generated business metadata",
	Long: `csv_schema_enricher profiles tabular datasets, infers a column-level
schema, and augments it with business metadata (suggested names, descriptions,
compliance notes, transformation hints) by prompting a locally hosted Ollama
model. The enriched schema drives generation of migration artifacts: dbt
models, schema.yml, data quality tests, DDL, and documentation.`,
	PersistentPreRunE: initConfigAndLogger,
	SilenceUsage:      true,
}

// initConfigAndLogger loads configuration and applies flag overrides. Flags
// win over environment variables and config file values.
func initConfigAndLogger(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if cmd != nil {
		if ollamaURL != "" {
			cfg.Ollama.BaseURL = ollamaURL
		}
		if modelName != "" {
			cfg.Ollama.DefaultModel = modelName
		}
		if projectName != "" {
			cfg.Project.Name = projectName
		}
		if sourceSystem != "" {
			cfg.Project.SourceSystem = sourceSystem
		}
		if targetPlatform != "" {
			cfg.Project.TargetPlatform = targetPlatform
		}
		if industry != "" {
			cfg.Project.Industry = industry
		}
	}

	logger, err = newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapCfg.Build()
}

func newOllamaClient() *ollama.Client {
	return ollama.NewClient(cfg.Ollama, logger)
}

// loadDataset reads and parses a tabular file, then profiles and annotates
// its columns. Shared by the analyze and enrich commands.
func loadDataset(path string) (*dataset.Dataset, []profile.ColumnProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ds, err := dataset.Read(content)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("parsed dataset",
		zap.String("file", path),
		zap.Int("columns", len(ds.Columns)),
		zap.Int("rows", ds.RowCount))

	profiles := profile.Infer(ds)
	annotator := bizcontext.NewAnnotator(cfg.Project.Industry)
	profiles = annotator.Annotate(profiles, cfg.Project.Name, cfg.Project.SourceSystem)

	return ds, profiles, nil
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentFlags().StringVar(&ollamaURL, "ollama-url", "", "Ollama base URL (default http://localhost:11434)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Model name to use for enrichment (default gemma:latest)")

	rootCmd.PersistentFlags().StringVar(&projectName, "project", "", "Migration project/table name")
	rootCmd.PersistentFlags().StringVar(&sourceSystem, "source-system", "", "Source system name for documentation")
	rootCmd.PersistentFlags().StringVar(&targetPlatform, "target-platform", "", "Target platform (Snowflake, BigQuery, or generic)")
	rootCmd.PersistentFlags().StringVar(&industry, "industry", "", "Industry for business context (e.g. 'Financial Services', 'Healthcare')")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(sampleCmd)
}
