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
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/artifacts"
)

var generateOutDir string

// artifactFiles maps generated asset keys to output file names.
var artifactFiles = map[string]string{
	"dbt_model":             "dbt_model.sql",
	"schema_yml":            "schema.yml",
	"quality_tests":         "quality_tests.sql",
	"migration_script":      "migration_script.sql",
	"documentation":         "documentation.md",
	"lineage_documentation": "lineage_documentation.md",
}

var generateCmd = &cobra.Command{
	Use:   "generate <enriched-schema.json>",
	Short: "Generate migration artifacts from an enriched schema",
	Long: `Generate reads the enriched schema produced by the enrich command and
writes the migration artifact set: a dbt staging model, schema.yml with
derived tests, standalone data quality test SQL, a target-platform DDL
script, a business data dictionary, and lineage documentation, plus a
project summary with a migration readiness assessment.`,
	Example: `  csv_schema_enricher generate enriched_schema.json
  csv_schema_enricher generate enriched.json --target-platform BigQuery --out-dir artifacts/`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	var schema enrichedSchemaFile
	if err := json.Unmarshal(content, &schema); err != nil {
		return fmt.Errorf("failed to parse enriched schema %s: %w", args[0], err)
	}
	if len(schema.Columns) == 0 {
		return fmt.Errorf("enriched schema %s contains no columns", args[0])
	}

	// The schema file carries the project context it was enriched with;
	// explicit flags override it.
	project := schema.Project
	if project.Name == "" {
		project = cfg.Project
	}
	if projectName != "" {
		project.Name = projectName
	}
	if targetPlatform != "" {
		project.TargetPlatform = targetPlatform
	}
	if sourceSystem != "" {
		project.SourceSystem = sourceSystem
	}

	gen := artifacts.NewGenerator(project)
	assets, err := gen.GenerateAll(schema.Columns)
	if err != nil {
		return fmt.Errorf("failed to generate artifacts: %w", err)
	}

	if err := os.MkdirAll(generateOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", generateOutDir, err)
	}
	for key, content := range assets {
		name, ok := artifactFiles[key]
		if !ok {
			name = key + ".txt"
		}
		path := filepath.Join(generateOutDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("artifact written", zap.String("file", path))
	}

	summary := gen.ProjectSummary(schema.Columns)
	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project summary: %w", err)
	}
	summaryPath := filepath.Join(generateOutDir, "project_summary.json")
	if err := os.WriteFile(summaryPath, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", summaryPath, err)
	}

	logger.Info("generation complete",
		zap.String("dir", generateOutDir),
		zap.String("readiness", summary.Readiness.ReadinessLevel),
		zap.Float64("overall_score", summary.Readiness.OverallScore))
	return nil
}

func init() {
	generateCmd.Flags().StringVar(&generateOutDir, "out-dir", "migration_artifacts", "Directory to write generated artifacts into")
}
