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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeOutFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Profile a tabular file and infer its column schema",
	Long: `Analyze parses a CSV (or semicolon/tab separated) file, infers a type
for every column, computes per-column statistics, and annotates the schema
with rule-based business context for the configured industry. No model calls
are made; this command works fully offline.`,
	Example: `  csv_schema_enricher analyze data/customers.csv
  csv_schema_enricher analyze legacy_extract.csv --industry "Financial Services" --out schema.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, profiles, err := loadDataset(args[0])
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}

	if analyzeOutFile == "" {
		fmt.Println(string(encoded))
		return nil
	}
	if err := os.WriteFile(analyzeOutFile, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", analyzeOutFile, err)
	}
	logger.Info("schema written", zap.String("file", analyzeOutFile), zap.Int("columns", len(profiles)))
	return nil
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutFile, "out", "o", "", "Write the inferred schema JSON to this file instead of stdout")
}
