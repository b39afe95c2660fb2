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

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/ollama"
)

var (
	modelsShowName string
	modelsTestName string
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List and inspect models available on the Ollama host",
	Long: `Models queries the configured Ollama host for its installed models.
Use --show to print a model's details or --test to send it a short prompt and
report whether it responds.`,
	Example: `  csv_schema_enricher models
  csv_schema_enricher models --show gemma:latest
  csv_schema_enricher models --test llama3:8b`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	client := newOllamaClient()
	ctx := cmd.Context()

	if !client.Probe(ctx) {
		return fmt.Errorf("ollama host %s is not reachable", cfg.Ollama.BaseURL)
	}

	if modelsShowName != "" {
		details, err := client.ShowModel(ctx, modelsShowName)
		if err != nil {
			return err
		}
		fmt.Printf("Model: %s\n", modelsShowName)
		for _, key := range []string{"parameters", "template", "modelfile"} {
			if v, ok := details[key].(string); ok && v != "" {
				fmt.Printf("\n--- %s ---\n%s\n", key, v)
			}
		}
		return nil
	}

	if modelsTestName != "" {
		result := client.TestModel(ctx, modelsTestName)
		if !result.Success {
			return fmt.Errorf("model %s failed the test prompt: %s", modelsTestName, result.Error)
		}
		fmt.Printf("Model %s responded OK (%d tokens generated)\n", modelsTestName, result.EvalCount)
		fmt.Printf("Estimated prompt tokens: %d\n", ollama.EstimateTokens(result.Response))
		return nil
	}

	models, err := client.ListModels(ctx)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Println("No models installed. Pull one with: ollama pull gemma:latest")
		return nil
	}
	fmt.Printf("Available models on %s:\n", cfg.Ollama.BaseURL)
	for _, name := range models {
		marker := " "
		if name == cfg.Ollama.DefaultModel {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, name)
	}
	return nil
}

func init() {
	modelsCmd.Flags().StringVar(&modelsShowName, "show", "", "Show details for the named model")
	modelsCmd.Flags().StringVar(&modelsTestName, "test", "", "Send a short test prompt to the named model")
}
