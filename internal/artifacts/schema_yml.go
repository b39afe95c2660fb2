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
package artifacts

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/enricher"
)

type schemaFile struct {
	Version int           `yaml:"version"`
	Models  []schemaModel `yaml:"models"`
}

type schemaModel struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Meta        modelMeta      `yaml:"meta"`
	Columns     []schemaColumn `yaml:"columns"`
}

type modelMeta struct {
	Industry      string `yaml:"industry"`
	SourceSystem  string `yaml:"source_system"`
	MigrationDate string `yaml:"migration_date"`
	DataSteward   string `yaml:"data_steward"`
}

type schemaColumn struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	DataType    string     `yaml:"data_type"`
	Meta        columnMeta `yaml:"meta"`
	Tests       []any      `yaml:"tests,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
}

type columnMeta struct {
	OriginalName        string  `yaml:"original_name"`
	BusinessCriticality string  `yaml:"business_criticality"`
	IndustryContext     string  `yaml:"industry_context"`
	DataQualityScore    float64 `yaml:"data_quality_score"`
}

// SchemaYML renders the dbt schema.yml, deriving column tests from the
// enrichment output: not_null for near-complete columns, unique for business
// keys, and expression tests from data quality rules.
func (g *Generator) SchemaYML(schema []enricher.EnrichedColumn) (string, error) {
	model := schemaModel{
		Name:        strings.ToLower(g.project.Name),
		Description: fmt.Sprintf("Enhanced %s data migrated from %s", g.project.Industry, g.project.SourceSystem),
		Meta: modelMeta{
			Industry:      g.project.Industry,
			SourceSystem:  g.project.SourceSystem,
			MigrationDate: g.now().Format(time.RFC3339),
			DataSteward:   fmt.Sprintf("%s Data Team", g.project.Industry),
		},
	}

	for _, col := range columnsOf(schema) {
		description := col.BusinessDescription
		if description == "" {
			description = "No description available"
		}
		criticality := col.BusinessCriticality
		if criticality == "" {
			criticality = "Medium"
		}

		def := schemaColumn{
			Name:        col.FinalName(),
			Description: description,
			DataType:    string(col.InferredType),
			Meta: columnMeta{
				OriginalName:        col.Name,
				BusinessCriticality: criticality,
				IndustryContext:     col.IndustryContext,
				DataQualityScore:    col.DataQualityScore,
			},
		}

		if col.CompletenessPct > 95 {
			def.Tests = append(def.Tests, "not_null")
		}
		if col.PotentialBusinessKey {
			def.Tests = append(def.Tests, "unique")
		}
		for _, rule := range col.DataQualityRules {
			lower := strings.ToLower(rule)
			switch {
			case strings.Contains(lower, "email"):
				def.Tests = append(def.Tests, expressionTest(
					fmt.Sprintf(`regexp_like(%s, '^[^@]+@[^@]+\.[^@]+$')`, def.Name)))
			case strings.Contains(lower, "positive"):
				def.Tests = append(def.Tests, expressionTest(
					fmt.Sprintf("%s >= 0", def.Name)))
			}
		}

		if col.PotentialPII {
			def.Tags = []string{"pii", "sensitive"}
		}

		model.Columns = append(model.Columns, def)
	}

	out, err := yaml.Marshal(schemaFile{Version: 2, Models: []schemaModel{model}})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func expressionTest(expression string) map[string]map[string]string {
	return map[string]map[string]string{
		"dbt_utils.expression_is_true": {"expression": expression},
	}
}
