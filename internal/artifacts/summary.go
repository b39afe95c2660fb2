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
	"math"
	"strings"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/config"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/enricher"
)

// Summary aggregates project-level metrics over the enriched schema.
type Summary struct {
	ProjectInfo    config.ProjectConfig `json:"project_info"`
	SchemaMetrics  SchemaMetrics        `json:"schema_metrics"`
	BusinessImpact BusinessImpact       `json:"business_impact"`
	Readiness      Readiness            `json:"migration_readiness"`
}

type SchemaMetrics struct {
	TotalColumns       int `json:"total_columns"`
	EnhancedColumns    int `json:"enhanced_columns"`
	PIIColumns         int `json:"pii_columns"`
	BusinessKeys       int `json:"business_keys"`
	HighQualityColumns int `json:"high_quality_columns"`
}

type BusinessImpact struct {
	HighCriticalityFields    int `json:"high_criticality_fields"`
	ComplianceRequirements   int `json:"compliance_requirements"`
	TransformationComplexity int `json:"transformation_complexity"`
}

// Readiness scores migration readiness from data quality, transformation
// complexity and documentation coverage.
type Readiness struct {
	OverallScore       float64  `json:"overall_score"`
	DataQualityScore   float64  `json:"data_quality_score"`
	ComplexityScore    float64  `json:"complexity_score"`
	DocumentationScore float64  `json:"documentation_score"`
	ReadinessLevel     string   `json:"readiness_level"`
	Recommendations    []string `json:"recommendations"`
}

// ProjectSummary computes aggregate metrics and a readiness assessment.
func (g *Generator) ProjectSummary(schema []enricher.EnrichedColumn) Summary {
	columns := columnsOf(schema)

	metrics := SchemaMetrics{TotalColumns: len(columns)}
	impact := BusinessImpact{}
	complianceSet := make(map[string]struct{})

	for _, col := range columns {
		if col.Enhanced {
			metrics.EnhancedColumns++
		}
		if col.PotentialPII {
			metrics.PIIColumns++
		}
		if col.PotentialBusinessKey {
			metrics.BusinessKeys++
		}
		if col.DataQualityScore > 0.8 {
			metrics.HighQualityColumns++
		}
		if strings.HasPrefix(col.BusinessCriticality, "High") {
			impact.HighCriticalityFields++
		}
		if len(col.TransformationSuggestions) > 0 {
			impact.TransformationComplexity++
		}
		for _, req := range col.ComplianceImplications {
			complianceSet[req] = struct{}{}
		}
	}
	impact.ComplianceRequirements = len(complianceSet)

	return Summary{
		ProjectInfo:    g.project,
		SchemaMetrics:  metrics,
		BusinessImpact: impact,
		Readiness:      assessReadiness(columns),
	}
}

func assessReadiness(columns []enricher.EnrichedColumn) Readiness {
	if len(columns) == 0 {
		return Readiness{ReadinessLevel: "Low"}
	}

	total := float64(len(columns))
	qualitySum := 0.0
	highComplexity, documented := 0, 0
	for _, col := range columns {
		qualitySum += col.DataQualityScore
		if col.MigrationComplexity == enricher.ComplexityHigh {
			highComplexity++
		}
		if col.BusinessDescription != "" {
			documented++
		}
	}

	quality := qualitySum / total
	complexity := 1.0 - float64(highComplexity)/total
	documentation := float64(documented) / total
	overall := (quality + complexity + documentation) / 3

	level := "Low"
	switch {
	case overall > 0.8:
		level = "High"
	case overall > 0.6:
		level = "Medium"
	}

	return Readiness{
		OverallScore:       round2(overall),
		DataQualityScore:   round2(quality),
		ComplexityScore:    round2(complexity),
		DocumentationScore: round2(documentation),
		ReadinessLevel:     level,
		Recommendations:    readinessRecommendations(overall, columns),
	}
}

func readinessRecommendations(overall float64, columns []enricher.EnrichedColumn) []string {
	if overall >= 0.8 {
		return nil
	}

	var recommendations []string
	lowQuality, highComplexity, undocumented := 0, 0, 0
	for _, col := range columns {
		if col.DataQualityScore < 0.7 {
			lowQuality++
		}
		if col.MigrationComplexity == enricher.ComplexityHigh {
			highComplexity++
		}
		if col.BusinessDescription == "" {
			undocumented++
		}
	}

	if lowQuality > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Improve data quality for %d columns before migration", lowQuality))
	}
	if highComplexity > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Develop detailed migration plan for %d complex transformations", highComplexity))
	}
	if undocumented > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Add business documentation for %d columns", undocumented))
	}
	return recommendations
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
