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
package enricher

import (
	"fmt"
	"strings"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/profile"
)

// Dimension is one requested enhancement axis. The set is closed; free-text
// option labels are normalized once at the boundary by ParseDimension.
type Dimension string

const (
	DimensionColumnNames     Dimension = "column_names"
	DimensionDescriptions    Dimension = "business_descriptions"
	DimensionQuality         Dimension = "data_quality_assessment"
	DimensionTransformations Dimension = "transformation_suggestions"
	DimensionIndustry        Dimension = "industry_context"
)

// AllDimensions lists every supported enhancement dimension.
var AllDimensions = []Dimension{
	DimensionColumnNames,
	DimensionDescriptions,
	DimensionQuality,
	DimensionTransformations,
	DimensionIndustry,
}

// ParseDimension normalizes a user-supplied option label ("Column Names",
// "data quality assessment") into a Dimension.
func ParseDimension(label string) (Dimension, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
	for _, d := range AllDimensions {
		if string(d) == normalized {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown enhancement dimension %q", label)
}

// ParseDimensions parses a list of option labels, rejecting the first
// unknown one.
func ParseDimensions(labels []string) ([]Dimension, error) {
	dims := make([]Dimension, 0, len(labels))
	for _, label := range labels {
		d, err := ParseDimension(label)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}

func hasDimension(dims []Dimension, want Dimension) bool {
	for _, d := range dims {
		if d == want {
			return true
		}
	}
	return false
}

// Options controls one Enhance invocation.
type Options struct {
	// Dimensions selects which enhancement axes the model is asked for.
	// Empty means names and descriptions.
	Dimensions []Dimension

	// Model overrides the gateway's default model when non-empty.
	Model string

	// ChunkSize and MaxAttempts override the configured values when > 0.
	ChunkSize   int
	MaxAttempts int

	// Industry feeds industry framing into the full prompt tier.
	Industry string

	// OnChunk, when set, is called after each chunk completes with the
	// number of finished chunks and the total. Used for progress display.
	OnChunk func(done, total int)
}

func (o Options) dimensions() []Dimension {
	if len(o.Dimensions) == 0 {
		return []Dimension{DimensionColumnNames, DimensionDescriptions}
	}
	return o.Dimensions
}

// Complexity tiers for migration planning.
const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"
)

// EnrichedColumn is a ColumnProfile plus model- or rule-derived business
// metadata. Instances are created by Enhance and never mutated afterwards.
type EnrichedColumn struct {
	profile.ColumnProfile

	SuggestedName             string   `json:"suggested_name,omitempty"`
	BusinessDescription       string   `json:"business_description,omitempty"`
	DataQualityNotes          string   `json:"data_quality_notes,omitempty"`
	TransformationSuggestions []string `json:"transformation_suggestions,omitempty"`
	ConfidenceScore           float64  `json:"confidence_score"`

	IndustryContext  string   `json:"industry_context,omitempty"`
	ComplianceNotes  string   `json:"compliance_notes,omitempty"`
	DataQualityRules []string `json:"data_quality_rules,omitempty"`
	// BusinessImportance is Low, Medium or High when the model supplied it.
	BusinessImportance string   `json:"business_importance,omitempty"`
	PotentialKPIs      []string `json:"potential_kpis,omitempty"`

	// Derived locally, never taken from the model.
	DataQualityScore    float64 `json:"data_quality_score"`
	MigrationComplexity string  `json:"migration_complexity"`

	// Enhanced is true for every column Enhance returns. FallbackUsed
	// distinguishes rule-derived output from model-derived output.
	Enhanced     bool `json:"enhanced"`
	FallbackUsed bool `json:"fallback_used"`

	// Overall assessment record fields; set only on the optional trailing
	// record, which carries no per-column data.
	IsOverallAssessment bool     `json:"is_overall_assessment,omitempty"`
	MainConcerns        []string `json:"main_concerns,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
}

// FinalName returns the name artifacts should use for the column: the
// suggested name when present, otherwise the original.
func (c *EnrichedColumn) FinalName() string {
	if c.SuggestedName != "" {
		return c.SuggestedName
	}
	return c.Name
}

// NameChanged reports whether enrichment proposed a different column name.
func (c *EnrichedColumn) NameChanged() bool {
	return c.SuggestedName != "" && !strings.EqualFold(c.SuggestedName, c.Name)
}
