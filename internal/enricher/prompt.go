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

var dimensionInstructions = map[Dimension]string{
	DimensionColumnNames:     "Suggest better, more descriptive column names",
	DimensionDescriptions:    "Provide business-friendly descriptions of what each column represents",
	DimensionQuality:         "Assess data quality and identify potential issues",
	DimensionTransformations: "Suggest common transformations or cleaning steps",
	DimensionIndustry:        "Add industry context, compliance notes, business importance (Low/Medium/High), data quality rules, and potential KPIs",
}

// buildPrompt constructs the chunk prompt for one retry attempt. Each failed
// attempt degrades to a stricter, shorter prompt: less surrounding context
// gives the model fewer opportunities to deviate from the JSON contract.
func buildPrompt(attempt int, chunk []profile.ColumnProfile, opts Options) string {
	switch attempt {
	case 1:
		return fullPrompt(chunk, opts)
	case 2:
		return simplifiedPrompt(chunk)
	default:
		return minimalPrompt(chunk)
	}
}

func fullPrompt(chunk []profile.ColumnProfile, opts Options) string {
	var b strings.Builder
	b.WriteString("You are an expert data engineer analyzing a CSV schema for a data migration. Enhance the schema based on the requested options.\n")
	if opts.Industry != "" {
		fmt.Fprintf(&b, "\nThe dataset belongs to the %s industry.\n", opts.Industry)
	}
	b.WriteString("\nORIGINAL SCHEMA:\n")

	for i, col := range chunk {
		fmt.Fprintf(&b, "\n%d. Column: '%s'\n", i+1, col.Name)
		fmt.Fprintf(&b, "   - Data Type: %s\n", col.InferredType)
		fmt.Fprintf(&b, "   - Completeness: %.1f%%\n", col.CompletenessPct)
		fmt.Fprintf(&b, "   - Unique Values: %d\n", col.UniqueCount)
		fmt.Fprintf(&b, "   - Sample Values: %s\n", strings.Join(firstN(col.SampleValues, 3), ", "))
		if col.Numeric != nil {
			fmt.Fprintf(&b, "   - Range: %g to %g\n", col.Numeric.Min, col.Numeric.Max)
		}
		if col.Strings != nil {
			fmt.Fprintf(&b, "   - Avg Length: %.1f chars\n", col.Strings.AvgLen)
		}
		if col.BusinessContext != "" {
			fmt.Fprintf(&b, "   - Business Context: %s\n", col.BusinessContext)
		}
	}

	b.WriteString("\nENHANCEMENT REQUESTS:\n")
	for _, d := range opts.dimensions() {
		fmt.Fprintf(&b, "- %s\n", dimensionInstructions[d])
	}

	writeContract(&b, len(chunk), opts.dimensions())
	return b.String()
}

func simplifiedPrompt(chunk []profile.ColumnProfile) string {
	var b strings.Builder
	b.WriteString("Enhance these CSV columns with a suggested snake_case name and a one-sentence business description.\n\nCOLUMNS:\n")
	for i, col := range chunk {
		fmt.Fprintf(&b, "%d. %s (%s) examples: %s\n",
			i+1, col.Name, col.InferredType, strings.Join(firstN(col.SampleValues, 2), ", "))
	}
	writeContract(&b, len(chunk), nil)
	return b.String()
}

func minimalPrompt(chunk []profile.ColumnProfile) string {
	var b strings.Builder
	b.WriteString("Rename these columns and describe them.\n\nCOLUMNS (with name hints you may adjust):\n")
	for i, col := range chunk {
		fmt.Fprintf(&b, "%d. %s -> hint: %s\n", i+1, col.Name, SuggestName(col.Name))
	}
	writeContract(&b, len(chunk), nil)
	return b.String()
}

// writeContract appends the JSON output contract shared by every tier,
// including the exact-count requirement the acceptance check enforces.
func writeContract(b *strings.Builder, count int, dims []Dimension) {
	fmt.Fprintf(b, `
RESPONSE CONTRACT:
- Return exactly %d objects in "enhanced_columns", in the same order as the columns above - no more, no less.
- Keep suggested names concise but descriptive (snake_case format).
- Business descriptions should be 1-2 sentences maximum.
- Confidence score must be between 0.0 and 1.0.

Here is the expected JSON format exactly:
{
  "enhanced_columns": [
    {
      "original_name": "original_column_name",
      "suggested_name": "better_column_name",
      "business_description": "Clear business description",
      "data_quality_notes": "Quality assessment and concerns",
      "transformation_suggestions": ["suggestion1", "suggestion2"],
      "confidence_score": 0.85`, count)

	if hasDimension(dims, DimensionIndustry) {
		b.WriteString(`,
      "industry_context": "Industry-specific meaning",
      "compliance_notes": "Applicable regulations",
      "business_importance": "High",
      "data_quality_rules": ["rule1"],
      "potential_kpis": ["kpi1"]`)
	}

	b.WriteString(`
    }
  ]
}
`)
}

// overallAssessmentPrompt asks for a single dataset-wide quality summary.
func overallAssessmentPrompt(profiles []profile.ColumnProfile) string {
	var b strings.Builder
	b.WriteString("Assess the overall data quality of this CSV schema for migration readiness.\n\nCOLUMNS:\n")
	for _, col := range profiles {
		fmt.Fprintf(&b, "- %s (%s, %.1f%% complete, %d unique)\n",
			col.Name, col.InferredType, col.CompletenessPct, col.UniqueCount)
	}
	b.WriteString(`
Respond with this JSON format exactly:
{
  "overall_assessment": {
    "data_quality_score": 0.75,
    "main_concerns": ["concern1", "concern2"],
    "recommendations": ["recommendation1", "recommendation2"]
  }
}
`)
	return b.String()
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
