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
	"sort"
	"strings"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/enricher"
)

// Documentation renders the business data dictionary in markdown.
func (g *Generator) Documentation(schema []enricher.EnrichedColumn) string {
	columns := columnsOf(schema)
	tableName := g.project.Name

	var b strings.Builder
	fmt.Fprintf(&b, `# %s - Business Data Dictionary

**Generated:** %s
**Industry:** %s
**Source System:** %s
**Target Platform:** %s

## Overview

This document provides business-friendly documentation for the %s dataset as part of the data migration from %s to %s.

## Data Quality Summary

`, tableName, g.now().Format(timestampLayout), g.project.Industry,
		g.project.SourceSystem, g.project.TargetPlatform,
		tableName, g.project.SourceSystem, g.project.TargetPlatform)

	highQuality, piiCount, criticalCount := 0, 0, 0
	for _, col := range columns {
		if col.DataQualityScore > 0.8 {
			highQuality++
		}
		if col.PotentialPII {
			piiCount++
		}
		if strings.HasPrefix(col.BusinessCriticality, "High") {
			criticalCount++
		}
	}
	qualityPct := 0.0
	if len(columns) > 0 {
		qualityPct = 100 * float64(highQuality) / float64(len(columns))
	}

	fmt.Fprintf(&b, `- **Total Columns:** %d
- **High Quality Columns:** %d (%.1f%%)
- **PII Fields:** %d
- **Business Critical Fields:** %d

## Column Reference

| Column Name | Business Description | Data Type | Business Criticality | Compliance Notes |
|-------------|---------------------|-----------|-------------------|------------------|
`, len(columns), highQuality, qualityPct, piiCount, criticalCount)

	for _, col := range columns {
		description := col.BusinessDescription
		if description == "" {
			description = "No description"
		}
		criticality := col.BusinessCriticality
		if criticality == "" {
			criticality = "Medium"
		}
		compliance := strings.Join(firstNStrings(col.ComplianceImplications, 2), ", ")
		if len(col.ComplianceImplications) > 2 {
			compliance += "..."
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
			col.FinalName(), truncate(description, 50), col.InferredType, criticality, compliance)
	}

	b.WriteString("\n## Migration Notes\n\n### Transformation Summary\n")

	var transformed []enricher.EnrichedColumn
	for _, col := range columns {
		if len(col.TransformationSuggestions) > 0 {
			transformed = append(transformed, col)
		}
	}
	if len(transformed) > 0 {
		fmt.Fprintf(&b, "\n%d columns require transformation during migration:\n\n", len(transformed))
		for _, col := range transformed {
			fmt.Fprintf(&b, "- **%s**: %s\n", col.FinalName(),
				strings.Join(firstNStrings(col.TransformationSuggestions, 2), ", "))
		}
	} else {
		b.WriteString("\nNo complex transformations required for this migration.\n")
	}

	b.WriteString("\n### Compliance Requirements\n\nThis dataset is subject to the following compliance requirements:\n\n")
	seen := make(map[string]struct{})
	var requirements []string
	for _, col := range columns {
		for _, req := range col.ComplianceImplications {
			if _, ok := seen[req]; !ok {
				seen[req] = struct{}{}
				requirements = append(requirements, req)
			}
		}
	}
	sort.Strings(requirements)
	for _, req := range requirements {
		fmt.Fprintf(&b, "- %s\n", req)
	}

	return b.String()
}

// LineageDocs renders source-to-target field mappings in markdown.
func (g *Generator) LineageDocs(schema []enricher.EnrichedColumn) string {
	columns := columnsOf(schema)

	var b strings.Builder
	fmt.Fprintf(&b, `# Data Lineage Documentation

## Source to Target Mapping

**Migration Project:** %s
**Source:** %s
**Target:** %s
**Generated:** %s

## Field Mappings

| Source Field | Target Field | Transformation | Business Rationale |
|--------------|--------------|----------------|-------------------|
`, g.project.Name, g.project.SourceSystem, g.project.TargetPlatform, g.now().Format(timestampLayout))

	for _, col := range columns {
		transformation := "Direct mapping"
		if len(col.TransformationSuggestions) > 0 {
			transformation = col.TransformationSuggestions[0]
		}
		rationale := col.BusinessDescription
		if rationale == "" {
			rationale = "Standard field"
		}
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s |\n",
			col.Name, col.FinalName(), transformation, truncate(rationale, 50))
	}

	b.WriteString("\n## Transformation Rules\n\n### Applied Transformations\n")
	for _, col := range columns {
		if len(col.TransformationSuggestions) == 0 {
			continue
		}
		fmt.Fprintf(&b, `
#### %s
- **Source:** %s
- **Transformations:** %s
- **Business Justification:** %s
`, col.FinalName(), col.Name,
			strings.Join(col.TransformationSuggestions, ", "),
			orDefault(col.BusinessDescription, "N/A"))
	}

	return b.String()
}

func firstNStrings(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
