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

// Package artifacts renders the enriched schema into migration deliverables:
// a dbt model, schema.yml, data quality tests, business documentation,
// platform DDL and lineage docs. Pure templating over the enriched column
// list; consumes field values, never recomputes them.
package artifacts

import (
	"fmt"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/config"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/enricher"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/profile"
)

const timestampLayout = "2006-01-02 15:04:05"

// Generator renders migration artifacts for one project.
type Generator struct {
	project config.ProjectConfig
	now     func() time.Time
}

// NewGenerator creates a generator for the given project context.
func NewGenerator(project config.ProjectConfig) *Generator {
	return &Generator{project: project, now: time.Now}
}

// GenerateAll renders every artifact, keyed by asset name.
func (g *Generator) GenerateAll(schema []enricher.EnrichedColumn) (map[string]string, error) {
	schemaYML, err := g.SchemaYML(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to render schema.yml: %w", err)
	}

	return map[string]string{
		"dbt_model":             g.DbtModel(schema),
		"schema_yml":            schemaYML,
		"quality_tests":         g.QualityTests(schema),
		"documentation":         g.Documentation(schema),
		"migration_script":      g.MigrationScript(schema),
		"lineage_documentation": g.LineageDocs(schema),
	}, nil
}

// columnsOf drops the optional trailing overall assessment record.
func columnsOf(schema []enricher.EnrichedColumn) []enricher.EnrichedColumn {
	out := make([]enricher.EnrichedColumn, 0, len(schema))
	for _, col := range schema {
		if col.IsOverallAssessment {
			continue
		}
		out = append(out, col)
	}
	return out
}

// DbtModel renders the dbt SQL model, applying rename and transformation
// logic per column plus not-null filters for incomplete critical fields.
func (g *Generator) DbtModel(schema []enricher.EnrichedColumn) string {
	tableName := strings.ToLower(g.project.Name)
	columns := columnsOf(schema)

	var b strings.Builder
	fmt.Fprintf(&b, `/*
 * dbt Model: %s
 * Generated: %s
 * Source: %s
 * Target: %s
 * Industry: %s
 */

{{ config(
    materialized='table',
    tags=['%s', 'migration', 'enhanced'],
    description='Enhanced %s with business-friendly column names and transformations'
) }}

WITH source_data AS (
    SELECT *
    FROM {{ source('raw_data', 'raw_%s') }}
),

enhanced_data AS (
    SELECT
`, tableName, g.now().Format(timestampLayout), g.project.SourceSystem,
		g.project.TargetPlatform, g.project.Industry,
		strings.ToLower(g.project.Industry), tableName, tableName)

	lines := make([]string, 0, len(columns))
	for _, col := range columns {
		line := "        "
		switch {
		case len(col.TransformationSuggestions) > 0:
			line += fmt.Sprintf("%s AS %s", transformationSQL(col.Name, col.TransformationSuggestions, col.InferredType), col.FinalName())
		case col.NameChanged():
			line += fmt.Sprintf("%s AS %s", col.Name, col.SuggestedName)
		default:
			line += col.Name
		}
		if col.BusinessDescription != "" {
			line += fmt.Sprintf("  -- %s", truncate(col.BusinessDescription, 50))
		}
		lines = append(lines, line)
	}
	b.WriteString(strings.Join(lines, ",\n"))

	b.WriteString(`
    FROM source_data
    WHERE 1=1
        -- Data quality filters
`)
	for _, col := range columns {
		if col.CompletenessPct < 95 && strings.HasPrefix(col.BusinessCriticality, "High") {
			fmt.Fprintf(&b, "        AND %s IS NOT NULL  -- Critical field validation\n", col.Name)
		}
	}

	b.WriteString(`
),

final AS (
    SELECT *,
        CURRENT_TIMESTAMP() AS dbt_created_at,
        'dbt_migration' AS data_source_system
    FROM enhanced_data
)

SELECT * FROM final`)

	return b.String()
}

// QualityTests renders SQL checks for completeness, business rules and PII
// auditing, grouped into commented sections.
func (g *Generator) QualityTests(schema []enricher.EnrichedColumn) string {
	tableName := strings.ToLower(g.project.Name)
	columns := columnsOf(schema)

	var b strings.Builder
	fmt.Fprintf(&b, `/*
 * Data Quality Tests for %s
 * Generated: %s
 * Industry: %s
 */

-- ========================================
-- COMPLETENESS TESTS
-- ========================================

`, tableName, g.now().Format(timestampLayout), g.project.Industry)

	var critical []enricher.EnrichedColumn
	for _, col := range columns {
		if strings.HasPrefix(col.BusinessCriticality, "High") {
			critical = append(critical, col)
		}
	}
	if len(critical) > 0 {
		b.WriteString("-- Critical columns completeness check\n")
		b.WriteString("SELECT 'Critical Columns Completeness' AS test_name,\n")
		b.WriteString("       COUNT(*) AS total_records")
		for _, col := range critical {
			name := col.FinalName()
			fmt.Fprintf(&b, ",\n       SUM(CASE WHEN %s IS NULL THEN 1 ELSE 0 END) AS %s_nulls", name, name)
			fmt.Fprintf(&b, ",\n       ROUND(100.0 * SUM(CASE WHEN %s IS NOT NULL THEN 1 ELSE 0 END) / COUNT(*), 2) AS %s_completeness_pct", name, name)
		}
		fmt.Fprintf(&b, "\nFROM {{ ref('%s') }};\n\n", tableName)
	}

	b.WriteString(`-- ========================================
-- BUSINESS RULE TESTS
-- ========================================

`)
	for _, col := range columns {
		if len(col.SuggestedBusinessRules) == 0 {
			continue
		}
		name := col.FinalName()
		fmt.Fprintf(&b, "-- %s business rules\n", name)
		for _, rule := range col.SuggestedBusinessRules {
			lower := strings.ToLower(rule)
			switch {
			case strings.Contains(lower, "non-negative") && col.InferredType.IsNumeric():
				fmt.Fprintf(&b, `SELECT '%s_non_negative_check' AS test_name,
       COUNT(*) AS total_records,
       SUM(CASE WHEN %s < 0 THEN 1 ELSE 0 END) AS negative_values,
       CASE WHEN SUM(CASE WHEN %s < 0 THEN 1 ELSE 0 END) = 0
            THEN 'PASS' ELSE 'FAIL' END AS test_result
FROM {{ ref('%s') }}
WHERE %s IS NOT NULL;

`, name, name, name, tableName, name)
			case strings.Contains(lower, "email"):
				fmt.Fprintf(&b, `SELECT '%s_email_format_check' AS test_name,
       COUNT(*) AS total_records,
       SUM(CASE WHEN NOT regexp_like(%s, '^[^@]+@[^@]+\.[^@]+$') THEN 1 ELSE 0 END) AS invalid_emails,
       CASE WHEN SUM(CASE WHEN NOT regexp_like(%s, '^[^@]+@[^@]+\.[^@]+$') THEN 1 ELSE 0 END) = 0
            THEN 'PASS' ELSE 'FAIL' END AS test_result
FROM {{ ref('%s') }}
WHERE %s IS NOT NULL;

`, name, name, name, tableName, name)
			}
		}
	}

	b.WriteString(`-- ========================================
-- COMPLIANCE TESTS
-- ========================================

`)
	var pii []enricher.EnrichedColumn
	for _, col := range columns {
		if col.PotentialPII {
			pii = append(pii, col)
		}
	}
	if len(pii) > 0 {
		b.WriteString("-- PII Data Audit\n")
		b.WriteString("SELECT 'PII_Data_Audit' AS test_name,\n")
		b.WriteString("       COUNT(*) AS total_records")
		for _, col := range pii {
			name := col.FinalName()
			fmt.Fprintf(&b, ",\n       COUNT(DISTINCT %s) AS %s_unique_values", name, name)
		}
		fmt.Fprintf(&b, "\nFROM {{ ref('%s') }};\n", tableName)
	}

	return b.String()
}

// transformationSQL composes the SQL expression implementing the suggested
// transformations, applied inside-out in suggestion order.
func transformationSQL(columnName string, transformations []string, t profile.Type) string {
	expr := columnName
	for _, transformation := range transformations {
		lower := strings.ToLower(transformation)
		switch {
		case strings.Contains(lower, "uppercase"):
			expr = fmt.Sprintf("UPPER(%s)", expr)
		case strings.Contains(lower, "lowercase"):
			expr = fmt.Sprintf("LOWER(%s)", expr)
		case strings.Contains(lower, "trim"):
			expr = fmt.Sprintf("TRIM(%s)", expr)
		case strings.Contains(lower, "standardize phone"):
			expr = fmt.Sprintf("REGEXP_REPLACE(%s, '[^0-9]', '')", expr)
		case strings.Contains(lower, "format currency"):
			expr = fmt.Sprintf("ROUND(%s, 2)", expr)
		case strings.Contains(lower, "null to zero") && t.IsNumeric():
			expr = fmt.Sprintf("COALESCE(%s, 0)", expr)
		case strings.Contains(lower, "extract date"):
			expr = fmt.Sprintf("DATE(%s)", expr)
		}
	}
	return expr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
