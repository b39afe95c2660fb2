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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/config"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/enricher"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/profile"
)

func testGenerator(platform string) *Generator {
	g := NewGenerator(config.ProjectConfig{
		Name:           "bookings",
		SourceSystem:   "Legacy PMS",
		TargetPlatform: platform,
		Industry:       "Online Travel Agency (OTA)",
	})
	g.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return g
}

func testSchema() []enricher.EnrichedColumn {
	return []enricher.EnrichedColumn{
		{
			ColumnProfile: profile.ColumnProfile{
				Name:                 "BKNG_ID_NBR",
				InferredType:         profile.TypeString,
				TotalCount:           100,
				UniqueCount:          100,
				CompletenessPct:      100,
				PotentialBusinessKey: true,
				BusinessCriticality:  "High - Primary business identifier",
			},
			SuggestedName:       "booking_id",
			BusinessDescription: "Unique identifier for a booking",
			DataQualityScore:    1.0,
			MigrationComplexity: enricher.ComplexityMedium,
			Enhanced:            true,
		},
		{
			ColumnProfile: profile.ColumnProfile{
				Name:                   "GUEST_EMAIL_ADDR",
				InferredType:           profile.TypeString,
				TotalCount:             100,
				NullCount:              30,
				UniqueCount:            70,
				CompletenessPct:        70,
				PotentialPII:           true,
				BusinessCriticality:    "High - Personal data with compliance requirements",
				ComplianceImplications: []string{"GDPR Article 6 - Lawful basis for processing personal data"},
				SuggestedBusinessRules: []string{"Validate email format using regex pattern"},
			},
			SuggestedName:             "guest_email",
			BusinessDescription:       "Guest contact email address",
			TransformationSuggestions: []string{"lowercase normalization", "trim whitespace"},
			DataQualityRules:          []string{"email format validation"},
			DataQualityScore:          0.54,
			MigrationComplexity:       enricher.ComplexityHigh,
			Enhanced:                  true,
		},
		{
			IsOverallAssessment: true,
			DataQualityScore:    0.8,
			Enhanced:            true,
		},
	}
}

func TestDbtModel(t *testing.T) {
	sql := testGenerator("Snowflake").DbtModel(testSchema())

	assert.Contains(t, sql, "dbt Model: bookings")
	assert.Contains(t, sql, "{{ source('raw_data', 'raw_bookings') }}")
	assert.Contains(t, sql, "BKNG_ID_NBR AS booking_id")
	// Transformations wrap inside-out in suggestion order.
	assert.Contains(t, sql, "TRIM(LOWER(GUEST_EMAIL_ADDR)) AS guest_email")
	// Incomplete critical field gets a not-null filter.
	assert.Contains(t, sql, "AND GUEST_EMAIL_ADDR IS NOT NULL")
	// The assessment record must not leak into the model.
	assert.NotContains(t, sql, "is_overall_assessment")
}

func TestSchemaYML(t *testing.T) {
	out, err := testGenerator("Snowflake").SchemaYML(testSchema())
	require.NoError(t, err)

	var parsed schemaFile
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Models, 1)

	model := parsed.Models[0]
	assert.Equal(t, "bookings", model.Name)
	require.Len(t, model.Columns, 2)

	booking := model.Columns[0]
	assert.Equal(t, "booking_id", booking.Name)
	assert.Equal(t, "BKNG_ID_NBR", booking.Meta.OriginalName)
	assert.Contains(t, booking.Tests, "not_null")
	assert.Contains(t, booking.Tests, "unique")

	email := model.Columns[1]
	assert.Equal(t, []string{"pii", "sensitive"}, email.Tags)
	assert.NotContains(t, email.Tests, "not_null")
}

func TestQualityTests(t *testing.T) {
	sql := testGenerator("Snowflake").QualityTests(testSchema())

	assert.Contains(t, sql, "Critical Columns Completeness")
	assert.Contains(t, sql, "guest_email_email_format_check")
	assert.Contains(t, sql, "PII_Data_Audit")
	assert.Contains(t, sql, "{{ ref('bookings') }}")
}

func TestMigrationScriptDialects(t *testing.T) {
	schema := testSchema()

	snowflake := testGenerator("Snowflake").MigrationScript(schema)
	assert.Contains(t, snowflake, "CREATE OR REPLACE TABLE BOOKINGS")
	assert.Contains(t, snowflake, "VARCHAR(255)")
	assert.Contains(t, snowflake, "NOT NULL")
	assert.Contains(t, snowflake, "CREATE INDEX IF NOT EXISTS IDX_BOOKINGS_BOOKING_ID")

	bigquery := testGenerator("BigQuery").MigrationScript(schema)
	assert.Contains(t, bigquery, "CREATE OR REPLACE TABLE `project.dataset.bookings`")
	assert.Contains(t, bigquery, "booking_id STRING")

	generic := testGenerator("PostgreSQL").MigrationScript(schema)
	assert.Contains(t, generic, "CREATE TABLE bookings")
	assert.Contains(t, generic, "Target Platform: PostgreSQL")
}

func TestDocumentationAndLineage(t *testing.T) {
	g := testGenerator("Snowflake")
	schema := testSchema()

	doc := g.Documentation(schema)
	assert.Contains(t, doc, "# bookings - Business Data Dictionary")
	assert.Contains(t, doc, "**Total Columns:** 2")
	assert.Contains(t, doc, "**PII Fields:** 1")
	assert.Contains(t, doc, "| `booking_id` |")
	assert.Contains(t, doc, "GDPR Article 6")

	lineage := g.LineageDocs(schema)
	assert.Contains(t, lineage, "| `BKNG_ID_NBR` | `booking_id` | Direct mapping |")
	assert.Contains(t, lineage, "| `GUEST_EMAIL_ADDR` | `guest_email` | lowercase normalization |")
}

func TestGenerateAllProducesEveryAsset(t *testing.T) {
	assets, err := testGenerator("Snowflake").GenerateAll(testSchema())
	require.NoError(t, err)

	for _, key := range []string{"dbt_model", "schema_yml", "quality_tests", "documentation", "migration_script", "lineage_documentation"} {
		assert.NotEmpty(t, assets[key], key)
	}
}

func TestProjectSummary(t *testing.T) {
	summary := testGenerator("Snowflake").ProjectSummary(testSchema())

	assert.Equal(t, 2, summary.SchemaMetrics.TotalColumns)
	assert.Equal(t, 2, summary.SchemaMetrics.EnhancedColumns)
	assert.Equal(t, 1, summary.SchemaMetrics.PIIColumns)
	assert.Equal(t, 1, summary.SchemaMetrics.BusinessKeys)
	assert.Equal(t, 1, summary.SchemaMetrics.HighQualityColumns)
	assert.Equal(t, 2, summary.BusinessImpact.HighCriticalityFields)
	assert.Equal(t, 1, summary.BusinessImpact.ComplianceRequirements)

	r := summary.Readiness
	assert.Equal(t, 0.77, r.DataQualityScore)
	assert.Equal(t, 0.5, r.ComplexityScore)
	assert.Equal(t, 1.0, r.DocumentationScore)
	assert.Equal(t, "Medium", r.ReadinessLevel)
	assert.NotEmpty(t, r.Recommendations)
}

func TestEmptySchemaSummary(t *testing.T) {
	summary := testGenerator("Snowflake").ProjectSummary(nil)
	assert.Equal(t, 0, summary.SchemaMetrics.TotalColumns)
	assert.Equal(t, "Low", summary.Readiness.ReadinessLevel)
}

func TestTransformationSQLUnknownSuggestionIsPassThrough(t *testing.T) {
	expr := transformationSQL("col", []string{"document in wiki"}, profile.TypeString)
	assert.Equal(t, "col", expr)

	expr = transformationSQL("amt", []string{"null to zero"}, profile.TypeFloat)
	assert.Equal(t, "COALESCE(amt, 0)", expr)
}

func TestDDLEscapesQuotes(t *testing.T) {
	schema := []enricher.EnrichedColumn{{
		ColumnProfile:       profile.ColumnProfile{Name: "note", InferredType: profile.TypeString},
		SuggestedName:       "note",
		BusinessDescription: "Guest's note",
	}}
	ddl := testGenerator("Snowflake").MigrationScript(schema)
	assert.Contains(t, ddl, "Guest''s note")
	assert.False(t, strings.Contains(ddl, "COMMENT 'Guest's note'"))
}
