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

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/enricher"
	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/profile"
)

// MigrationScript renders DDL for the configured target platform. Platforms
// without a dedicated dialect get generic ANSI DDL.
func (g *Generator) MigrationScript(schema []enricher.EnrichedColumn) string {
	switch g.project.TargetPlatform {
	case "Snowflake":
		return g.snowflakeDDL(schema)
	case "BigQuery":
		return g.bigqueryDDL(schema)
	default:
		return g.genericDDL(schema)
	}
}

func (g *Generator) snowflakeDDL(schema []enricher.EnrichedColumn) string {
	tableName := strings.ToUpper(g.project.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "-- Snowflake DDL for %s\n-- Generated: %s\n\nCREATE OR REPLACE TABLE %s (\n",
		tableName, g.now().Format(timestampLayout), tableName)

	columns := columnsOf(schema)
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		name := strings.ToUpper(col.FinalName())
		nullable := "NULL"
		if strings.HasPrefix(col.BusinessCriticality, "High") {
			nullable = "NOT NULL"
		}
		def := fmt.Sprintf("    %-30s %-20s %s", name, snowflakeType(col.InferredType), nullable)
		if col.BusinessDescription != "" {
			def += fmt.Sprintf(" COMMENT '%s'", escapeSQL(truncate(col.BusinessDescription, 100)))
		}
		defs = append(defs, def)
	}
	b.WriteString(strings.Join(defs, ",\n"))

	fmt.Fprintf(&b, "\n)\nCOMMENT = 'Enhanced %s data migrated from %s'\n;\n\n-- Indexes for business keys\n",
		g.project.Industry, g.project.SourceSystem)

	for _, col := range columns {
		if col.PotentialBusinessKey {
			name := strings.ToUpper(col.FinalName())
			fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS IDX_%s_%s ON %s(%s);\n", tableName, name, tableName, name)
		}
	}

	return b.String()
}

func (g *Generator) bigqueryDDL(schema []enricher.EnrichedColumn) string {
	tableName := strings.ToLower(g.project.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "-- BigQuery DDL for %s\n-- Generated: %s\n\nCREATE OR REPLACE TABLE `project.dataset.%s` (\n",
		tableName, g.now().Format(timestampLayout), tableName)

	columns := columnsOf(schema)
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		name := strings.ToLower(col.FinalName())
		defs = append(defs, fmt.Sprintf("    %s %s OPTIONS(description='%s')",
			name, bigqueryType(col.InferredType), escapeSQL(truncate(col.BusinessDescription, 1024))))
	}
	b.WriteString(strings.Join(defs, ",\n"))

	fmt.Fprintf(&b, `
)
OPTIONS(
    description='Enhanced %s data migrated from %s',
    labels=[('industry', '%s'), ('source', 'migration')]
)
;`, g.project.Industry, g.project.SourceSystem, strings.ToLower(g.project.Industry))

	return b.String()
}

func (g *Generator) genericDDL(schema []enricher.EnrichedColumn) string {
	tableName := g.project.Name

	var b strings.Builder
	fmt.Fprintf(&b, "-- Generic DDL for %s\n-- Generated: %s\n-- Target Platform: %s\n\nCREATE TABLE %s (\n",
		tableName, g.now().Format(timestampLayout), g.project.TargetPlatform, tableName)

	columns := columnsOf(schema)
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		defs = append(defs, fmt.Sprintf("    %s %s", col.FinalName(), genericType(col.InferredType)))
	}
	b.WriteString(strings.Join(defs, ",\n"))
	b.WriteString("\n);")

	return b.String()
}

func snowflakeType(t profile.Type) string {
	switch t {
	case profile.TypeInteger:
		return "NUMBER(38,0)"
	case profile.TypeFloat:
		return "NUMBER(38,2)"
	case profile.TypeBoolean:
		return "BOOLEAN"
	case profile.TypeDate:
		return "DATE"
	case profile.TypeDatetime:
		return "TIMESTAMP_NTZ"
	default:
		return "VARCHAR(255)"
	}
}

func bigqueryType(t profile.Type) string {
	switch t {
	case profile.TypeInteger:
		return "INT64"
	case profile.TypeFloat:
		return "FLOAT64"
	case profile.TypeBoolean:
		return "BOOL"
	case profile.TypeDate:
		return "DATE"
	case profile.TypeDatetime:
		return "DATETIME"
	default:
		return "STRING"
	}
}

func genericType(t profile.Type) string {
	switch t {
	case profile.TypeInteger:
		return "INTEGER"
	case profile.TypeFloat:
		return "DECIMAL(10,2)"
	case profile.TypeBoolean:
		return "BOOLEAN"
	case profile.TypeDate:
		return "DATE"
	case profile.TypeDatetime:
		return "TIMESTAMP"
	default:
		return "VARCHAR(255)"
	}
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
