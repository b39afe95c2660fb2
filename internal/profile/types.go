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
package profile

import "time"

// Type is the inferred data type of a column.
type Type string

const (
	TypeInteger  Type = "integer"
	TypeFloat    Type = "float"
	TypeString   Type = "string"
	TypeBoolean  Type = "boolean"
	TypeDate     Type = "date"
	TypeDatetime Type = "datetime"
)

// IsNumeric reports whether the type is integer or float.
func (t Type) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// IsTemporal reports whether the type is date or datetime.
func (t Type) IsTemporal() bool {
	return t == TypeDate || t == TypeDatetime
}

// NumericStats holds statistics over the coerced numeric subset of a column.
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
}

// StringStats holds length and mode statistics over string values.
type StringStats struct {
	MinLen int     `json:"min_len"`
	MaxLen int     `json:"max_len"`
	AvgLen float64 `json:"avg_len"`
	Mode   string  `json:"mode"`
}

// DateStats holds the parsed date range of a temporal column. Values that
// fail the permissive parse pass are excluded from these statistics.
type DateStats struct {
	Min       time.Time `json:"min"`
	Max       time.Time `json:"max"`
	RangeDays int       `json:"range_in_days"`
}

// BooleanStats holds truthy/falsy counts for boolean columns.
type BooleanStats struct {
	TrueCount      int      `json:"true_count"`
	FalseCount     int      `json:"false_count"`
	DistinctValues []string `json:"distinct_values"`
}

// ColumnProfile is the statistical description of one dataset column. It is
// created once per ingestion and only extended additively by the bizcontext
// annotator and the enricher merge step; field names are a stable contract
// consumed by artifact generation.
type ColumnProfile struct {
	Name            string   `json:"name"`
	InferredType    Type     `json:"inferred_type"`
	TotalCount      int      `json:"total_count"`
	NullCount       int      `json:"null_count"`
	UniqueCount     int      `json:"unique_count"`
	CompletenessPct float64  `json:"completeness_pct"`
	SampleValues    []string `json:"sample_values"`

	Numeric  *NumericStats `json:"numeric,omitempty"`
	Strings  *StringStats  `json:"string,omitempty"`
	Dates    *DateStats    `json:"date,omitempty"`
	Booleans *BooleanStats `json:"boolean,omitempty"`

	// Fields below are populated by the bizcontext annotator.
	TableName              string   `json:"table_name,omitempty"`
	SourceSystem           string   `json:"source_system,omitempty"`
	BusinessContext        string   `json:"business_context,omitempty"`
	ComplianceImplications []string `json:"compliance_implications,omitempty"`
	BusinessCriticality    string   `json:"business_criticality,omitempty"`
	SuggestedBusinessRules []string `json:"suggested_business_rules,omitempty"`
	PotentialPII           bool     `json:"potential_pii,omitempty"`
	PotentialBusinessKey   bool     `json:"potential_business_key,omitempty"`
	DataPattern            string   `json:"data_pattern,omitempty"`
}

// NonNullCount returns the number of non-null values in the column.
func (p *ColumnProfile) NonNullCount() int {
	return p.TotalCount - p.NullCount
}

// UniquenessRatio is the fraction of non-null values that are distinct.
// unique_count is computed over the non-null subset, so the denominator here
// is the non-null count as well; 0 when the column holds no non-null values.
func (p *ColumnProfile) UniquenessRatio() float64 {
	nonNull := p.NonNullCount()
	if nonNull <= 0 {
		return 0
	}
	return float64(p.UniqueCount) / float64(nonNull)
}
