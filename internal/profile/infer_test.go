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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/dataset"
)

func TestInferTypePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected Type
	}{
		{
			name:     "numeric strings from boolean vocabulary stay boolean",
			values:   []string{"1", "0", "1", "1"},
			expected: TypeBoolean,
		},
		{
			name:     "yes no column",
			values:   []string{"yes", "no", "YES", "No"},
			expected: TypeBoolean,
		},
		{
			name:     "three distinct vocabulary values is not boolean",
			values:   []string{"yes", "no", "on"},
			expected: TypeString,
		},
		{
			name:     "integers",
			values:   []string{"10", "-3", "42"},
			expected: TypeInteger,
		},
		{
			name:     "one decimal point makes the column float",
			values:   []string{"10", "3.5", "42"},
			expected: TypeFloat,
		},
		{
			name:     "single non-numeric value disqualifies numeric",
			values:   []string{"10", "3.5", "n/a2"},
			expected: TypeString,
		},
		{
			name:     "iso dates",
			values:   []string{"2024-01-15", "2024-02-20", "2024-03-01"},
			expected: TypeDate,
		},
		{
			name:     "timestamps classify as datetime",
			values:   []string{"2024-01-15 10:30:00", "2024-02-20 08:00:00"},
			expected: TypeDatetime,
		},
		{
			name:     "70 percent date match is enough",
			values:   []string{"2024-01-15", "2024-02-20", "2024-03-01", "pending", "2024-04-10"},
			expected: TypeDate,
		},
		{
			name:     "below date threshold falls back to string",
			values:   []string{"2024-01-15", "pending", "unknown"},
			expected: TypeString,
		},
		{
			name:     "free text",
			values:   []string{"alpha", "beta"},
			expected: TypeString,
		},
		{
			name:     "all null values default to string",
			values:   []string{"", "NA", "null"},
			expected: TypeString,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := dataset.Column{Name: "col", Values: tt.values}
			p := profileColumn(col)
			assert.Equal(t, tt.expected, p.InferredType)
		})
	}
}

func TestInferLegacyIDColumns(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "CUST_ID_NBR", Values: []string{"C1", "C2"}},
			{Name: "CUST_EMAIL_ADDR", Values: []string{"a@x.com", "b@x.com"}},
		},
		RowCount: 2,
	}

	profiles := Infer(ds)
	require.Len(t, profiles, 2)

	for _, p := range profiles {
		assert.Equal(t, TypeString, p.InferredType)
		assert.Equal(t, 100.0, p.CompletenessPct)
		assert.Equal(t, 2, p.TotalCount)
		assert.Equal(t, 0, p.NullCount)
		assert.Equal(t, 2, p.UniqueCount)
	}
	assert.Equal(t, "CUST_ID_NBR", profiles[0].Name)
	assert.Equal(t, "CUST_EMAIL_ADDR", profiles[1].Name)
}

func TestBooleanStats(t *testing.T) {
	p := profileColumn(dataset.Column{Name: "active_flg", Values: []string{"1", "0", "1", "1"}})

	require.Equal(t, TypeBoolean, p.InferredType)
	require.NotNil(t, p.Booleans)
	assert.Equal(t, 3, p.Booleans.TrueCount)
	assert.Equal(t, 1, p.Booleans.FalseCount)
	assert.Equal(t, []string{"1", "0"}, p.Booleans.DistinctValues)
}

func TestNumericStats(t *testing.T) {
	p := profileColumn(dataset.Column{Name: "amount", Values: []string{"1.5", "2.5", "3.5", ""}})

	require.Equal(t, TypeFloat, p.InferredType)
	require.NotNil(t, p.Numeric)
	assert.Equal(t, 1.5, p.Numeric.Min)
	assert.Equal(t, 3.5, p.Numeric.Max)
	assert.Equal(t, 2.5, p.Numeric.Mean)
	assert.Equal(t, 2.5, p.Numeric.Median)
	assert.Equal(t, 1, p.NullCount)
	assert.Equal(t, 75.0, p.CompletenessPct)
}

func TestStringStatsModeIsDeterministic(t *testing.T) {
	// "a" and "b" both appear twice; the first-seen value wins.
	p := profileColumn(dataset.Column{Name: "code", Values: []string{"a", "b", "b", "a"}})

	require.NotNil(t, p.Strings)
	assert.Equal(t, "a", p.Strings.Mode)
	assert.Equal(t, 1, p.Strings.MinLen)
	assert.Equal(t, 1, p.Strings.MaxLen)
	assert.Equal(t, 1.0, p.Strings.AvgLen)
}

func TestDateStatsRange(t *testing.T) {
	p := profileColumn(dataset.Column{
		Name:   "order_dt",
		Values: []string{"2024-01-01", "2024-01-31", "2024-01-15"},
	})

	require.Equal(t, TypeDate, p.InferredType)
	require.NotNil(t, p.Dates)
	assert.Equal(t, 30, p.Dates.RangeDays)
	assert.Equal(t, "2024-01-01", p.Dates.Min.Format("2006-01-02"))
	assert.Equal(t, "2024-01-31", p.Dates.Max.Format("2006-01-02"))
}

func TestSampleValuesDistinctFirstSeen(t *testing.T) {
	p := profileColumn(dataset.Column{
		Name:   "status",
		Values: []string{"new", "new", "open", "closed", "open", "hold", "done", "late", "new"},
	})

	assert.Equal(t, []string{"new", "open", "closed", "hold", "done"}, p.SampleValues)
}

func TestEmptyColumnProfile(t *testing.T) {
	p := profileColumn(dataset.Column{Name: "notes", Values: []string{"", "N/A", "none"}})

	assert.Equal(t, TypeString, p.InferredType)
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 3, p.NullCount)
	assert.Equal(t, 0, p.UniqueCount)
	assert.Equal(t, 0.0, p.CompletenessPct)
	assert.Empty(t, p.SampleValues)
	assert.Nil(t, p.Strings)
}

func TestZeroRowColumn(t *testing.T) {
	p := profileColumn(dataset.Column{Name: "empty"})

	assert.Equal(t, 0, p.TotalCount)
	assert.Equal(t, 0.0, p.CompletenessPct)
	assert.Equal(t, 0.0, p.UniquenessRatio())
}

func TestInferIsIdempotent(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "id", Values: []string{"1001", "1002", "1003"}},
			{Name: "joined", Values: []string{"2023-05-01", "2023-06-12", ""}},
		},
		RowCount: 3,
	}

	first := Infer(ds)
	second := Infer(ds)
	assert.Equal(t, first, second)
}
