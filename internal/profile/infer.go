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
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/dataset"
)

const maxSampleValues = 5

// dateMatchThreshold is the fraction of non-null values that must start with a
// recognized date pattern for a column to be classified as temporal.
const dateMatchThreshold = 0.7

var booleanVocabulary = map[string]bool{
	"true": true, "false": false,
	"yes": true, "no": false,
	"y": true, "n": false,
	"1": true, "0": false,
	"on": true, "off": false,
	"enabled": true, "disabled": false,
}

var nullTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
	"none": {},
}

// Date patterns are matched against the value prefix, so datetime strings such
// as "2024-01-15 10:30:00" count toward the date threshold too.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`),
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}`),
}

var numericPattern = regexp.MustCompile(`^-?\d+\.?\d*$`)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
}

// IsNull reports whether a raw cell value represents a missing value.
func IsNull(value string) bool {
	_, ok := nullTokens[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// Infer profiles every column of the dataset in column order. It never fails:
// a column whose values fit no stronger type is profiled as a string column.
func Infer(ds *dataset.Dataset) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		profiles = append(profiles, profileColumn(col))
	}
	return profiles
}

func profileColumn(col dataset.Column) ColumnProfile {
	nonNull := make([]string, 0, len(col.Values))
	for _, v := range col.Values {
		if !IsNull(v) {
			nonNull = append(nonNull, strings.TrimSpace(v))
		}
	}

	p := ColumnProfile{
		Name:         col.Name,
		InferredType: inferType(nonNull),
		TotalCount:   len(col.Values),
		NullCount:    len(col.Values) - len(nonNull),
		UniqueCount:  countDistinct(nonNull),
		SampleValues: sampleValues(nonNull),
	}
	if p.TotalCount > 0 {
		p.CompletenessPct = round2(float64(len(nonNull)) / float64(p.TotalCount) * 100)
	}

	switch {
	case p.InferredType.IsNumeric():
		p.Numeric = numericStats(nonNull)
	case p.InferredType.IsTemporal():
		p.Dates = dateStats(nonNull)
	case p.InferredType == TypeBoolean:
		p.Booleans = booleanStats(nonNull)
	default:
		p.Strings = stringStats(nonNull)
	}

	return p
}

// inferType classifies the non-null values of a column. Checks run in strict
// precedence order: boolean, then date, then numeric, with string as the
// catch-all. A column with no non-null values is a string column.
func inferType(nonNull []string) Type {
	if len(nonNull) == 0 {
		return TypeString
	}
	if isBoolean(nonNull) {
		return TypeBoolean
	}
	if t, ok := temporalType(nonNull); ok {
		return t
	}
	if t, ok := numericType(nonNull); ok {
		return t
	}
	return TypeString
}

// isBoolean requires at most two distinct case-insensitive values, all drawn
// from the boolean vocabulary.
func isBoolean(nonNull []string) bool {
	distinct := make(map[string]struct{}, 2)
	for _, v := range nonNull {
		lower := strings.ToLower(v)
		if _, ok := booleanVocabulary[lower]; !ok {
			return false
		}
		distinct[lower] = struct{}{}
		if len(distinct) > 2 {
			return false
		}
	}
	return true
}

// temporalType reports whether at least 70% of values start with a recognized
// date pattern, distinguishing datetime when matched values carry a time
// component.
func temporalType(nonNull []string) (Type, bool) {
	matched, withTime := 0, 0
	for _, v := range nonNull {
		for _, pattern := range datePatterns {
			if loc := pattern.FindStringIndex(v); loc != nil {
				matched++
				if strings.Contains(v[loc[1]:], ":") {
					withTime++
				}
				break
			}
		}
	}
	if float64(matched)/float64(len(nonNull)) < dateMatchThreshold {
		return "", false
	}
	if withTime*2 > matched {
		return TypeDatetime, true
	}
	return TypeDate, true
}

// numericType requires every value to match the numeric pattern. The column is
// an integer column only when no value contains a decimal point.
func numericType(nonNull []string) (Type, bool) {
	hasDecimal := false
	for _, v := range nonNull {
		if !numericPattern.MatchString(v) {
			return "", false
		}
		if strings.Contains(v, ".") {
			hasDecimal = true
		}
	}
	if hasDecimal {
		return TypeFloat, true
	}
	return TypeInteger, true
}

func countDistinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// sampleValues returns up to maxSampleValues distinct values in first-seen order.
func sampleValues(values []string) []string {
	samples := make([]string, 0, maxSampleValues)
	seen := make(map[string]struct{}, maxSampleValues)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		samples = append(samples, v)
		if len(samples) == maxSampleValues {
			break
		}
	}
	return samples
}

func numericStats(nonNull []string) *NumericStats {
	numbers := make([]float64, 0, len(nonNull))
	for _, v := range nonNull {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, f)
	}
	if len(numbers) == 0 {
		return nil
	}

	min, _ := stats.Min(numbers)
	max, _ := stats.Max(numbers)
	mean, _ := stats.Mean(numbers)
	median, _ := stats.Median(numbers)
	std, _ := stats.StandardDeviation(numbers)

	return &NumericStats{
		Min:    min,
		Max:    max,
		Mean:   round2(mean),
		Median: median,
		Std:    round2(std),
	}
}

func stringStats(nonNull []string) *StringStats {
	if len(nonNull) == 0 {
		return nil
	}

	minLen, maxLen, totalLen := len(nonNull[0]), len(nonNull[0]), 0
	counts := make(map[string]int, len(nonNull))
	order := make([]string, 0, len(nonNull))
	for _, v := range nonNull {
		n := len(v)
		if n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
		totalLen += n
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	// First-seen value wins ties so the mode is deterministic.
	mode, best := "", 0
	for _, v := range order {
		if counts[v] > best {
			mode, best = v, counts[v]
		}
	}

	return &StringStats{
		MinLen: minLen,
		MaxLen: maxLen,
		AvgLen: round2(float64(totalLen) / float64(len(nonNull))),
		Mode:   mode,
	}
}

func dateStats(nonNull []string) *DateStats {
	var min, max time.Time
	parsed := 0
	for _, v := range nonNull {
		t, ok := parseDate(v)
		if !ok {
			continue
		}
		if parsed == 0 || t.Before(min) {
			min = t
		}
		if parsed == 0 || t.After(max) {
			max = t
		}
		parsed++
	}
	if parsed == 0 {
		return nil
	}
	return &DateStats{
		Min:       min,
		Max:       max,
		RangeDays: int(max.Sub(min).Hours() / 24),
	}
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func booleanStats(nonNull []string) *BooleanStats {
	bs := &BooleanStats{}
	seen := make(map[string]struct{}, 2)
	for _, v := range nonNull {
		lower := strings.ToLower(v)
		if booleanVocabulary[lower] {
			bs.TrueCount++
		} else {
			bs.FalseCount++
		}
		if _, ok := seen[lower]; !ok {
			seen[lower] = struct{}{}
			bs.DistinctValues = append(bs.DistinctValues, lower)
		}
	}
	return bs
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
