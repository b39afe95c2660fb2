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

import "math"

// finalizeDerivedFields computes the locally derived score fields. Called on
// every column exactly once, after model or fallback fields are in place.
func finalizeDerivedFields(col *EnrichedColumn) {
	col.DataQualityScore = qualityScore(col)
	col.MigrationComplexity = migrationComplexity(col)
}

// qualityScore rates a column's migration readiness in [0,1]. Completeness
// dominates; business keys are additionally judged on uniqueness, and PII
// without documented compliance handling takes a fixed penalty.
func qualityScore(col *EnrichedColumn) float64 {
	completeness := 0.0
	if col.TotalCount > 0 {
		completeness = float64(col.TotalCount-col.NullCount) / float64(col.TotalCount)
	}

	score := 1.0 * (0.3 + 0.7*completeness)
	if col.PotentialBusinessKey {
		score *= 0.5 + 0.5*col.UniquenessRatio()
	}
	if col.PotentialPII && !hasComplianceNotes(col) {
		score *= 0.7
	}
	return math.Round(score*100) / 100
}

func hasComplianceNotes(col *EnrichedColumn) bool {
	return col.ComplianceNotes != "" || len(col.ComplianceImplications) > 0
}

// migrationComplexity counts complexity factors: a proposed rename, each
// transformation suggestion, PII handling (double weight), and compliance
// obligations.
func migrationComplexity(col *EnrichedColumn) string {
	factors := 0
	if col.NameChanged() {
		factors++
	}
	factors += len(col.TransformationSuggestions)
	if col.PotentialPII {
		factors += 2
	}
	if hasComplianceNotes(col) {
		factors++
	}

	switch {
	case factors == 0:
		return ComplexityLow
	case factors <= 2:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}
