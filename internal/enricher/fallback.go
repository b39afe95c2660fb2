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

// fallbackConfidence marks rule-derived enrichment as low-trust without
// zeroing it out entirely.
const fallbackConfidence = 0.3

// Legacy naming suffixes and their modern replacements.
var suffixSubstitutions = []struct {
	from, to string
}{
	{"_nbr", "_id"},
	{"_amt", "_amount"},
	{"_dt", "_date"},
	{"_cd", "_code"},
	{"_flg", "_flag"},
	{"_pct", "_percentage"},
}

// Keyword-to-description pairs, matched in order against the lowercased
// column name; the first match wins.
var fallbackDescriptions = []struct {
	keyword, description string
}{
	{"email", "Email address used to contact the business entity"},
	{"phone", "Phone number used to contact the business entity"},
	{"addr", "Address or location information"},
	{"name", "Name or label identifying the business entity"},
	{"amt", "Monetary amount used in business calculations"},
	{"amount", "Monetary amount used in business calculations"},
	{"price", "Monetary amount used in business calculations"},
	{"qty", "Quantity or count of business items"},
	{"pct", "Percentage value used in business metrics"},
	{"dt", "Date or timestamp of a business event"},
	{"date", "Date or timestamp of a business event"},
	{"flg", "Boolean indicator controlling business logic"},
	{"flag", "Boolean indicator controlling business logic"},
	{"status", "Status code tracking a business process"},
	{"cd", "Coded value from a controlled vocabulary"},
	{"code", "Coded value from a controlled vocabulary"},
	{"id", "Identifier used to reference the business entity"},
	{"nbr", "Identifier used to reference the business entity"},
	{"key", "Identifier used to reference the business entity"},
}

// SuggestName derives a modernized snake_case column name without any model
// involvement: lowercase plus one legacy-suffix substitution.
func SuggestName(name string) string {
	suggested := strings.ToLower(name)
	for _, sub := range suffixSubstitutions {
		if strings.HasSuffix(suggested, sub.from) {
			suggested = strings.TrimSuffix(suggested, sub.from) + sub.to
			break
		}
	}
	// CUST_ID_NBR would otherwise become cust_id_id.
	for _, sub := range suffixSubstitutions {
		double := sub.to + sub.to
		if strings.HasSuffix(suggested, double) {
			suggested = strings.TrimSuffix(suggested, sub.to)
		}
	}
	return suggested
}

func describeFallback(p *profile.ColumnProfile) string {
	name := strings.ToLower(p.Name)
	for _, entry := range fallbackDescriptions {
		if strings.Contains(name, entry.keyword) {
			return entry.description
		}
	}
	return fmt.Sprintf("Legacy %s field migrated from the source system", p.InferredType)
}

// enrichFallback produces one rule-based EnrichedColumn per profile. It has
// no external dependencies and never fails.
func enrichFallback(chunk []profile.ColumnProfile) []EnrichedColumn {
	out := make([]EnrichedColumn, 0, len(chunk))
	for _, p := range chunk {
		col := EnrichedColumn{
			ColumnProfile:       p,
			SuggestedName:       SuggestName(p.Name),
			BusinessDescription: describeFallback(&p),
			ConfidenceScore:     fallbackConfidence,
			Enhanced:            true,
			FallbackUsed:        true,
		}
		finalizeDerivedFields(&col)
		out = append(out, col)
	}
	return out
}
