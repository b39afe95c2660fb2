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

// Package bizcontext annotates column profiles with industry-specific
// business knowledge: glossary matches, compliance implications, criticality
// and suggested data quality rules. Everything here is deterministic keyword
// matching; no model calls are involved.
package bizcontext

import (
	"fmt"
	"strings"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/profile"
)

// Supported industry names. Unknown industries fall back to General.
const (
	IndustryFinancial     = "Financial Services"
	IndustryHealthcare    = "Healthcare"
	IndustryRetail        = "Retail/E-commerce"
	IndustryTravel        = "Online Travel Agency (OTA)"
	IndustryManufacturing = "Manufacturing"
	IndustryGeneral       = "General"
)

// glossaryEntry pairs a keyword with its business meaning. Entries are kept
// in slices, not maps, so the first match is always the same one.
type glossaryEntry struct {
	term        string
	description string
}

// Annotator adds business context to column profiles for one industry.
type Annotator struct {
	industry   string
	glossary   []glossaryEntry
	frameworks []string
}

// NewAnnotator creates an annotator for the given industry.
func NewAnnotator(industry string) *Annotator {
	if industry == "" {
		industry = IndustryGeneral
	}
	return &Annotator{
		industry:   industry,
		glossary:   glossaries[industry],
		frameworks: complianceFrameworks(industry),
	}
}

// Industry returns the industry this annotator was built for.
func (a *Annotator) Industry() string {
	return a.industry
}

// Frameworks returns the compliance frameworks applicable to the industry.
func (a *Annotator) Frameworks() []string {
	return a.frameworks
}

// Annotate fills the business context fields of every profile in place and
// returns the same slice. Existing statistical fields are never touched.
func (a *Annotator) Annotate(profiles []profile.ColumnProfile, tableName, sourceSystem string) []profile.ColumnProfile {
	for i := range profiles {
		p := &profiles[i]
		p.TableName = tableName
		p.SourceSystem = sourceSystem
		p.PotentialPII = DetectPII(p.Name)
		p.PotentialBusinessKey = DetectBusinessKey(p.Name, p.UniquenessRatio())
		p.DataPattern = DetectPattern(p.SampleValues)
		p.BusinessContext = a.businessContext(p)
		p.ComplianceImplications = a.complianceNeeds(p)
		p.BusinessCriticality = a.criticality(p)
		p.SuggestedBusinessRules = a.businessRules(p)
	}
	return profiles
}

var piiKeywords = []string{
	"email", "phone", "ssn", "social", "name", "fname", "lname",
	"address", "addr", "birth", "dob", "license", "passport",
}

// DetectPII reports whether a column name suggests personally identifiable
// information.
func DetectPII(columnName string) bool {
	return containsAny(strings.ToLower(columnName), piiKeywords)
}

var businessKeyKeywords = []string{"id", "key", "nbr", "code", "cd"}

// DetectBusinessKey reports whether a column looks like a business key: a
// key-suggesting name combined with high uniqueness among non-null values.
func DetectBusinessKey(columnName string, uniquenessRatio float64) bool {
	return containsAny(strings.ToLower(columnName), businessKeyKeywords) && uniquenessRatio > 0.9
}

// DetectPattern classifies the shape of sample values into a coarse pattern
// label used by artifact generation.
func DetectPattern(samples []string) string {
	if len(samples) == 0 {
		return "unknown"
	}
	if len(samples) > 10 {
		samples = samples[:10]
	}

	switch {
	case allMatch(samples, func(v string) bool {
		switch strings.ToUpper(v) {
		case "Y", "N", "YES", "NO", "TRUE", "FALSE", "1", "0":
			return true
		}
		return false
	}):
		return "boolean_flag"
	case allMatch(samples, func(v string) bool {
		return len(v) == len(samples[0]) && v == strings.ToUpper(v) && strings.ContainsFunc(v, isLetter)
	}):
		return "fixed_code"
	case allMatch(samples, func(v string) bool { return strings.Contains(v, "@") }):
		return "email_address"
	case allMatch(samples, func(v string) bool { return isDigits(stripPhoneChars(v)) }):
		return "phone_number"
	default:
		return "general_text"
	}
}

func (a *Annotator) businessContext(p *profile.ColumnProfile) string {
	name := strings.ToLower(p.Name)

	for _, entry := range a.glossary {
		if strings.Contains(name, entry.term) {
			return fmt.Sprintf("%s (Industry: %s)", entry.description, a.industry)
		}
	}

	switch {
	case containsAny(name, []string{"id", "key", "nbr", "number"}):
		switch {
		case containsAny(name, []string{"cust", "customer", "client", "guest"}):
			return "Customer/Guest identifier for business operations"
		case containsAny(name, []string{"prod", "product", "item", "prop", "property"}):
			return "Product/Property identifier for inventory management"
		case containsAny(name, []string{"ord", "order", "trans", "bkng", "booking"}):
			return "Transaction/Booking identifier for order processing"
		default:
			return "Business identifier for operational tracking"
		}
	case containsAny(name, []string{"amt", "amount", "price", "cost", "value", "rate"}):
		if a.industry == IndustryTravel {
			return "Financial amount for booking transactions and revenue management"
		}
		return "Financial amount for business calculations and reporting"
	case containsAny(name, []string{"dt", "date", "time", "ts"}):
		if a.industry == IndustryTravel && containsAny(name, []string{"checkin", "checkout"}) {
			return "Travel date for booking and stay management"
		}
		return "Date/time field for temporal business analysis"
	case containsAny(name, []string{"status", "state", "flag", "ind"}):
		return "Status indicator for business process tracking"
	case containsAny(name, []string{"name", "desc", "description"}):
		return "Descriptive text field for business identification"
	}

	if a.industry == IndustryTravel {
		switch {
		case containsAny(name, []string{"commission", "margin"}):
			return "Revenue sharing and partner commission data"
		case containsAny(name, []string{"cancel", "refund"}):
			return "Cancellation and refund processing information"
		case containsAny(name, []string{"review", "rating", "score"}):
			return "Guest feedback and property quality metrics"
		case containsAny(name, []string{"search", "click", "conversion"}):
			return "User behavior and booking funnel analytics"
		}
	}

	return fmt.Sprintf("Business data field relevant to %s operations", a.industry)
}

func (a *Annotator) complianceNeeds(p *profile.ColumnProfile) []string {
	var needs []string
	name := strings.ToLower(p.Name)

	if DetectPII(p.Name) {
		needs = append(needs,
			"GDPR Article 6 - Lawful basis for processing personal data",
			"Data encryption at rest and in transit required",
			"Access logging and audit trail implementation",
		)
	}

	switch a.industry {
	case IndustryFinancial:
		if containsAny(name, []string{"account", "balance", "payment", "card"}) {
			needs = append(needs,
				"PCI DSS - Secure storage of cardholder data",
				"SOX - Financial reporting accuracy requirements",
			)
		}
	case IndustryHealthcare:
		if containsAny(name, []string{"patient", "medical", "diagnosis", "procedure"}) {
			needs = append(needs,
				"HIPAA - Protected Health Information (PHI) safeguards",
				"Minimum necessary standard for data access",
			)
		}
	case IndustryRetail:
		if containsAny(name, []string{"payment", "card", "billing"}) {
			needs = append(needs, "PCI DSS - Payment processing security")
		}
	case IndustryTravel:
		if containsAny(name, []string{"guest", "customer", "traveler"}) {
			needs = append(needs,
				"GDPR - EU traveler data protection requirements",
				"Data localization - Country-specific data residency rules",
			)
		}
		if containsAny(name, []string{"payment", "card", "billing"}) {
			needs = append(needs, "PCI DSS - Payment processing for travel bookings")
		}
		if containsAny(name, []string{"booking", "reservation", "cancellation"}) {
			needs = append(needs,
				"Package Travel Directive - EU booking protection",
				"Consumer protection laws - Booking terms transparency",
			)
		}
	}

	return needs
}

func (a *Annotator) criticality(p *profile.ColumnProfile) string {
	name := strings.ToLower(p.Name)

	switch {
	case containsAny(name, []string{"id", "key", "primary"}):
		return "High - Primary business identifier"
	case containsAny(name, []string{"amount", "price", "cost", "revenue", "commission"}):
		return "High - Financial/Revenue critical"
	case p.PotentialPII:
		return "High - Personal data with compliance requirements"
	case p.CompletenessPct > 95 && p.UniquenessRatio() > 0.8:
		return "High - Well-maintained business key"
	}

	if a.industry == IndustryTravel {
		switch {
		case containsAny(name, []string{"booking", "reservation", "guest"}):
			return "High - Core booking business process"
		case containsAny(name, []string{"checkin", "checkout"}):
			return "High - Critical for stay management"
		}
	}

	switch {
	case containsAny(name, []string{"date", "time", "status", "type"}):
		return "Medium - Operational tracking field"
	case p.CompletenessPct > 80:
		return "Medium - Well-populated business data"
	default:
		return "Low - Supporting or optional data"
	}
}

func (a *Annotator) businessRules(p *profile.ColumnProfile) []string {
	var rules []string
	name := strings.ToLower(p.Name)

	if p.CompletenessPct < 70 {
		rules = append(rules, "Implement data completeness monitoring and alerts")
	}

	switch {
	case p.InferredType.IsNumeric():
		if containsAny(name, []string{"amount", "price", "commission"}) {
			rules = append(rules,
				"Validate non-negative amounts for financial fields",
				"Implement currency precision rules (2 decimal places)",
			)
		}
		if containsAny(name, []string{"quantity", "qty", "rooms"}) {
			rules = append(rules, "Validate positive quantities for inventory")
		}
	case p.InferredType == profile.TypeString:
		switch {
		case containsAny(name, []string{"email", "mail"}):
			rules = append(rules,
				"Validate email format using regex pattern",
				"Implement duplicate email detection",
			)
		case containsAny(name, []string{"phone", "tel"}):
			rules = append(rules,
				"Standardize phone number format",
				"Validate phone number patterns by region",
			)
		case containsAny(name, []string{"status", "state"}):
			rules = append(rules,
				"Implement allowed values validation",
				"Create status transition rules",
			)
		}
	}

	if p.PotentialBusinessKey {
		rules = append(rules,
			"Implement uniqueness constraints",
			"Create referential integrity checks",
		)
	}
	if p.PotentialPII {
		rules = append(rules,
			"Implement data masking for non-production environments",
			"Create access control and audit logging",
		)
	}

	if a.industry == IndustryTravel {
		if strings.Contains(name, "booking") && strings.Contains(name, "date") {
			rules = append(rules, "Validate booking date is not in the past")
		}
		if containsAny(name, []string{"checkin", "checkout"}) {
			rules = append(rules, "Validate check-out date is after check-in date")
		}
		if strings.Contains(name, "cancellation") && strings.Contains(name, "date") {
			rules = append(rules, "Validate cancellation deadline against check-in date")
		}
		if strings.Contains(name, "commission") {
			rules = append(rules, "Validate commission percentage is within contract limits")
		}
	}

	return rules
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func allMatch(values []string, fn func(string) bool) bool {
	for _, v := range values {
		if !fn(v) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripPhoneChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '(', ')', ' ', '+':
			return -1
		}
		return r
	}, s)
}
