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
package bizcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/internal/profile"
)

func TestDetectPII(t *testing.T) {
	assert.True(t, DetectPII("CUST_EMAIL_ADDR"))
	assert.True(t, DetectPII("birth_dt"))
	assert.True(t, DetectPII("GUEST_FNAME"))
	assert.False(t, DetectPII("ORDER_TOTAL_AMT"))
	assert.False(t, DetectPII("status_cd"))
}

func TestDetectBusinessKey(t *testing.T) {
	assert.True(t, DetectBusinessKey("CUST_ID_NBR", 1.0))
	assert.False(t, DetectBusinessKey("CUST_ID_NBR", 0.5))
	assert.False(t, DetectBusinessKey("order_total", 1.0))
}

func TestDetectPattern(t *testing.T) {
	tests := []struct {
		name     string
		samples  []string
		expected string
	}{
		{"empty", nil, "unknown"},
		{"boolean flag", []string{"Y", "N", "Y"}, "boolean_flag"},
		{"fixed code", []string{"CONF", "PEND", "CANC"}, "fixed_code"},
		{"email", []string{"a@x.com", "b@y.org"}, "email_address"},
		{"phone", []string{"(555) 123-4567", "555-987-6543"}, "phone_number"},
		{"general text", []string{"Alice Smith", "Bob Jones"}, "general_text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPattern(tt.samples))
		})
	}
}

func TestAnnotateFillsBusinessFields(t *testing.T) {
	a := NewAnnotator(IndustryTravel)
	profiles := []profile.ColumnProfile{
		{
			Name:            "BKNG_ID_NBR",
			InferredType:    profile.TypeString,
			TotalCount:      100,
			UniqueCount:     100,
			CompletenessPct: 100,
			SampleValues:    []string{"BK0000000001", "BK0000000002"},
		},
		{
			Name:            "GUEST_EMAIL_ADDR",
			InferredType:    profile.TypeString,
			TotalCount:      100,
			NullCount:       40,
			UniqueCount:     60,
			CompletenessPct: 60,
			SampleValues:    []string{"a@x.com", "b@y.org"},
		},
	}

	annotated := a.Annotate(profiles, "bookings", "Legacy PMS")
	require.Len(t, annotated, 2)

	key := annotated[0]
	assert.Equal(t, "bookings", key.TableName)
	assert.Equal(t, "Legacy PMS", key.SourceSystem)
	assert.True(t, key.PotentialBusinessKey)
	assert.False(t, key.PotentialPII)
	assert.Contains(t, key.BusinessContext, "Booking identifier")
	assert.Equal(t, "High - Primary business identifier", key.BusinessCriticality)
	assert.Contains(t, key.SuggestedBusinessRules, "Implement uniqueness constraints")

	email := annotated[1]
	assert.True(t, email.PotentialPII)
	assert.Equal(t, "email_address", email.DataPattern)
	assert.Contains(t, email.ComplianceImplications, "GDPR Article 6 - Lawful basis for processing personal data")
	assert.Contains(t, email.ComplianceImplications, "GDPR - EU traveler data protection requirements")
	assert.Contains(t, email.SuggestedBusinessRules, "Implement data completeness monitoring and alerts")
	assert.Contains(t, email.SuggestedBusinessRules, "Validate email format using regex pattern")
}

func TestAnnotateIsDeterministic(t *testing.T) {
	a := NewAnnotator(IndustryFinancial)
	mk := func() []profile.ColumnProfile {
		return []profile.ColumnProfile{{
			Name:            "ACCT_BAL_AMT",
			InferredType:    profile.TypeFloat,
			TotalCount:      10,
			UniqueCount:     10,
			CompletenessPct: 100,
			SampleValues:    []string{"10.50", "99.99"},
		}}
	}

	first := a.Annotate(mk(), "accounts", "core banking")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, a.Annotate(mk(), "accounts", "core banking"))
	}
}

func TestUnknownIndustryUsesGeneralFrameworks(t *testing.T) {
	a := NewAnnotator("Agriculture")
	assert.Contains(t, a.Frameworks(), "GDPR - General Data Protection Regulation")

	p := a.Annotate([]profile.ColumnProfile{{Name: "harvest_notes"}}, "t", "s")
	assert.Contains(t, p[0].BusinessContext, "Agriculture operations")
}
