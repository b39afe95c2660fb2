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
package ollama

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "clean object passes through",
			raw:      `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "json fenced block",
			raw:      "Sure!\n```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "bare fenced block",
			raw:      "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "first fenced block wins",
			raw:      "```json\n{\"a\": 1}\n```\nand also\n```json\n{\"b\": 2}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "triple quotes stripped",
			raw:      `"""{"a": 1}"""`,
			expected: `{"a": 1}`,
		},
		{
			name:     "prose around the object",
			raw:      `Here is the result: {"a": 1} Hope that helps!`,
			expected: `{"a": 1}`,
		},
		{
			name:     "no braces returns cleaned text",
			raw:      "no json here",
			expected: "no json here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RepairJSON(tt.raw))
		})
	}
}

func TestParseModelJSON(t *testing.T) {
	parsed, err := ParseModelJSON("```json\n{\"enhanced_columns\": [{\"column_name\": \"cust_id\"}]}\n```")
	require.NoError(t, err)
	cols, ok := parsed["enhanced_columns"].([]any)
	require.True(t, ok)
	assert.Len(t, cols, 1)
}

func TestParseModelJSONToleratesJSON5(t *testing.T) {
	// Trailing comma and single-quoted string, both common model output.
	parsed, err := ParseModelJSON("{\"a\": 'one', \"b\": 2,}")
	require.NoError(t, err)
	assert.Equal(t, "one", parsed["a"])
}

func TestParseModelJSONErrors(t *testing.T) {
	_, err := ParseModelJSON("I refuse to answer in JSON.")
	require.Error(t, err)

	_, err = ParseModelJSON("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON object")
}
