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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/titanous/json5"
)

// RepairJSON strips the decoration local models wrap around JSON output:
// triple quotes, markdown code fences, and leading/trailing prose. When a
// fenced block is present, only the first block is kept. The final step
// slices from the first '{' to the last '}' so trailing commentary is
// dropped.
func RepairJSON(raw string) string {
	text := strings.TrimSpace(raw)

	text = strings.ReplaceAll(text, `"""`, "")
	text = strings.ReplaceAll(text, "'''", "")

	if idx := strings.Index(text, "```json"); idx != -1 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end != -1 {
			text = text[:end]
		}
	} else if idx := strings.Index(text, "```"); idx != -1 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end != -1 {
			text = text[:end]
		}
	}

	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		text = text[start : end+1]
	}

	return text
}

// ParseModelJSON repairs raw model output and parses it into a generic
// object. Strict JSON is tried first; JSON5 handles the tolerable dialect
// drift local models produce (single quotes, trailing commas, unquoted
// keys).
func ParseModelJSON(raw string) (map[string]any, error) {
	repaired := RepairJSON(raw)
	if repaired == "" {
		return nil, fmt.Errorf("response contains no JSON object")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(repaired), &parsed); err == nil {
		return parsed, nil
	}
	if err := json5.Unmarshal([]byte(repaired), &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	return parsed, nil
}
