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
package dataset

import (
	"fmt"
	"strings"
)

// ParseError reports that no delimiter/encoding strategy produced a valid
// tabular parse. It lists every strategy that was attempted, in order.
type ParseError struct {
	Strategies []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse file with any supported format (attempted: %s)",
		strings.Join(e.Strategies, ", "))
}
