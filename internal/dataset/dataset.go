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
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Column is one ordered column of raw string values. Empty strings represent
// missing values; type interpretation happens in the profile package.
type Column struct {
	Name   string
	Values []string
}

// Dataset is an ordered collection of columns parsed from a tabular source.
type Dataset struct {
	Columns  []Column
	RowCount int
}

// ColumnNames returns the ordered column names.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// parseStrategy is one delimiter/encoding combination attempted during ingestion.
type parseStrategy struct {
	Delimiter rune
	Encoding  string
}

func (s parseStrategy) String() string {
	delim := string(s.Delimiter)
	if s.Delimiter == '\t' {
		delim = "\\t"
	}
	return fmt.Sprintf("sep=%q encoding=%s", delim, s.Encoding)
}

// Read parses raw file content into a Dataset. It tries a fixed priority list
// of delimiter/encoding combinations; a parse is accepted only if it yields at
// least 2 columns and 1 data row. Column names are cleaned and de-duplicated.
// If every strategy fails, a *ParseError listing the attempted strategies is
// returned; this is the only hard failure in the pipeline.
func Read(content []byte) (*Dataset, error) {
	detected := DetectEncoding(content)

	strategies := []parseStrategy{
		{Delimiter: ',', Encoding: detected},
		{Delimiter: ';', Encoding: detected},
		{Delimiter: '\t', Encoding: detected},
		{Delimiter: ',', Encoding: "utf-8"},
		{Delimiter: ',', Encoding: "latin-1"},
	}

	attempted := make([]string, 0, len(strategies))
	for _, strategy := range strategies {
		attempted = append(attempted, strategy.String())

		decoded, err := Decode(content, strategy.Encoding)
		if err != nil {
			continue
		}
		ds, err := parseCSV(decoded, strategy.Delimiter)
		if err != nil {
			continue
		}
		if len(ds.Columns) < 2 || ds.RowCount < 1 {
			continue
		}
		return ds, nil
	}

	return nil, &ParseError{Strategies: attempted}
}

// parseCSV parses decoded UTF-8 bytes with the given delimiter. Bad rows are
// skipped; rows with too few fields are padded with empty values and rows with
// too many fields are truncated.
func parseCSV(decoded []byte, delimiter rune) (*Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	names := cleanColumnNames(header)
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name}
	}

	rowCount := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Skip unparseable rows instead of failing the whole file.
			continue
		}
		for i := range columns {
			if i < len(row) {
				columns[i].Values = append(columns[i].Values, strings.TrimSpace(row[i]))
			} else {
				columns[i].Values = append(columns[i].Values, "")
			}
		}
		rowCount++
	}

	return &Dataset{Columns: columns, RowCount: rowCount}, nil
}

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	underscorePattern = regexp.MustCompile(`_+`)
)

// CleanColumnName standardizes a raw header value: trims whitespace and
// quotes, replaces special characters and spaces with underscores, collapses
// repeated underscores, and guarantees a non-empty result.
func CleanColumnName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, `"'`)
	name = nonWordPattern.ReplaceAllString(name, "_")
	name = whitespacePattern.ReplaceAllString(name, "_")
	name = underscorePattern.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "unnamed_column"
	}
	return name
}

// cleanColumnNames cleans every header and suffixes duplicates so that column
// names stay unique within one dataset.
func cleanColumnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := CleanColumnName(raw)
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		if _, ok := seen[name]; !ok {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

// WriteCSV serializes the dataset back to comma-separated UTF-8 bytes.
func (d *Dataset) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(d.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	row := make([]string, len(d.Columns))
	for i := 0; i < d.RowCount; i++ {
		for j, col := range d.Columns {
			if i < len(col.Values) {
				row[j] = col.Values[i]
			} else {
				row[j] = ""
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
