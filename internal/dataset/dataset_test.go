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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCommaSeparated(t *testing.T) {
	content := []byte("id,name,amount\n1,alice,10.50\n2,bob,20.00\n")

	ds, err := Read(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "amount"}, ds.ColumnNames())
	assert.Equal(t, 2, ds.RowCount)
	assert.Equal(t, []string{"alice", "bob"}, ds.Columns[1].Values)
}

func TestReadSemicolonSeparated(t *testing.T) {
	content := []byte("id;name;city\n1;alice;Berlin\n2;bob;Madrid\n")

	ds, err := Read(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "city"}, ds.ColumnNames())
	assert.Equal(t, 2, ds.RowCount)
}

func TestReadTabSeparated(t *testing.T) {
	content := []byte("id\tname\n1\talice\n")

	ds, err := Read(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.ColumnNames())
	assert.Equal(t, 1, ds.RowCount)
}

func TestReadRejectsSingleColumn(t *testing.T) {
	// One column never satisfies the acceptance criteria, whatever the
	// delimiter.
	content := []byte("value\n1\n2\n3\n")

	_, err := Read(content)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.GreaterOrEqual(t, len(parseErr.Strategies), 5)
	assert.Contains(t, err.Error(), "could not parse file")
}

func TestReadRejectsHeaderOnly(t *testing.T) {
	_, err := Read([]byte("id,name,amount\n"))
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestReadPadsAndTruncatesRaggedRows(t *testing.T) {
	content := []byte("a,b,c\n1,2\n1,2,3,4\n")

	ds, err := Read(content)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.RowCount)
	assert.Equal(t, []string{"", "3"}, ds.Columns[2].Values)
	assert.Len(t, ds.Columns, 3)
}

func TestReadTrimsCellWhitespace(t *testing.T) {
	ds, err := Read([]byte("a,b\n 1 ,  x\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", ds.Columns[0].Values[0])
	assert.Equal(t, "x", ds.Columns[1].Values[0])
}

func TestReadUTF8BOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,name\n1,café\n")...)

	ds, err := Read(content)
	require.NoError(t, err)
	assert.Equal(t, "id", ds.Columns[0].Name)
	assert.Equal(t, "café", ds.Columns[1].Values[0])
}

func TestReadLatin1Fallback(t *testing.T) {
	// "café" with 0xE9 is invalid UTF-8, so the windows-1252 path decodes it.
	content := []byte("id,name\n1,caf\xe9\n")

	ds, err := Read(content)
	require.NoError(t, err)
	assert.Equal(t, "café", ds.Columns[1].Values[0])
}

func TestCleanColumnName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Customer Name", "Customer_Name"},
		{"  order-id  ", "order_id"},
		{`"Quoted Header"`, "Quoted_Header"},
		{"amount ($)", "amount"},
		{"a__b___c", "a_b_c"},
		{"__trim__", "trim"},
		{"", "unnamed_column"},
		{"!!!", "unnamed_column"},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanColumnName(tc.raw))
		})
	}
}

func TestDuplicateColumnNamesAreSuffixed(t *testing.T) {
	ds, err := Read([]byte("id,name,name,name\n1,a,b,c\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "name_2", "name_3"}, ds.ColumnNames())
}

func TestDetectEncoding(t *testing.T) {
	assert.Equal(t, "utf-8", DetectEncoding([]byte("plain ascii")))
	assert.Equal(t, "utf-8", DetectEncoding(append([]byte{0xEF, 0xBB, 0xBF}, 'a')))
	assert.Equal(t, "utf-16le", DetectEncoding([]byte{0xFF, 0xFE, 'a', 0}))
	assert.Equal(t, "utf-16be", DetectEncoding([]byte{0xFE, 0xFF, 0, 'a'}))
	assert.Equal(t, "windows-1252", DetectEncoding([]byte{'c', 'a', 'f', 0xE9}))
}

func TestDecodeUnsupportedEncoding(t *testing.T) {
	_, err := Decode([]byte("x"), "ebcdic")
	assert.Error(t, err)
}

func TestDecodeUTF16(t *testing.T) {
	// "ab" in UTF-16LE with BOM.
	data := []byte{0xFF, 0xFE, 'a', 0, 'b', 0}
	decoded, err := Decode(data, "utf-16le")
	require.NoError(t, err)
	assert.Equal(t, "ab", string(decoded))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	ds := &Dataset{
		Columns: []Column{
			{Name: "id", Values: []string{"1", "2"}},
			{Name: "note", Values: []string{"has,comma", `has"quote`}},
		},
		RowCount: 2,
	}

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))

	parsed, err := Read(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ds.ColumnNames(), parsed.ColumnNames())
	assert.Equal(t, ds.Columns[1].Values, parsed.Columns[1].Values)
}

func TestParseErrorIsUnwrappable(t *testing.T) {
	_, err := Read([]byte{})
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}
