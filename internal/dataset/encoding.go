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
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding inspects raw bytes and returns the most plausible encoding
// name: BOM markers first, then UTF-8 validity, with windows-1252 as the
// fallback for arbitrary 8-bit content.
func DetectEncoding(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return "utf-8"
	case bytes.HasPrefix(data, bomUTF16LE):
		return "utf-16le"
	case bytes.HasPrefix(data, bomUTF16BE):
		return "utf-16be"
	case utf8.Valid(data):
		return "utf-8"
	default:
		return "windows-1252"
	}
}

// Decode converts raw bytes in the named encoding to UTF-8, stripping any BOM.
func Decode(data []byte, encodingName string) ([]byte, error) {
	switch encodingName {
	case "utf-8", "":
		return bytes.TrimPrefix(data, bomUTF8), nil
	case "utf-16le":
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return dec.Bytes(data)
	case "utf-16be":
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return dec.Bytes(data)
	case "latin-1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Bytes(data)
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Bytes(data)
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encodingName)
	}
}
