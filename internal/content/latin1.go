// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package content

import (
	// stdlib
	"io"
	"strings"

	// 3p
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Latin1Codec reads and writes ISO-8859-1 text. It is not registered by
// default; callers working with legacy exports register it against the
// extensions they need.
type Latin1Codec struct{}

// Decode converts Latin-1 bytes to UTF-8 lines.
func (Latin1Codec) Decode(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return nil, err
	}
	return splitLines(string(data)), nil
}

// Encode converts the lines back to Latin-1. Runes outside the charmap are
// replaced by its substitution byte rather than failing the write.
func (Latin1Codec) Encode(w io.Writer, lines []string) error {
	encoder := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	tw := transform.NewWriter(w, encoder)
	if _, err := io.WriteString(tw, strings.Join(lines, "")); err != nil {
		return err
	}
	return tw.Close()
}
