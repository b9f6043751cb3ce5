// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package content

import (
	// stdlib
	"io"
	"strings"
)

// UTF8Codec reads text as UTF-8. Bytes that do not form valid UTF-8 are
// dropped rather than surfaced as an error; losing malformed characters is
// an accepted trade-off of the reader contract.
type UTF8Codec struct{}

// Decode returns the file as lines with terminators preserved.
func (UTF8Codec) Decode(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return splitLines(strings.ToValidUTF8(string(data), "")), nil
}

// Encode writes the lines back verbatim.
func (UTF8Codec) Encode(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// splitLines splits text after every newline, keeping the newline with its
// line so that rejoining the slice reproduces the input.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
