// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package mapping

import (
	// stdlib
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	// project
	"github.com/treescrub/treescrub/internal/collections"
)

// RegexMarker prefixes a CSV key that must be compiled as a regular
// expression instead of matched literally. The marker is stripped before
// compilation.
const RegexMarker = "r#"

// LoadCSV reads a two-column, comma-delimited, UTF-8 mapping file. The first
// row is a mandatory header and is ignored; every following row is
// `key,replacement` with surrounding whitespace trimmed.
func LoadCSV(path string) (Mapping, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mapping file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mapping file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("mapping file %s: %w", path, ErrEmptyMapping)
	}

	// records[0] is the header row. Rows with a blank key are dropped.
	pairs := Mapping(collections.FilterMap(records[1:], func(record []string) (Pair, bool) {
		key := strings.TrimSpace(record[0])
		if key == "" {
			return Pair{}, false
		}

		pair := Pair{Key: key, Replacement: strings.TrimSpace(record[1])}
		if strings.HasPrefix(key, RegexMarker) {
			pair.Key = strings.TrimPrefix(key, RegexMarker)
			pair.IsRegex = true
		}
		return pair, true
	}))

	if len(pairs) == 0 {
		return nil, fmt.Errorf("mapping file %s: %w", path, ErrEmptyMapping)
	}
	return pairs, nil
}
