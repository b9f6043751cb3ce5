// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

// Package mapping turns keyword-to-replacement associations into compiled
// rule sets. A mapping comes from an in-memory list of pairs, a two-column
// CSV file, or a replacement function paired with a unifying pattern.
package mapping

import "sort"

// Pair is one keyword-to-replacement association. A literal key is escaped
// before compilation so regexp metacharacters match verbatim; a regex key is
// compiled as written.
type Pair struct {
	Key         string
	Replacement string
	IsRegex     bool
}

// Mapping is an ordered collection of pairs. Order is significant: when no
// unifying pattern is supplied, rules apply in declaration order and the
// first-listed rule wins at each overlapping position.
type Mapping []Pair

// FromMap builds a Mapping from a plain table of literal keys. Go map
// iteration order is randomized, so keys are sorted to keep compilation
// deterministic for the same input.
func FromMap(table map[string]string) Mapping {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make(Mapping, 0, len(table))
	for _, key := range keys {
		pairs = append(pairs, Pair{Key: key, Replacement: table[key]})
	}
	return pairs
}

// Options carries the match and repack configuration. It is an immutable
// value object bound once at construction and passed explicitly into every
// compile, walk and archive call.
type Options struct {
	// IgnoreCase compiles every pattern case-insensitively.
	IgnoreCase bool

	// WordBoundaries requires matches to be flanked by non-word characters
	// on both sides. `@` counts as a boundary character, so an email local
	// part matches without extra escaping.
	WordBoundaries bool

	// ArchiveFormat selects the repack format for processed archives.
	// Supported values are "zip" (default) and "tgz".
	ArchiveFormat string
}

// DefaultArchiveFormat is the repack format used when none is configured.
const DefaultArchiveFormat = "zip"

// Format returns the configured archive format, falling back to the default.
func (o Options) Format() string {
	if o.ArchiveFormat == "" {
		return DefaultArchiveFormat
	}
	return o.ArchiveFormat
}
