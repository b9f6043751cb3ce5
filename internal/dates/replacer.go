// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

// Package dates replaces timestamp-like strings with fixed epoch values, so
// substituted output keeps its shape without leaking when something
// happened. The default patterns cover the timestamp styles commonly seen
// in exported chat and log data.
package dates

import (
	// stdlib
	"fmt"
	"regexp"
	"strings"
	"time"

	// project
	"github.com/treescrub/treescrub/internal/collections"
	"github.com/treescrub/treescrub/internal/mapping"
)

type datePattern struct {
	re          *regexp.Regexp
	replacement string
	layouts     []string
}

// defaultPatterns pair each recognized timestamp shape with its epoch
// replacement and the layouts used to validate candidate matches.
var defaultPatterns = []datePattern{
	{
		re:          regexp.MustCompile(`\d{4}[-/]\d{2}[-/]\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d{3})?`),
		replacement: "1970-01-01T00:00:00",
		layouts: []string{
			"2006-01-02T15:04:05", "2006-01-02 15:04:05",
			"2006/01/02 15:04:05", "2006-01-02T15:04:05.000",
			"2006-01-02 15:04:05.000",
		},
	},
	{
		re:          regexp.MustCompile(`\d{4}[-/]\d{2}[-/]\d{2}`),
		replacement: "1970-01-01",
		layouts:     []string{"2006-01-02", "2006/01/02"},
	},
	{
		re:          regexp.MustCompile(`\d{1,2}[-/\\]\d{1,2}[-/\\]\d{4}`),
		replacement: "01-01-1970",
		layouts: []string{
			"2-1-2006", "02-01-2006", "2/1/2006", "02/01/2006",
			"2\\1\\2006", "02\\01\\2006",
		},
	},
	{
		re:          regexp.MustCompile(`\d{8}_?\d{4}`),
		replacement: "19700101_0000",
		layouts:     []string{"20060102_1504", "200601021504"},
	},
	{
		re:          regexp.MustCompile(`\d{8}T\d{6}`),
		replacement: "19700101T000000",
		layouts:     []string{"20060102T150405"},
	},
	{
		re:          regexp.MustCompile(`\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}:\d{2}`),
		replacement: "01.01.1970 00:00:00",
		layouts:     []string{"02.01.2006 15:04:05"},
	},
}

// Replacer rewrites matched timestamps to fixed values.
type Replacer struct {
	patterns []datePattern

	// ReplaceInvalidDates also rewrites matches that do not parse as real
	// dates. Leave it off unless the patterns are known to be exact, so
	// strings that merely look like malformed dates survive.
	ReplaceInvalidDates bool
}

// NewReplacer creates a Replacer with the default patterns.
func NewReplacer() *Replacer {
	return &Replacer{patterns: append([]datePattern(nil), defaultPatterns...)}
}

// Clear drops all patterns.
func (r *Replacer) Clear() {
	r.patterns = nil
}

// Add appends a custom pattern with a fixed replacement. Validation layouts
// may be empty, in which case matches of this pattern are always replaced.
func (r *Replacer) Add(pattern, replacement string, layouts ...string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("date pattern %q: %w", pattern, err)
	}
	r.patterns = append(r.patterns, datePattern{re: re, replacement: replacement, layouts: layouts})
	return nil
}

// Replace rewrites every validated timestamp match in text.
func (r *Replacer) Replace(text string) string {
	for _, p := range r.patterns {
		text = p.re.ReplaceAllStringFunc(text, func(match string) string {
			if !r.ReplaceInvalidDates && !parses(match, p.layouts) {
				return match
			}
			return p.replacement
		})
	}
	return text
}

// Apply implements scrub.Applier, so a Replacer can be chained after the
// keyword rules as its own substitution pass.
func (r *Replacer) Apply(text string) string {
	return r.Replace(text)
}

// Rules exposes the patterns as regex mapping pairs so the date rules can be
// compiled into a sequential rule set alongside keyword rules. Note that the
// engine applies these without the validity check Replace performs.
func (r *Replacer) Rules() mapping.Mapping {
	return collections.Map(r.patterns, func(p datePattern) mapping.Pair {
		return mapping.Pair{
			Key:         p.re.String(),
			Replacement: p.replacement,
			IsRegex:     true,
		}
	})
}

// parses reports whether a candidate is a real date under any layout. An
// empty layout list accepts everything.
func parses(candidate string, layouts []string) bool {
	if len(layouts) == 0 {
		return true
	}
	candidate = strings.TrimSpace(candidate)
	for _, layout := range layouts {
		if _, err := time.Parse(layout, candidate); err == nil {
			return true
		}
	}
	return false
}
