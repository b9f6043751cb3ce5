// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package scrub

import "regexp"

// ReplaceFunc computes a replacement for a matched substring. The extra map
// carries caller-supplied keyword values bound at compile time and is shared
// across calls, so implementations must not modify it.
type ReplaceFunc func(match string, extra map[string]string) string

// Rule pairs one compiled pattern with its replacement. The replacement is a
// regexp template, so `$1` style references expand against the pattern's
// capture groups.
type Rule struct {
	re          *regexp.Regexp
	replacement string
}

// NewRule creates a Rule from a compiled pattern and a replacement template.
func NewRule(re *regexp.Regexp, replacement string) Rule {
	return Rule{re: re, replacement: replacement}
}

// Pattern returns the source text of the rule's compiled pattern.
func (r Rule) Pattern() string {
	return r.re.String()
}

// RuleSet is the compiled, ready-to-execute form of a mapping. It is
// immutable once built and safe to share across goroutines, unless it is
// backed by a ReplaceFunc that keeps its own state.
//
// A RuleSet is either unified (one pattern scanned once over the input, with
// each match resolved through a lookup table or a ReplaceFunc) or sequential
// (an ordered list of per-key rules, each applied to the previous rule's
// output).
type RuleSet struct {
	unified *regexp.Regexp
	table   map[string]string
	fn      ReplaceFunc
	extra   map[string]string
	rules   []Rule
}

// NewUnifiedTable builds a unified RuleSet that resolves matches through an
// exact-text lookup table. A match without a table entry passes through
// unchanged; the engine never deletes text it does not recognize. That
// includes case variants: a pattern compiled with IgnoreCase can match text
// that differs in case from every table key, and such a match is left alone.
// List each casing as its own key, or use a ReplaceFunc that normalizes.
func NewUnifiedTable(re *regexp.Regexp, table map[string]string) *RuleSet {
	return &RuleSet{unified: re, table: table}
}

// NewUnifiedFunc builds a unified RuleSet that resolves matches by calling
// fn with the matched text and the bound extra values.
func NewUnifiedFunc(re *regexp.Regexp, fn ReplaceFunc, extra map[string]string) *RuleSet {
	return &RuleSet{unified: re, fn: fn, extra: extra}
}

// NewSequential builds a RuleSet that applies each rule in order, each rule
// scanning the output of the one before it. An earlier replacement can itself
// be matched by a later rule; callers who need one pass over the original
// text should compile a unified set instead.
func NewSequential(rules []Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// Sequential reports whether the set applies rules one at a time.
func (rs *RuleSet) Sequential() bool {
	return rs.unified == nil
}

// Len returns the number of per-key rules, or 1 for a unified set.
func (rs *RuleSet) Len() int {
	if rs.unified != nil {
		return 1
	}
	return len(rs.rules)
}

// Apply substitutes every match in text and returns the result. It is pure:
// the full output is computed before the caller does any I/O, and the same
// input always yields the same output for a table-backed set.
//
// Apply serves both file content and single path segments. Path segments are
// matched one at a time, never as a joined path, so a match can never span a
// path separator.
func (rs *RuleSet) Apply(text string) string {
	if rs.unified != nil {
		return rs.unified.ReplaceAllStringFunc(text, rs.resolve)
	}
	for _, rule := range rs.rules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// resolve maps one matched substring to its replacement.
func (rs *RuleSet) resolve(match string) string {
	if rs.fn != nil {
		return rs.fn(match, rs.extra)
	}
	if replacement, ok := rs.table[match]; ok {
		return replacement
	}
	// The unifying pattern matched text outside the known keys.
	return match
}
