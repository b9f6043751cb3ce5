// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package mapping

import (
	// stdlib
	"fmt"
	"regexp"
	"strings"

	// project
	"github.com/treescrub/treescrub/internal/scrub"
)

// Compile builds the ready-to-execute rule set for a mapping.
//
// With a unifying pattern the whole input is scanned once and each match is
// resolved through an exact-text lookup over the mapping keys. Without one,
// every key becomes its own rule and rules apply sequentially in declaration
// order, each seeing the previous rule's output.
//
// Replacements of literal keys are themselves literal: a `$` in them is
// inserted verbatim. Only a regex key's replacement is an expansion template
// where `$1` style references expand against its capture groups.
func Compile(m Mapping, pattern string, opts Options) (*scrub.RuleSet, error) {
	if len(m) == 0 {
		return nil, ErrEmptyMapping
	}

	if pattern != "" {
		re, err := compilePattern(pattern, true, opts)
		if err != nil {
			return nil, err
		}
		table := make(map[string]string, len(m))
		for _, pair := range m {
			table[pair.Key] = pair.Replacement
		}
		return scrub.NewUnifiedTable(re, table), nil
	}

	rules := make([]scrub.Rule, 0, len(m))
	for _, pair := range m {
		re, err := compilePattern(pair.Key, pair.IsRegex, opts)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", pair.Key, err)
		}
		replacement := pair.Replacement
		if !pair.IsRegex {
			// A literal key has no capture groups, so a `$` in its
			// replacement must not be treated as a template reference.
			replacement = strings.ReplaceAll(replacement, "$", "$$")
		}
		rules = append(rules, scrub.NewRule(re, replacement))
	}
	return scrub.NewSequential(rules), nil
}

// CompileFunc builds a rule set backed by a replacement function. The
// unifying pattern is mandatory: without it there is nothing to match. The
// extra values are forwarded verbatim to fn on every match.
func CompileFunc(fn scrub.ReplaceFunc, pattern string, opts Options, extra map[string]string) (*scrub.RuleSet, error) {
	if fn == nil {
		return nil, ErrEmptyMapping
	}
	if pattern == "" {
		return nil, ErrFuncWithoutPattern
	}
	re, err := compilePattern(pattern, true, opts)
	if err != nil {
		return nil, err
	}
	return scrub.NewUnifiedFunc(re, fn, extra), nil
}

// compilePattern turns one key or unifying pattern into a compiled regexp,
// applying the configured flags and boundary anchors.
func compilePattern(key string, isRegex bool, opts Options) (*regexp.Regexp, error) {
	expr := key
	if !isRegex {
		expr = regexp.QuoteMeta(expr)
	}

	if opts.WordBoundaries {
		if isRegex && anchored(key) {
			return nil, ErrBoundaryConflict
		}
		expr = `\b(?:` + expr + `)\b`
	}
	if opts.IgnoreCase {
		expr = `(?i)` + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern: %w", err)
	}
	return re, nil
}

// anchored reports whether a regex already pins its own edges, which would
// make an inserted \b wrapper unsatisfiable.
func anchored(expr string) bool {
	return strings.HasPrefix(expr, `\b`) || strings.HasSuffix(expr, `\b`) ||
		strings.HasPrefix(expr, "^") || strings.HasSuffix(expr, "$")
}
