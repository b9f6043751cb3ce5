// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

package scrub

// Applier substitutes text. RuleSet is the canonical implementation; Chain
// composes several into one.
type Applier interface {
	Apply(text string) string
}

// Chain applies each element in order, feeding one's output to the next.
// Like sequential rules, an earlier element's replacement is visible to the
// elements after it.
type Chain []Applier

// Apply runs the whole chain over text.
func (c Chain) Apply(text string) string {
	for _, a := range c {
		text = a.Apply(text)
	}
	return text
}
