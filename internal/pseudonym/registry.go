// Unless explicitly stated otherwise all files in this repository are licensed under the Apache-2 License.

// Package pseudonym generates and remembers replacement codes on the fly.
// Where a static mapping lists every keyword up front, a Registry mints a
// pseudonym the first time a string is seen and returns the same pseudonym
// on every later occurrence, keeping the output internally consistent.
package pseudonym

import (
	// stdlib
	"sync"

	// 3p
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	// project
	"github.com/treescrub/treescrub/internal/scrub"
)

// Generator produces a pseudonym for an original string. It must be
// deterministic or collision-free enough for the caller's purposes; the
// Registry only warns on duplicates, it does not reject them.
type Generator func(original string) string

// Entry is one recorded original-to-pseudonym association.
type Entry struct {
	Original  string
	Pseudonym string
}

// Registry memoizes pseudonyms. It is safe for concurrent use, so a single
// Registry can back the rule set shared by parallel top-level walks.
type Registry struct {
	mu       sync.Mutex
	generate Generator
	entries  []Entry
	byOrig   map[string]string
	seen     map[string]bool
	logger   *log.Entry
}

// New creates a Registry. A nil generator falls back to random UUIDs.
func New(generate Generator, logger *log.Entry) *Registry {
	if generate == nil {
		generate = func(string) string { return uuid.NewString() }
	}
	return &Registry{
		generate: generate,
		byOrig:   make(map[string]string),
		seen:     make(map[string]bool),
		logger:   logger,
	}
}

// Resolve returns the pseudonym for original, minting one on first sight.
func (r *Registry) Resolve(original string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pseudonym, ok := r.byOrig[original]; ok {
		return pseudonym
	}

	pseudonym := r.generate(original)
	if r.seen[pseudonym] {
		r.logger.WithField("pseudonym", pseudonym).Warning("Generator produced a duplicate pseudonym")
	}
	r.seen[pseudonym] = true
	r.byOrig[original] = pseudonym
	r.entries = append(r.entries, Entry{Original: original, Pseudonym: pseudonym})
	return pseudonym
}

// ReplaceFunc adapts the Registry to the rule-set callable contract, so it
// can be compiled together with a unifying pattern.
func (r *Registry) ReplaceFunc() scrub.ReplaceFunc {
	return func(match string, _ map[string]string) string {
		return r.Resolve(match)
	}
}

// Table returns the recorded associations in first-seen order.
func (r *Registry) Table() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}
