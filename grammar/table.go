package grammar

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/atomic"
)

type tableKey struct {
	verb   string
	object string
}

// Table maps (verb, object) heads to their ordered matcher buckets.
// Registration order within a bucket defines the trial order at match time:
// earlier grammar rows take precedence on ambiguity. Construction is
// single-writer; after Seal the table is immutable and safe for concurrent
// lookups without locking.
type Table struct {
	buckets map[tableKey][]*Matcher
	size    int
	sealed  atomic.Bool
}

// NewTable returns an empty, unsealed table.
func NewTable() *Table {
	return &Table{buckets: make(map[tableKey][]*Matcher)}
}

// Register appends m to the bucket for its head, creating the bucket on first
// use. Registration after Seal fails.
func (t *Table) Register(m *Matcher) error {
	if t.sealed.Load() {
		return errors.New("grammar table already sealed")
	}
	k := tableKey{verb: strings.ToLower(m.Verb), object: strings.ToLower(m.Object)}
	t.buckets[k] = append(t.buckets[k], m)
	t.size++
	return nil
}

// Seal marks construction complete and publishes the table for reading.
func (t *Table) Seal() {
	t.sealed.Store(true)
}

// Lookup returns the ordered bucket for the head, nil when the head is
// unknown. The head is compared case-insensitively.
func (t *Table) Lookup(verb, object string) []*Matcher {
	return t.buckets[tableKey{verb: strings.ToLower(verb), object: strings.ToLower(object)}]
}

// Len returns the total number of registered matchers.
func (t *Table) Len() int {
	return t.size
}

// Verbs returns the distinct registered verbs, sorted.
func (t *Table) Verbs() []string {
	verbs := lo.Uniq(lo.Map(lo.Keys(t.buckets), func(k tableKey, _ int) string {
		return k.verb
	}))
	sort.Strings(verbs)
	return verbs
}

// Objects returns the distinct objects registered under verb, sorted.
func (t *Table) Objects(verb string) []string {
	verb = strings.ToLower(verb)
	var objects []string
	for k := range t.buckets {
		if k.verb == verb {
			objects = append(objects, k.object)
		}
	}
	sort.Strings(objects)
	return objects
}
