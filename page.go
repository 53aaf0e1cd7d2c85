package seekpage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Entry is one (value, identifier) pair of a page, in the order the source
// returned it.
type Entry struct {
	Value string
	ID    string
}

// Display renders the entry as "value-id". The rendering exists for
// human-readable verification and logging; ordering never depends on it.
func (e Entry) Display() string {
	return e.Value + "-" + e.ID
}

// Page is one bounded, ordered window of a scan: its entries plus the two
// boundary tokens. A Page is built atomically by one FetchPage call and is
// immutable afterward; Reverse returns a new Page and never mutates the
// receiver.
type Page struct {
	entries  []Entry
	backward *Token
	forward  *Token
}

// NewPage builds a page from entries and its boundary tokens. backward
// resumes a scan before the first entry, forward after the last one.
func NewPage(entries []Entry, backward, forward *Token) Page {
	return Page{
		entries:  slices.Clone(entries),
		backward: backward,
		forward:  forward,
	}
}

// Entries returns a copy of the page content in scan order.
func (p Page) Entries() []Entry {
	return slices.Clone(p.entries)
}

// Len returns the number of entries on the page.
func (p Page) Len() int {
	return len(p.entries)
}

// IsEmpty reports whether the page holds no entries. Empty pages carry nil
// boundary tokens.
func (p Page) IsEmpty() bool {
	return len(p.entries) == 0
}

// First returns the first content entry, if any.
func (p Page) First() (Entry, bool) {
	if p.IsEmpty() {
		return Entry{}, false
	}

	return p.entries[0], true
}

// Last returns the last content entry, if any.
func (p Page) Last() (Entry, bool) {
	if p.IsEmpty() {
		return Entry{}, false
	}

	return p.entries[len(p.entries)-1], true
}

// Forward returns the token that resumes the scan immediately after the last
// entry. Nil for an empty page.
func (p Page) Forward() *Token {
	return p.forward
}

// Backward returns the token that resumes a scan immediately before the
// first entry. It is valid as a start position only under the fully
// direction-reversed SortSpec. Nil for an empty page.
func (p Page) Backward() *Token {
	return p.backward
}

// Reverse maps a page fetched under a reversed spec back into the opposite
// sequence order for equivalence comparison. Entries are reversed and the
// boundary tokens swap roles; no token value is recomputed, since the
// backward boundary of a page is exactly the forward boundary of the same
// logical page under the reversed spec.
//
// Reverse of an empty page is the page itself.
func (p Page) Reverse() Page {
	entries := slices.Clone(p.entries)
	slices.Reverse(entries)

	return Page{
		entries:  entries,
		backward: p.forward,
		forward:  p.backward,
	}
}

// Equal reports whether two pages hold identical content: same values, same
// identifiers, same order. Boundary tokens are NOT part of the contract;
// their encodings may differ across directions while denoting the same
// logical position.
func (p Page) Equal(other Page) bool {
	return slices.Equal(p.entries, other.entries)
}

// String formats the page for debugging: the entry displays plus the labels
// of the boundary tokens.
func (p Page) String() string {
	displays := lo.Map(p.entries, func(e Entry, _ int) string {
		return e.Display()
	})

	return fmt.Sprintf("content: [%s]\nprev: %s\nnext: %s",
		strings.Join(displays, ", "), p.backward.Label(), p.forward.Label())
}

var _ fmt.Stringer = Page{}
