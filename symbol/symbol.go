// Package symbol manages interned strings. Identifiers and literal
// lexemes are deduped into a table and represented as small integers,
// so equality checks downstream are integer compares.
package symbol

import (
	"sync"
	"sync/atomic"

	"github.com/grailbio/base/log"

	"github.com/QPC-github/fathom/hash"
)

// ID represents an interned string. IDs are dense: the Nth distinct
// string interned in a table gets ID N.
type ID int32

// Invalid is a sentinel. Its name is "(invalid)", and interning that
// string returns Invalid, so names and IDs stay one-to-one.
const Invalid = ID(0)

const invalidName = "(invalid)"

type idInfo struct {
	name string
	hash hash.Hash
}

// Table is an intern table. One table is typically shared by all
// parses in a compilation so that IDs stay comparable across modules.
//
// Interning is guarded by the mutex. Readers resolve IDs through an
// atomically published snapshot of the ID array, so Name and Hash
// take no lock.
type Table struct {
	mu   sync.Mutex
	syms map[string]ID
	ids  atomic.Pointer[[]idInfo]
}

// NewTable creates an empty intern table. ID 0 is pre-bound to the
// invalid sentinel.
func NewTable() *Table {
	const capacity = 1024
	t := &Table{syms: make(map[string]ID, capacity)}
	ids := make([]idInfo, 1, capacity)
	ids[0] = idInfo{invalidName, hash.String(invalidName)}
	t.syms[invalidName] = Invalid
	t.ids.Store(&ids)
	return t
}

// Intern finds or creates an ID for the given string.
//
// REQUIRES: v != "".
func (t *Table) Intern(v string) ID {
	if v == "" {
		log.Panicf("symbol: interning empty string")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.syms[v]; ok {
		return id
	}
	ids := *t.ids.Load()
	id := ID(len(ids))
	// Copy-on-write so concurrent readers never observe a partially
	// initialized entry.
	newIDs := make([]idInfo, len(ids)+1)
	copy(newIDs, ids)
	newIDs[id] = idInfo{v, hash.String(v)}
	t.ids.Store(&newIDs)
	t.syms[v] = id
	return id
}

// Name returns the string interned under id. It crashes the process
// on an ID not issued by this table.
func (t *Table) Name(id ID) string {
	ids := *t.ids.Load()
	if id < 0 || int(id) >= len(ids) {
		log.Panicf("symbol: id %d not found (table has %d entries)", id, len(ids))
	}
	return ids[id].name
}

// Hash returns the precomputed hash of the string interned under id.
func (t *Table) Hash(id ID) hash.Hash {
	ids := *t.ids.Load()
	if id < 0 || int(id) >= len(ids) {
		log.Panicf("symbol: id %d not found (table has %d entries)", id, len(ids))
	}
	return ids[id].hash
}

// Len returns the number of entries, including the invalid sentinel.
func (t *Table) Len() int {
	return len(*t.ids.Load())
}
