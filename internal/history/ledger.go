// Package history keeps the bounded, newest-first log of calculations made in
// one session.
package history

import (
	"math"
	"strconv"
	"strings"
)

// DefaultCapacity is the number of entries a ledger keeps.
const DefaultCapacity = 10

// Record is one successful calculation. Records are values and never change
// after creation.
type Record struct {
	Expression string
	Result     float64
}

// String renders the record as "{expression} = {result}".
func (r Record) String() string {
	return r.Expression + " = " + FormatNumber(r.Result)
}

// Ledger is a capped newest-first sequence of records. It is not safe for
// concurrent use; the owning session serialises access.
type Ledger struct {
	entries  []Record
	capacity int
}

// NewLedger returns an empty ledger holding at most capacity entries.
// A non-positive capacity selects DefaultCapacity; larger values are
// clamped to it.
func NewLedger(capacity int) *Ledger {
	if capacity <= 0 || capacity > DefaultCapacity {
		capacity = DefaultCapacity
	}
	return &Ledger{
		entries:  make([]Record, 0, capacity),
		capacity: capacity,
	}
}

// Record prepends a new entry and evicts the oldest ones beyond capacity.
func (l *Ledger) Record(expression string, result float64) Record {
	rec := Record{Expression: expression, Result: result}

	keep := len(l.entries)
	if keep >= l.capacity {
		keep = l.capacity - 1
	}

	next := make([]Record, 0, l.capacity)
	next = append(next, rec)
	next = append(next, l.entries[:keep]...)
	l.entries = next

	return rec
}

// Clear removes every entry.
func (l *Ledger) Clear() {
	l.entries = l.entries[:0]
}

// List returns a copy of the entries, newest first.
func (l *Ledger) List() []Record {
	out := make([]Record, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int { return len(l.entries) }

func (l *Ledger) Cap() int { return l.capacity }

// FormatNumber renders f using the shortest representation that round-trips,
// always keeping a decimal point for values printed in positional notation
// ("4.0", "0.1", "1e+16", "nan", "inf").
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
