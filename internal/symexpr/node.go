// Package symexpr implements the expression DAG: immutable, hash-consed
// nodes typed over the closed universe in internal/symtype, built only
// through smart constructors that apply bounded, sound peephole
// simplifications.
package symexpr

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/symexlang/symex/internal/symtype"
)

// Node is implemented by every expression DAG node. Every node carries
// its result type statically and a monotonically-assigned id used for
// memoisation and hash-consing.
type Node interface {
	ID() uint64
	Type() symtype.Type
	String() string
}

// base is embedded by every concrete node type and supplies ID()/Type().
type base struct {
	id  uint64
	typ symtype.Type
}

func (b *base) ID() uint64            { return b.id }
func (b *base) Type() symtype.Type    { return b.typ }
func (b *base) setID(id uint64)       { b.id = id }

type idSetter interface {
	setID(uint64)
}

// Builder owns one hash-consing table. The zero value is not usable; call
// NewBuilder. A process may use the package-level Default builder for
// convenience, or construct a private Builder per goroutine to avoid
// contending on the interning table's lock (intern serialises every
// insertion under the Builder's own mutex; a private Builder simply
// does not share that mutex).
type Builder struct {
	mu       sync.Mutex
	table    map[string]Node
	arbitraryCounter atomic.Uint64
}

// NewBuilder returns a fresh, empty Builder.
func NewBuilder() *Builder {
	return &Builder{table: make(map[string]Node)}
}

// Default is the process-wide builder used by the package-level smart
// constructors and by pkg/sym's combinator surface.
var Default = NewBuilder()

// intern returns the pre-existing node for key if one was already built,
// otherwise assigns n the next id, stores it under key, and returns n.
func (b *Builder) intern(key string, n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.table[key]; ok {
		return existing
	}
	if setter, ok := n.(idSetter); ok {
		setter.setID(uint64(len(b.table)) + 1)
	}
	b.table[key] = n
	return n
}

// freshID allocates an id without interning, used by Arbitrary
// construction (two Arbitrary nodes of the same type must never collapse
// into the same identity: "Arbitrary-as-identity"), by NewArgumentID and
// by FSeqCase nodes.
func (b *Builder) freshID() uint64 {
	const arbitraryIDBit = uint64(1) << 63
	return arbitraryIDBit | b.arbitraryCounter.Add(1)
}

// Size returns the number of distinct interned nodes, for diagnostics/tests.
func (b *Builder) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.table)
}

func keyf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
