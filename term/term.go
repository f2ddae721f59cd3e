// Package term implements the term graph: the tagged sum of Constant,
// Function, Application, and Blackhole variants, their indirection-on-
// reduce protocol, and the explicit per-worker evaluation stack that drives
// reduction.
//
// The donor source's Term class hierarchy (original_source's deep
// polymorphism across Term subclasses) is re-architected per spec.md's
// DESIGN NOTES §9 as a small interface (Go's vtable) implemented by four
// concrete struct types, with Global/Static represented as Header
// bit-flags rather than wrapper types — the same flattening
// github.com/joeycumines/logiface uses for its Event option bits instead
// of a type per combination.
package term

// Kind discriminates the four Term variants.
type Kind uint8

const (
	KindConstant Kind = iota
	KindFunction
	KindApplication
	KindBlackhole
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindFunction:
		return "function"
	case KindApplication:
		return "application"
	case KindBlackhole:
		return "blackhole"
	default:
		return "unknown"
	}
}

// Term is the vtable shared by every variant (spec.md §9: "a small vtable
// of operations {reduce, reduceApply, followIndirection, markActive,
// globalize, dotFollow, getType}").
type Term interface {
	// Header returns the shared life-state/global/static bookkeeping cell.
	Header() *Header

	// Kind reports which variant this term is (getType in the donor
	// vtable).
	Kind() Kind

	// ReduceWillBlock reports whether reducing this term would have to
	// block on a Blackhole in calculating state, without performing any
	// work. Used by catch/normal/stressed frames to decide whether to pop
	// immediately (spec.md §4.3).
	ReduceWillBlock() bool

	// Reduce performs one step of reduction given the current evaluation
	// context (which carries the per-worker Stack, so an Application's
	// Reduce may push new frames). It returns the term unchanged when
	// stuck (non-reducible at this point), or a new term representing
	// progress.
	Reduce(ctx *Context) Term

	// FollowIndirection returns the single-step indirection target, or
	// itself if none is set. Callers chase to a fixed point via
	// FollowFullIndirection.
	FollowIndirection() Term

	// Children returns the term's immediate graph children, used by both
	// the collector's marking worklist and dot-trace dumps (markActive and
	// dotFollow share one traversal in this implementation).
	Children() []Term
}

// FollowFullIndirection chases t's indirection chain to a fixed point, per
// spec.md invariant 4 and 7: chains are acyclic and terminate at a term
// whose own indirection is null.
func FollowFullIndirection(t Term) Term {
	for {
		n := t.FollowIndirection()
		if n == t || n == nil {
			return t
		}
		t = n
	}
}
