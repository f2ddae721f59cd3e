// Package lambdalib provides the minimal standard-library combinators
// cmd/lambda needs to hand the process's arguments to a program as a
// lazy list, grounded on original_source/include/lambda/lib.h's
// Church-encoded tuple/front/end/head/tail/isempty combinators (lib.h
// lines ~571-576: `front(t)(list) = tuple(t)(list)`, `end` a reserved
// sentinel). A tuple(a, b) is the selector combinator λs. s(a)(b); head
// and tail apply it to the two projection selectors.
package lambdalib

import (
	"github.com/lambdago/lambda/engine"
	"github.com/lambdago/lambda/numeric"
	"github.com/lambdago/lambda/term"
)

// end is the reserved empty-list sentinel: a Constant wrapping a marker
// string value, stuck under Reduce and reference-comparable, so it can
// never be confused with a program's own computed result.
var end = globalConstant()

func globalConstant() *term.Constant {
	c := term.NewConstant(numeric.String("()"))
	c.Header().SetGlobal()
	return c
}

// End is the empty list.
func End() term.Term { return end }

// IsEmpty reports whether list, once forced, is the End sentinel.
func IsEmpty(e *engine.Engine, list term.Term) bool {
	return e.Eval(list, term.ModeForced) == term.Term(end)
}

var (
	fst = term.NewFunction("fst", 2, func(_ *term.Context, args []term.Term) term.Term { return args[0] })
	snd = term.NewFunction("snd", 2, func(_ *term.Context, args []term.Term) term.Term { return args[1] })
)

// Cons builds front(head)(tail): the selector-combinator pair
// λs. s(head)(tail), one fresh closure per call since it captures head
// and tail by reference (spec.md §4.2's closures-over-HostFunc idiom).
func Cons(head, tail term.Term) term.Term {
	return term.NewFunction("cons", 1, func(_ *term.Context, args []term.Term) term.Term {
		sel := args[0]
		return term.NewApplication(term.NewApplication(sel, head), tail)
	})
}

// Head applies list to the fst selector and evaluates at ModeNormal, so
// the selected first element is itself reduced until it is stuck before
// being returned.
func Head(e *engine.Engine, list term.Term) term.Term {
	return e.Eval(term.NewApplication(list, fst), term.ModeNormal)
}

// Tail is Head's counterpart, returning the rest of the list.
func Tail(e *engine.Engine, list term.Term) term.Term {
	return e.Eval(term.NewApplication(list, snd), term.ModeNormal)
}

// FromInts builds the lazy list [v0, v1, ..., vn-1] right-to-left
// (mirroring lib.h's convargs loop building from argv[argc-1] down to
// argv[0], terminated by end), wrapping each value as a Constant.
func FromInts(vals []int64) term.Term {
	list := End()
	for i := len(vals) - 1; i >= 0; i-- {
		list = Cons(term.NewConstant(numeric.Int(vals[i])), list)
	}
	return term.Globalize(list)
}
