package term

import "sync/atomic"

// HostFunc is a host-language procedure of known arity, invoked once its
// arguments have all been supplied. It returns the resulting Term, which
// the caller is responsible for marking global if it escapes the current
// worker (see Globalize).
type HostFunc func(ctx *Context, args []Term) Term

// Function is a reference to a HostFunc with arity in {0,1,2,3,4,5}.
// Global by construction (spec.md §3.1: "Global by construction"); may
// hold an indirection to its computed 0-arity result.
type Function struct {
	header Header
	arity  int
	label  string
	fn     HostFunc

	indirection atomic.Pointer[Term]
}

// NewFunction constructs a Function of the given arity and label, wired to
// fn. The term is born global per spec.md §3.1.
func NewFunction(label string, arity int, fn HostFunc) *Function {
	if arity < 0 || arity > 5 {
		panic("term: function arity must be in 0..5")
	}
	f := &Function{header: NewHeader(label), arity: arity, label: label, fn: fn}
	f.header.SetGlobal()
	return f
}

func (f *Function) Header() *Header { return &f.header }

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) Arity() int { return f.arity }

func (f *Function) Label() string { return f.label }

// ReduceWillBlock is false: a bare Function reference never blocks (any
// blocking happens inside an Application once the function is applied and
// its result turns out to be, or depend on, a Blackhole).
func (f *Function) ReduceWillBlock() bool { return false }

// Reduce implements the Function branch of spec.md §4.3: follow any set
// indirection; for a 0-arity function, invoke the host function once and
// cache the (globalized) result; otherwise the bare reference is stuck.
func (f *Function) Reduce(ctx *Context) Term {
	if p := f.indirection.Load(); p != nil {
		return *p
	}
	if f.arity != 0 {
		return f
	}
	result := f.fn(ctx, nil)
	result.Header().SetGlobal()
	// CAS against nil: losing the race means discarding our result and
	// reading the winner's, a harmless duplicate computation per
	// spec.md's indirection update policy.
	if f.indirection.CompareAndSwap(nil, &result) {
		return result
	}
	return *f.indirection.Load()
}

func (f *Function) FollowIndirection() Term {
	if p := f.indirection.Load(); p != nil {
		return *p
	}
	return f
}

func (f *Function) Children() []Term {
	if p := f.indirection.Load(); p != nil {
		return []Term{*p}
	}
	return nil
}

// ReduceApply invokes the host function with exactly Arity() arguments
// (the caller, Application.Reduce, is responsible for collecting the
// correct count from the chain of pending applications).
func (f *Function) ReduceApply(ctx *Context, args []Term) Term {
	return f.fn(ctx, args)
}
