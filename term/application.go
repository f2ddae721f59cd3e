package term

import "sync/atomic"

// NonApplicableError is raised (via panic, recovered by the reduce driver)
// when an Application's fully-resolved head is neither a Function nor a
// Blackhole — e.g. applying arguments to a Constant. Corresponds to
// spec.md §7's ErrNonApplicable, a fatal diagnostic kind.
type NonApplicableError struct {
	Head Term
}

func (e NonApplicableError) Error() string {
	return "term: cannot apply arguments to a non-applicable term of kind " + e.Head.Kind().String()
}

// Application is the pair (f, a): "apply f to a". Carries an indirection
// field, initially nil, set at most once to the term the application
// reduced to (spec.md §3.1).
type Application struct {
	header Header
	fn     Term
	arg    Term

	indirection atomic.Pointer[Term]
}

// NewApplication builds a fresh, unborn Application node representing
// fn applied to arg. A chain of single-argument applications forms the
// left-leaning spine a saturated call walks to collect its arguments
// (spec.md §4.2).
func NewApplication(fn, arg Term) *Application {
	return &Application{header: NewHeader(""), fn: fn, arg: arg}
}

func (a *Application) Header() *Header { return &a.header }

func (a *Application) Kind() Kind { return KindApplication }

func (a *Application) FollowIndirection() Term {
	if p := a.indirection.Load(); p != nil {
		return *p
	}
	return a
}

func (a *Application) Children() []Term {
	if p := a.indirection.Load(); p != nil {
		return []Term{*p}
	}
	return []Term{a.fn, a.arg}
}

// spine walks the left-leaning chain of Applications rooted at a,
// collecting arguments outside-in (so args[0] is the first argument
// supplied to the eventual head) and following indirection at each hop.
// It stops at the first non-Application term, the "head".
func spine(a *Application) (head Term, args []Term) {
	var stack []Term
	cur := Term(a)
	for {
		app, ok := cur.(*Application)
		if !ok {
			break
		}
		stack = append(stack, app.arg)
		cur = FollowFullIndirection(app.fn)
	}
	args = make([]Term, len(stack))
	for i, v := range stack {
		args[len(stack)-1-i] = v
	}
	return cur, args
}

// ReduceWillBlock reports true if this application's head, once resolved,
// is a Blackhole currently in the calculating state — reducing would have
// to wait.
func (a *Application) ReduceWillBlock() bool {
	if p := a.indirection.Load(); p != nil {
		return false
	}
	head, _ := spine(a)
	if bh, ok := head.(*Blackhole); ok {
		return bh.cell.State().String() == "calculating"
	}
	return false
}

// Reduce implements spec.md §4.3's Application branch: follow any set
// indirection; resolve the head of the application spine (forcing a
// Blackhole head first, per §4.4's "applying arguments to a Blackhole
// reduces it first"); if under-saturated, the node is stuck; if exactly
// saturated, invoke the function and cache the result; if over-saturated,
// splice the surplus arguments into a new application of the result.
func (a *Application) Reduce(ctx *Context) Term {
	if p := a.indirection.Load(); p != nil {
		return *p
	}

	head, args := spine(a)
	for {
		bh, ok := head.(*Blackhole)
		if !ok {
			break
		}
		head = bh.Reduce(ctx)
	}

	fn, ok := head.(*Function)
	if !ok {
		panic(NonApplicableError{Head: head})
	}

	arity := fn.Arity()
	if len(args) < arity {
		return a
	}

	result := fn.ReduceApply(ctx, args[:arity])
	if len(args) > arity {
		for _, extra := range args[arity:] {
			result = NewApplication(result, extra)
		}
	}
	result.Header().SetGlobal()

	if a.indirection.CompareAndSwap(nil, &result) {
		return result
	}
	return *a.indirection.Load()
}
