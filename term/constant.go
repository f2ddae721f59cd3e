package term

import "github.com/lambdago/lambda/numeric"

// Constant wraps an immutable numeric.Value. Non-reducible, zero arity.
// Grounded on term.h's Constant<T> template, specialised here by
// numeric.Kind instead of a C++ template parameter per numeric's own doc
// comment.
type Constant struct {
	header Header
	value  numeric.Value
}

// NewConstant allocates a fresh, unborn Constant wrapping v. Callers
// should call Header().MarkBirth() once the term is reachable (mirroring
// Heap::alloc's unborn-then-old lifecycle in spec.md §3.1); gc.Heap.Register
// does this for every term it registers.
func NewConstant(v numeric.Value) *Constant {
	return &Constant{header: NewHeader(""), value: v}
}

func (c *Constant) Header() *Header { return &c.header }

func (c *Constant) Kind() Kind { return KindConstant }

func (c *Constant) Value() numeric.Value { return c.value }

// ReduceWillBlock is always false: a Constant cannot block.
func (c *Constant) ReduceWillBlock() bool { return false }

// Reduce returns the constant unchanged: Constants are always stuck.
func (c *Constant) Reduce(*Context) Term { return c }

func (c *Constant) FollowIndirection() Term { return c }

func (c *Constant) Children() []Term { return nil }
