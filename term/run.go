package term

// Run drives ctx.Stack from its current top down to (and including) the
// frame that was at depth floor+1 when Run was called, implementing the
// iterative FullReduce loop from spec.md §4.3 (itself transcribed near
// verbatim from original_source/include/lambda/term.h's FullReduce,
// including the "halting" flag that propagates eval_halt down every
// non-catch frame once raised).
//
// Run returns the final term the root frame (the one at depth floor+1)
// reduced to. Run may be entered reentrantly on the same Stack (e.g. a
// HostFunc calling FullReduce on the Context it was given) since each call
// tracks its own floor independently; the Stack is shared but that is
// exactly the explicit-stack discipline spec.md describes. Blackhole.Reduce
// is the exception: it drives its wrapped term on a private Stack.
func Run(ctx *Context, floor int) Term {
	halting := false
	var rootResult Term

	for ctx.Stack.Len() > floor {
		frame := ctx.Stack.Top()
		atRoot := ctx.Stack.Len() == floor+1

		if halting && frame.Mode != ModeCatch {
			frame.Mode = ModeHalt
		}

		switch frame.Mode {
		case ModeStop:
			if atRoot {
				rootResult = frame.Term
			}
			ctx.Stack.Pop()

		case ModeCatch, ModeNormal, ModeStressed:
			if frame.Term.ReduceWillBlock() {
				if atRoot {
					rootResult = frame.Term
				}
				ctx.Stack.Pop()
				continue
			}
			fallthrough

		case ModeForced:
			before := ctx.Stack.Len()
			t := frame.Term
			r := t.Reduce(ctx)
			switch {
			case r != t:
				frame.Term = r
			case ctx.Stack.Len() > before:
				// t.Reduce pushed new frames (e.g. an under-resolved
				// Application head); let the loop pick those up.
			case frame.Mode == ModeHalt:
				// keep halting on the next iteration
			default:
				if atRoot {
					rootResult = frame.Term
				}
				ctx.Stack.Pop()
			}

		case ModeHalt:
			if atRoot {
				rootResult = frame.Term
			}
			ctx.Stack.Pop()
			halting = true
		}
	}

	return rootResult
}

// FullReduce pushes t with the given mode and drives it to a fixed point,
// returning the resulting term. This is the entry point worker loops call
// once per popped work-queue item (forced mode), and what combinators like
// lazy/block/stop/catch use internally at other modes.
func FullReduce(ctx *Context, t Term, mode Mode) Term {
	floor := ctx.Stack.Floor()
	ctx.Stack.Push(EvalFrame{Term: t, Mode: mode})
	return Run(ctx, floor)
}
