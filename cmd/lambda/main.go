// Command lambda is the process surface described by spec.md §6.2: it
// converts its arguments into a lazy list of integers, hands that list to
// a program, and exits with the program's integer result modulo 256 (or
// 128+SIGINT if interrupted). Grounded on
// original_source/include/lambda/lib.h's main()/convargs(), adapted to
// engine's Go API instead of C++ macros.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/lambdago/lambda/engine"
	"github.com/lambdago/lambda/lambdalib"
	"github.com/lambdago/lambda/numeric"
	"github.com/lambdago/lambda/term"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(rawArgs []string) int {
	cfg := engine.Config{}.FromEnv()
	e := engine.New(cfg)
	e.Start()
	defer e.Shutdown()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGINT)
	defer signal.Stop(sigCh)

	interrupted := make(chan struct{})
	go func() {
		<-sigCh
		e.Halt()
		close(interrupted)
	}()

	args := lambdalib.FromInts(parseArgs(rawArgs))
	program := sumProgram(e)
	result := e.Apply(program, args)

	resultCh := make(chan struct {
		v   numeric.Value
		err error
	}, 1)
	go func() {
		v, err := e.Compute(result)
		resultCh <- struct {
			v   numeric.Value
			err error
		}{v, err}
	}()

	select {
	case <-interrupted:
		return 128 + int(unix.SIGINT)
	case r := <-resultCh:
		if r.err != nil {
			fmt.Fprintln(os.Stderr, r.err)
			return 1
		}
		return int(((r.v.Int() % 256) + 256) % 256)
	}
}

func parseArgs(raw []string) []int64 {
	vals := make([]int64, len(raw))
	for i, s := range raw {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			n = 0
		}
		vals[i] = n
	}
	return vals
}

// sumProgram builds a recursive sum-over-lazy-list function: sum(list) =
// isempty(list) ? 0 : head(list) + sum(tail(list)). A minimal stand-in
// program's main, demonstrating compute() over the lazy argument list
// this entry point constructs (spec.md §6.2).
func sumProgram(e *engine.Engine) term.Term {
	var self *term.Function
	self = term.NewFunction("sum", 1, func(ctx *term.Context, args []term.Term) term.Term {
		list := args[0]
		if lambdalib.IsEmpty(e, list) {
			return e.Constant(numeric.Int(0))
		}
		head := lambdalib.Head(e, list)
		tail := lambdalib.Tail(e, list)
		rest := e.Eval(e.Apply(self, tail), term.ModeForced)
		return e.Apply(e.Apply(addFn(), head), rest)
	})
	return self
}

func addFn() term.Term {
	return term.NewFunction("add", 2, func(_ *term.Context, args []term.Term) term.Term {
		a := args[0].(*term.Constant).Value()
		b := args[1].(*term.Constant).Value()
		sum, err := numeric.Add(a, b)
		if err != nil {
			panic(err)
		}
		return term.NewConstant(sum)
	})
}
