package workerpool

import (
	"fmt"
	"io"

	"github.com/lambdago/lambda/gc"
	"github.com/lambdago/lambda/term"
)

// dumpGraph writes an adjacency-list graph dump of every term reachable
// from any worker's root stack or eval stack (spec.md §6.3's "textual
// graph dump: adjacency list of terms with labels"), grounded on
// original_source/include/lambda/dot.h's dot_dump state.
func dumpGraph(w io.Writer, roots []*gc.RootStack, stacks []*term.Stack) {
	seen := make(map[term.Term]bool)
	var walk func(t term.Term)
	walk = func(t term.Term) {
		if t == nil || seen[t] {
			return
		}
		seen[t] = true
		fmt.Fprintf(w, "%q [label=%q kind=%q];\n", nodeID(t), t.Header().Label(), t.Kind().String())
		for _, c := range t.Children() {
			if c == nil {
				continue
			}
			fmt.Fprintf(w, "%q -> %q;\n", nodeID(t), nodeID(c))
			walk(c)
		}
	}

	fmt.Fprintln(w, "digraph lambda {")
	for _, rs := range roots {
		rs.Each(walk)
	}
	for _, st := range stacks {
		for _, f := range st.Frames() {
			walk(f.Term)
		}
	}
	fmt.Fprintln(w, "}")
}

func nodeID(t term.Term) string {
	return fmt.Sprintf("%p", t)
}
