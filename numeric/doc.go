// Package numeric implements the primitive value types that back
// term.Constant: signed integers, floats, complex numbers, arbitrary
// precision integers, and strings, plus the explicit type-promotion rules
// mixed-type arithmetic follows.
//
// Grounded on the Constant<T> type_t discriminator in
// original_source/include/lambda/term.h, dispatched the way the donor repo
// dispatches field types in github.com/joeycumines/logiface (a fixed set of
// kinds handled by a small switch, rather than host-language operator
// overloading per spec.md's DESIGN NOTES).
package numeric
