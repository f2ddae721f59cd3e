package numeric

import (
	"fmt"
	"math/big"
)

// Kind discriminates the primitive payload of a Constant, mirroring
// Term::type_t's {type_int, type_float, type_complex, type_mpz, type_string}
// in original_source/include/lambda/term.h.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindComplex
	KindBigInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	case KindBigInt:
		return "mpz"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is the immutable payload wrapped by a Constant term. The zero Value
// is the integer 0.
type Value struct {
	kind Kind
	i    int64
	f    float64
	c    complex128
	z    *big.Int
	s    string
}

func Int(i int64) Value         { return Value{kind: KindInt, i: i} }
func Float(f float64) Value     { return Value{kind: KindFloat, f: f} }
func Complex(c complex128) Value { return Value{kind: KindComplex, c: c} }
func BigInt(z *big.Int) Value   { return Value{kind: KindBigInt, z: new(big.Int).Set(z)} }
func String(s string) Value     { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int() int64       { return v.i }
func (v Value) Float() float64   { return v.f }
func (v Value) Complex() complex128 { return v.c }
func (v Value) BigInt() *big.Int { return v.z }
func (v Value) Str() string      { return v.s }

// String renders the value for diagnostics and trace dumps.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return formatFloat(v.f)
	case KindComplex:
		return fmt.Sprintf("%v", v.c)
	case KindBigInt:
		return v.z.String()
	case KindString:
		return v.s
	default:
		return "<unknown>"
	}
}

// rank orders kinds for promotion: a binary op promotes both operands to the
// higher-ranked kind. String never mixes with anything else.
func (k Kind) rank() int {
	switch k {
	case KindInt:
		return 0
	case KindBigInt:
		return 1
	case KindFloat:
		return 2
	case KindComplex:
		return 3
	default:
		return -1
	}
}

// ErrIncompatible is returned by arithmetic/comparison on values that cannot
// be promoted to a common kind (e.g. string mixed with anything, or either
// side being a string in an arithmetic context).
type ErrIncompatible struct {
	A, B Kind
	Op   string
}

func (e ErrIncompatible) Error() string {
	return fmt.Sprintf("numeric: cannot apply %s to %s and %s", e.Op, e.A, e.B)
}

// Promote converts a and b to a common Kind, following the explicit
// conversion rules named in spec.md §4.2 and §9 ("int + bigint → bigint,
// int + float → float"): the operand with the lower rank is converted up to
// the higher-ranked operand's Kind. Strings never promote.
func Promote(a, b Value) (Value, Value, error) {
	if a.kind == KindString || b.kind == KindString {
		if a.kind != b.kind {
			return a, b, ErrIncompatible{a.kind, b.kind, "promote"}
		}
		return a, b, nil
	}
	ra, rb := a.kind.rank(), b.kind.rank()
	if ra < 0 || rb < 0 {
		return a, b, ErrIncompatible{a.kind, b.kind, "promote"}
	}
	target := a.kind
	if rb > ra {
		target = b.kind
	}
	a2, err := convert(a, target)
	if err != nil {
		return a, b, err
	}
	b2, err := convert(b, target)
	if err != nil {
		return a, b, err
	}
	return a2, b2, nil
}

func convert(v Value, to Kind) (Value, error) {
	if v.kind == to {
		return v, nil
	}
	switch to {
	case KindBigInt:
		switch v.kind {
		case KindInt:
			return BigInt(big.NewInt(v.i)), nil
		}
	case KindFloat:
		switch v.kind {
		case KindInt:
			return Float(float64(v.i)), nil
		case KindBigInt:
			f := new(big.Float).SetInt(v.z)
			f64, _ := f.Float64()
			return Float(f64), nil
		}
	case KindComplex:
		switch v.kind {
		case KindInt:
			return Complex(complex(float64(v.i), 0)), nil
		case KindBigInt:
			f := new(big.Float).SetInt(v.z)
			f64, _ := f.Float64()
			return Complex(complex(f64, 0)), nil
		case KindFloat:
			return Complex(complex(v.f, 0)), nil
		}
	}
	return v, ErrIncompatible{v.kind, to, "convert"}
}

func formatFloat(f float64) string {
	rat := new(big.Rat).SetFloat64(f)
	if rat == nil {
		return fmt.Sprintf("%v", f)
	}
	return FormatRat(rat)
}
