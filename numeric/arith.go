package numeric

import (
	"fmt"
	"math/big"
)

// Add, Sub, Mul, Div, Mod implement the arithmetic primitives a Function
// term wraps (spec.md §4.2's "primitive functions operate on Constant
// payloads after promotion"). Each promotes its operands to a common Kind
// before dispatching; String operands are rejected.

func Add(a, b Value) (Value, error) { return binop(a, b, "+") }
func Sub(a, b Value) (Value, error) { return binop(a, b, "-") }
func Mul(a, b Value) (Value, error) { return binop(a, b, "*") }
func Div(a, b Value) (Value, error) { return binop(a, b, "/") }
func Mod(a, b Value) (Value, error) { return binop(a, b, "%") }

func binop(a, b Value, op string) (Value, error) {
	if a.kind == KindString || b.kind == KindString {
		return Value{}, ErrIncompatible{a.kind, b.kind, op}
	}
	pa, pb, err := Promote(a, b)
	if err != nil {
		return Value{}, err
	}
	switch pa.kind {
	case KindInt:
		return intOp(pa.i, pb.i, op)
	case KindBigInt:
		return bigIntOp(pa.z, pb.z, op)
	case KindFloat:
		return floatOp(pa.f, pb.f, op)
	case KindComplex:
		return complexOp(pa.c, pb.c, op)
	default:
		return Value{}, ErrIncompatible{a.kind, b.kind, op}
	}
}

func intOp(x, y int64, op string) (Value, error) {
	switch op {
	case "+":
		return Int(x + y), nil
	case "-":
		return Int(x - y), nil
	case "*":
		return Int(x * y), nil
	case "/":
		if y == 0 {
			return Value{}, fmt.Errorf("numeric: integer division by zero")
		}
		return Int(x / y), nil
	case "%":
		if y == 0 {
			return Value{}, fmt.Errorf("numeric: integer modulo by zero")
		}
		return Int(x % y), nil
	}
	return Value{}, fmt.Errorf("numeric: unknown op %q", op)
}

func bigIntOp(x, y *big.Int, op string) (Value, error) {
	z := new(big.Int)
	switch op {
	case "+":
		return BigInt(z.Add(x, y)), nil
	case "-":
		return BigInt(z.Sub(x, y)), nil
	case "*":
		return BigInt(z.Mul(x, y)), nil
	case "/":
		if y.Sign() == 0 {
			return Value{}, fmt.Errorf("numeric: integer division by zero")
		}
		return BigInt(z.Quo(x, y)), nil
	case "%":
		if y.Sign() == 0 {
			return Value{}, fmt.Errorf("numeric: integer modulo by zero")
		}
		return BigInt(z.Rem(x, y)), nil
	}
	return Value{}, fmt.Errorf("numeric: unknown op %q", op)
}

func floatOp(x, y float64, op string) (Value, error) {
	switch op {
	case "+":
		return Float(x + y), nil
	case "-":
		return Float(x - y), nil
	case "*":
		return Float(x * y), nil
	case "/":
		return Float(x / y), nil
	case "%":
		return Value{}, fmt.Errorf("numeric: modulo not defined for float")
	}
	return Value{}, fmt.Errorf("numeric: unknown op %q", op)
}

func complexOp(x, y complex128, op string) (Value, error) {
	switch op {
	case "+":
		return Complex(x + y), nil
	case "-":
		return Complex(x - y), nil
	case "*":
		return Complex(x * y), nil
	case "/":
		return Complex(x / y), nil
	case "%":
		return Value{}, fmt.Errorf("numeric: modulo not defined for complex")
	}
	return Value{}, fmt.Errorf("numeric: unknown op %q", op)
}

// Cmp returns -1, 0, or 1 comparing a and b after promotion. Complex values
// support only equality (spec.md's ordering predicates are undefined on
// complex), returning an error from any other comparison.
func Cmp(a, b Value) (int, error) {
	pa, pb, err := Promote(a, b)
	if err != nil {
		return 0, err
	}
	switch pa.kind {
	case KindInt:
		switch {
		case pa.i < pb.i:
			return -1, nil
		case pa.i > pb.i:
			return 1, nil
		default:
			return 0, nil
		}
	case KindBigInt:
		return pa.z.Cmp(pb.z), nil
	case KindFloat:
		switch {
		case pa.f < pb.f:
			return -1, nil
		case pa.f > pb.f:
			return 1, nil
		default:
			return 0, nil
		}
	case KindComplex:
		if pa.c == pb.c {
			return 0, nil
		}
		return 0, fmt.Errorf("numeric: complex values are not ordered")
	case KindString:
		switch {
		case pa.s < pb.s:
			return -1, nil
		case pa.s > pb.s:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, ErrIncompatible{a.kind, b.kind, "cmp"}
	}
}

// Eq reports whether a and b compare equal after promotion.
func Eq(a, b Value) (bool, error) {
	if a.kind == KindComplex || b.kind == KindComplex {
		pa, pb, err := Promote(a, b)
		if err != nil {
			return false, err
		}
		return pa.c == pb.c, nil
	}
	c, err := Cmp(a, b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}
