package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromote_IntBigInt(t *testing.T) {
	a, b, err := Promote(Int(3), BigInt(big.NewInt(5)))
	require.NoError(t, err)
	assert.Equal(t, KindBigInt, a.Kind())
	assert.Equal(t, KindBigInt, b.Kind())
	assert.Equal(t, big.NewInt(3), a.BigInt())
}

func TestPromote_IntFloat(t *testing.T) {
	a, b, err := Promote(Int(2), Float(1.5))
	require.NoError(t, err)
	assert.Equal(t, KindFloat, a.Kind())
	assert.Equal(t, 2.0, a.Float())
	assert.Equal(t, 1.5, b.Float())
}

func TestPromote_StringRejectsNonString(t *testing.T) {
	_, _, err := Promote(String("x"), Int(1))
	require.Error(t, err)
	var incompat ErrIncompatible
	require.ErrorAs(t, err, &incompat)
}

func TestPromote_StringWithString(t *testing.T) {
	a, b, err := Promote(String("x"), String("y"))
	require.NoError(t, err)
	assert.Equal(t, "x", a.Str())
	assert.Equal(t, "y", b.Str())
}

func TestAdd_IntPromotesToBigIntThenFloat(t *testing.T) {
	v, err := Add(Int(2), BigInt(big.NewInt(3)))
	require.NoError(t, err)
	require.Equal(t, KindBigInt, v.Kind())
	assert.Equal(t, big.NewInt(5), v.BigInt())

	v2, err := Add(v, Float(0.5))
	require.NoError(t, err)
	require.Equal(t, KindFloat, v2.Kind())
	assert.Equal(t, 5.5, v2.Float())
}

func TestDiv_IntegerDivisionByZero(t *testing.T) {
	_, err := Div(Int(1), Int(0))
	require.Error(t, err)
}

func TestDiv_BigIntDivisionByZero(t *testing.T) {
	_, err := Div(BigInt(big.NewInt(1)), BigInt(big.NewInt(0)))
	require.Error(t, err)
}

func TestMod_FloatUnsupported(t *testing.T) {
	_, err := Mod(Float(1.5), Float(0.5))
	require.Error(t, err)
}

func TestCmp_Ordering(t *testing.T) {
	c, err := Cmp(Int(1), Int(2))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Cmp(BigInt(big.NewInt(10)), Int(2))
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestCmp_ComplexUnordered(t *testing.T) {
	_, err := Cmp(Complex(complex(1, 1)), Complex(complex(2, 2)))
	require.Error(t, err)
}

func TestEq_Complex(t *testing.T) {
	ok, err := Eq(Complex(complex(1, 2)), Complex(complex(1, 2)))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Eq(Int(1), Complex(complex(1, 0)))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValue_StringRendersEachKind(t *testing.T) {
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "7", BigInt(big.NewInt(7)).String())
	assert.Equal(t, "hello", String("hello").String())
}

func TestFormatRat(t *testing.T) {
	rat := new(big.Rat).SetFloat64(1.5)
	require.NotNil(t, rat)
	assert.Equal(t, "1.5", FormatRat(rat))
}

func TestCmpBigFloat_NilIsNaN(t *testing.T) {
	assert.NotEqual(t, 0, CmpBigFloat(nil, nil))
	assert.NotEqual(t, 0, CmpBigFloat(nil, big.NewFloat(0)))
}
