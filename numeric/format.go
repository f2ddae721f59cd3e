package numeric

import (
	"math/big"

	"github.com/joeycumines/floater"
)

// floatDecimalPrec bounds the number of significant decimal digits used
// when rendering a float Value as decimal text; 17 is enough to round-trip
// a float64 through FormatDecimalRat.
const floatDecimalPrec = 17

// FormatRat renders rat as decimal text using the donor repo's
// FormatDecimalRat, the same routine github.com/joeycumines/floater uses
// for its own JSON float marshalling.
func FormatRat(rat *big.Rat) string {
	return floater.FormatDecimalRat(rat, floatDecimalPrec, 53)
}

// CmpBigFloat performs a NaN-safe comparison of two *big.Float values using
// floater's nil-as-NaN convention: a nil pointer compares as NaN, and NaN
// never equals anything, including itself.
func CmpBigFloat(x, y *big.Float) int {
	return floater.Cmp(x, y)
}
