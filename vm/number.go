package vm

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number is an arbitrary-precision integer with a fast path for values that
// fit in an int64. Small numbers live inline with no allocation; arithmetic
// that overflows the inline range promotes the result to a heap big.Int.
// Promotion is one way: a heap number never demotes back to inline, even
// when its value would fit.
type Number struct {
	inline int64
	heap   *big.Int
}

// NumberFromInt64 returns an inline number.
func NumberFromInt64(v int64) Number {
	return Number{inline: v}
}

// NumberFromBig returns a heap number holding a copy of b.
func NumberFromBig(b *big.Int) Number {
	return Number{heap: new(big.Int).Set(b)}
}

// ParseNumber parses a decimal integer literal, optionally negative.
// Underscore separators are ignored. Literals beyond the int64 range
// parse to heap numbers.
func ParseNumber(s string) (Number, bool) {
	s = strings.ReplaceAll(s, "_", "")
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NumberFromInt64(v), true
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Number{}, false
	}
	return Number{heap: b}, true
}

func (n Number) isHeap() bool {
	return n.heap != nil
}

// bigValue widens to a big.Int. The result must not be mutated when n is
// a heap number.
func (n Number) bigValue() *big.Int {
	if n.heap != nil {
		return n.heap
	}
	return big.NewInt(n.inline)
}

func (n Number) IsZero() bool {
	if n.heap != nil {
		return n.heap.Sign() == 0
	}
	return n.inline == 0
}

func (n Number) IsNegative() bool {
	if n.heap != nil {
		return n.heap.Sign() < 0
	}
	return n.inline < 0
}

// Cmp compares by value regardless of representation. It returns -1, 0,
// or 1.
func (n Number) Cmp(other Number) int {
	if n.heap == nil && other.heap == nil {
		switch {
		case n.inline < other.inline:
			return -1
		case n.inline > other.inline:
			return 1
		default:
			return 0
		}
	}
	return n.bigValue().Cmp(other.bigValue())
}

// NumberEqual reports value equality. An inline 42 equals a heap 42.
func (n Number) NumberEqual(other Number) bool {
	return n.Cmp(other) == 0
}

// Int64 returns the value as an int64 if it fits.
func (n Number) Int64() (int64, bool) {
	if n.heap != nil {
		if !n.heap.IsInt64() {
			return 0, false
		}
		return n.heap.Int64(), true
	}
	return n.inline, true
}

// ---------------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------------

// Add sums two numbers, promoting on inline overflow.
func (n Number) Add(other Number) Number {
	if n.heap == nil && other.heap == nil {
		sum := n.inline + other.inline
		if (n.inline^sum)&(other.inline^sum) >= 0 {
			return Number{inline: sum}
		}
	}
	return Number{heap: new(big.Int).Add(n.bigValue(), other.bigValue())}
}

// Sub subtracts, promoting on inline overflow.
func (n Number) Sub(other Number) Number {
	if n.heap == nil && other.heap == nil {
		diff := n.inline - other.inline
		if (n.inline^other.inline)&(n.inline^diff) >= 0 {
			return Number{inline: diff}
		}
	}
	return Number{heap: new(big.Int).Sub(n.bigValue(), other.bigValue())}
}

// Mul multiplies, promoting on inline overflow.
func (n Number) Mul(other Number) Number {
	if n.heap == nil && other.heap == nil {
		if p, ok := inlineMulOK(n.inline, other.inline); ok {
			return Number{inline: p}
		}
	}
	return Number{heap: new(big.Int).Mul(n.bigValue(), other.bigValue())}
}

func inlineMulOK(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if x == math.MinInt64 || y == math.MinInt64 {
		// MinInt64 * anything but 1 overflows, and dividing by it below
		// would not detect that.
		if x == 1 {
			return y, true
		}
		if y == 1 {
			return x, true
		}
		return 0, false
	}
	p := x * y
	if p/y != x {
		return 0, false
	}
	return p, true
}

// Neg negates, promoting only for -MinInt64.
func (n Number) Neg() Number {
	if n.heap == nil {
		if n.inline != math.MinInt64 {
			return Number{inline: -n.inline}
		}
	}
	return Number{heap: new(big.Int).Neg(n.bigValue())}
}

// CheckedDiv divides with truncation toward zero. It reports false for a
// zero divisor. MinInt64 / -1 promotes.
func (n Number) CheckedDiv(other Number) (Number, bool) {
	if other.IsZero() {
		return Number{}, false
	}
	if n.heap == nil && other.heap == nil {
		if n.inline == math.MinInt64 && other.inline == -1 {
			return Number{heap: new(big.Int).Neg(big.NewInt(math.MinInt64))}, true
		}
		return Number{inline: n.inline / other.inline}, true
	}
	return Number{heap: new(big.Int).Quo(n.bigValue(), other.bigValue())}, true
}

// CheckedRemEuclid computes the floored remainder: the result is zero or
// takes the sign of the divisor, with magnitude below the divisor's. It
// reports false for a zero divisor.
func (n Number) CheckedRemEuclid(other Number) (Number, bool) {
	if other.IsZero() {
		return Number{}, false
	}
	if n.heap == nil && other.heap == nil {
		r := n.inline % other.inline
		if r != 0 && (r < 0) != (other.inline < 0) {
			r += other.inline
		}
		return Number{inline: r}, true
	}
	r := new(big.Int).Rem(n.bigValue(), other.bigValue())
	if r.Sign() != 0 && (r.Sign() < 0) != other.IsNegative() {
		r.Add(r, other.bigValue())
	}
	return Number{heap: r}, true
}

func (n Number) String() string {
	if n.heap != nil {
		return n.heap.String()
	}
	return strconv.FormatInt(n.inline, 10)
}
