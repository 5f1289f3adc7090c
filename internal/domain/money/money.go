// Package money provides checked integer arithmetic for amounts expressed in
// the smallest token denomination. Amounts are non-negative int64 values; any
// operation that would leave that range fails with ErrOverflow rather than
// wrapping or saturating.
package money

import (
	"errors"
	"math"
	"math/bits"
)

// ErrOverflow indicates an arithmetic result outside the representable amount range.
var ErrOverflow = errors.New("amount overflow")

// Max is the largest representable amount.
const Max = math.MaxInt64

// Add returns a+b, failing if the sum exceeds Max.
func Add(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		panic("money: negative amount")
	}
	if a > Max-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Mul returns a*b, failing if the product exceeds Max.
func Mul(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		panic("money: negative amount")
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > uint64(Max) {
		return 0, ErrOverflow
	}
	return int64(lo), nil
}

// MulDiv returns floor(a*b/d) computed with a full 128-bit intermediate, so
// the product never truncates before the division. Requires a <= d so the
// quotient fits; callers violating that are treated as a contract violation.
func MulDiv(a, b, d int64) int64 {
	if a < 0 || b < 0 || d <= 0 {
		panic("money: invalid MulDiv operand")
	}
	if a > d {
		panic("money: MulDiv quotient would overflow")
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	q, _ := bits.Div64(hi, lo, uint64(d))
	return int64(q)
}

// Isqrt returns the floor square root of x: the unique r with
// r*r <= x < (r+1)*(r+1). Integer Newton iteration only; no floating point,
// so the result is identical on every platform. Negative input is a caller
// contract violation.
func Isqrt(x int64) int64 {
	if x < 0 {
		panic("money: Isqrt of negative amount")
	}
	if x < 2 {
		return x
	}
	u := uint64(x)
	// Initial estimate from the bit length, always >= the true root.
	r := uint64(1) << ((bits.Len64(u) + 1) / 2)
	for {
		next := (r + u/r) / 2
		if next >= r {
			break
		}
		r = next
	}
	for r*r > u {
		r--
	}
	return int64(r)
}
