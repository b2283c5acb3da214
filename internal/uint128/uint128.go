// Package uint128 provides the unsigned 128-bit integer used for user
// wealth. Wealth only ever needs addition, subtraction, comparison, and
// decimal rendering, so the type stays minimal.
package uint128

import (
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer in two 64-bit words.
// The zero value is 0.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// From64 returns a Uint128 holding the given 64-bit value.
func From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether u == 0.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Add returns u + v, wrapping on overflow.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns u - v, wrapping on underflow. Callers guard with Cmp first.
func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// Cmp returns -1, 0, or 1 depending on whether u is less than, equal to,
// or greater than v.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// divmod10 returns u/10 and u%10.
func (u Uint128) divmod10() (Uint128, uint64) {
	hi, rem := bits.Div64(0, u.Hi, 10)
	lo, rem := bits.Div64(rem, u.Lo, 10)
	return Uint128{Hi: hi, Lo: lo}, rem
}

// String renders u in decimal.
func (u Uint128) String() string {
	if u.IsZero() {
		return "0"
	}
	var buf [40]byte // 2^128-1 has 39 digits
	i := len(buf)
	for !u.IsZero() {
		var d uint64
		u, d = u.divmod10()
		i--
		buf[i] = byte('0' + d)
	}
	return string(buf[i:])
}
