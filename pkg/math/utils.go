package math

import "golang.org/x/exp/constraints"

// Abs returns the absolute value of x.
func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// InRange reports whether lo <= x <= hi.
func InRange[T constraints.Ordered](x, lo, hi T) bool {
	return x >= lo && x <= hi
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual[T constraints.Float](a, b, eps T) bool {
	return Abs(a-b) <= eps
}
