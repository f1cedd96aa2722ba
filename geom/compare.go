package geom

import "math"

// Epsilon is the tolerance band Compare uses for float64 values. When both
// operands are non-zero it is a relative band, otherwise an absolute one.
const Epsilon = 1e-12

// Epsilon32 is the float32 counterpart of Epsilon.
const Epsilon32 = 1e-6

// Float is the set of types the tolerant comparator accepts.
type Float interface {
	float32 | float64
}

func epsilonOf[T Float]() T {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return T(Epsilon32)
	}
	return T(Epsilon)
}

func absOf[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// CompareT returns -1, 0 or 1 depending on whether x is less than, equal to,
// or greater than y, treating values inside the epsilon band as equal.
//
// If either operand is exactly zero there is no meaningful ratio, so the
// absolute difference is tested instead. Otherwise the ratio of the smaller
// magnitude to the larger one, minus one, is tested. Forming the ratio the same
// way regardless of argument order keeps CompareT(x, y) == -CompareT(y, x).
func CompareT[T Float](x, y T) int {
	if x == y {
		return 0
	}
	eps := epsilonOf[T]()
	if x == 0 || y == 0 {
		if absOf(x-y) < eps {
			return 0
		}
	} else {
		small, large := x, y
		if absOf(small) > absOf(large) {
			small, large = large, small
		}
		if absOf(small/large-1) < eps {
			return 0
		}
	}
	if x < y {
		return -1
	}
	return 1
}

// Compare is CompareT for float64.
func Compare(x, y float64) int {
	return CompareT(x, y)
}

// Compare32 is CompareT for float32.
func Compare32(x, y float32) int {
	return CompareT(x, y)
}

// Equal reports whether x and y are within the tolerance band of each other.
func Equal(x, y float64) bool {
	return Compare(x, y) == 0
}

// IsZero reports whether x is tolerantly zero.
func IsZero(x float64) bool {
	return Compare(x, 0) == 0
}

// InRange reports whether x lies in the closed range spanned by a and b. The
// bounds may be given in either order.
func InRange(x, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return Compare(x, a) >= 0 && Compare(x, b) <= 0
}

// Overlap describes how two 1D segments relate.
type Overlap int

const (
	Separate Overlap = iota
	Touch
	Overlapping
)

func (o Overlap) String() string {
	switch o {
	case Separate:
		return "separate"
	case Touch:
		return "touch"
	case Overlapping:
		return "overlapping"
	}
	return "unknown"
}

// Overlap1D classifies the segments [a,b] and [c,d] (endpoints in any order)
// by comparing their combined length with the range that spans both. If the
// combined length is longer the segments overlap, if it is equal they touch.
func Overlap1D(a, b, c, d float64) Overlap {
	lo := math.Min(math.Min(a, b), math.Min(c, d))
	hi := math.Max(math.Max(a, b), math.Max(c, d))
	combined := math.Abs(b-a) + math.Abs(d-c)
	switch Compare(combined, hi-lo) {
	case 1:
		return Overlapping
	case 0:
		return Touch
	}
	return Separate
}
