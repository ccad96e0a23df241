package isle

import (
	"github.com/archipelab/isle/errors"
)

// Vector is a decision or fitness vector.
type Vector []float64

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Bounds describes the box constraint of a problem's decision space.
// Lo and Hi must have the same length; the length is the problem dimension.
type Bounds struct {
	Lo Vector
	Hi Vector
}

// Dimension returns the number of decision variables.
func (b Bounds) Dimension() int {
	return len(b.Lo)
}

// Validate checks that the bounds are well formed.
func (b Bounds) Validate() error {
	if len(b.Lo) != len(b.Hi) {
		return errors.Dimension(errors.PhaseValidate, len(b.Hi), len(b.Lo))
	}
	if len(b.Lo) == 0 {
		return errors.InvalidArgument(errors.PhaseValidate, "bounds must have at least one dimension")
	}
	for i := range b.Lo {
		if b.Lo[i] > b.Hi[i] {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Detail("lower bound %g exceeds upper bound %g at index %d", b.Lo[i], b.Hi[i], i).
				Build()
		}
	}
	return nil
}

// Contains reports whether x lies inside the bounds.
func (b Bounds) Contains(x Vector) bool {
	if len(x) != len(b.Lo) {
		return false
	}
	for i := range x {
		if x[i] < b.Lo[i] || x[i] > b.Hi[i] {
			return false
		}
	}
	return true
}

// Uniform creates bounds with the same lower and upper value in every
// dimension.
func Uniform(dim int, lo, hi float64) Bounds {
	l := make(Vector, dim)
	h := make(Vector, dim)
	for i := 0; i < dim; i++ {
		l[i] = lo
		h[i] = hi
	}
	return Bounds{Lo: l, Hi: h}
}
