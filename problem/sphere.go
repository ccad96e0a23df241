package problem

import (
	isle "github.com/archipelab/isle"
	"github.com/archipelab/isle/errors"
)

// Sphere is the sum-of-squares minimization benchmark. The global minimum
// is at the origin with fitness zero.
type Sphere struct {
	Dim int
}

// NewSphere creates a sphere problem of the given dimension.
func NewSphere(dim int) (*Sphere, error) {
	if dim < 1 {
		return nil, errors.InvalidArgument(errors.PhaseValidate, "sphere dimension must be at least 1")
	}
	return &Sphere{Dim: dim}, nil
}

func (s *Sphere) Fitness(x isle.Vector) (isle.Vector, error) {
	var sum float64
	for _, xi := range x {
		sum += xi * xi
	}
	return isle.Vector{sum}, nil
}

func (s *Sphere) Bounds() isle.Bounds {
	return isle.Uniform(s.Dim, -10, 10)
}

func (s *Sphere) Name() string {
	return "Sphere Function"
}
