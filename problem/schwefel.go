package problem

import (
	"math"

	isle "github.com/archipelab/isle"
	"github.com/archipelab/isle/errors"
)

// Schwefel is the Schwefel test function, a classic multimodal minimization
// benchmark. The global minimum is at x_i = 420.9687... in every dimension,
// with fitness zero.
type Schwefel struct {
	Dim int
}

// NewSchwefel creates a Schwefel problem of the given dimension.
func NewSchwefel(dim int) (*Schwefel, error) {
	if dim < 1 {
		return nil, errors.InvalidArgument(errors.PhaseValidate, "Schwefel dimension must be at least 1")
	}
	return &Schwefel{Dim: dim}, nil
}

func (s *Schwefel) Fitness(x isle.Vector) (isle.Vector, error) {
	var sum float64
	for _, xi := range x {
		sum += xi * math.Sin(math.Sqrt(math.Abs(xi)))
	}
	return isle.Vector{418.9828872724338*float64(s.Dim) - sum}, nil
}

func (s *Schwefel) Bounds() isle.Bounds {
	return isle.Uniform(s.Dim, -500, 500)
}

func (s *Schwefel) Name() string {
	return "Schwefel Function"
}

// BestKnown returns the decision vector of the known global minimum.
func (s *Schwefel) BestKnown() isle.Vector {
	best := make(isle.Vector, s.Dim)
	for i := range best {
		best[i] = 420.9687
	}
	return best
}
