package problem

import (
	isle "github.com/archipelab/isle"
)

// Null is a trivial single-variable problem with constant fitness. It is
// the default UDP and a placeholder for tests and serialization round-trips.
type Null struct{}

func (Null) Fitness(isle.Vector) (isle.Vector, error) {
	return isle.Vector{0}, nil
}

func (Null) Bounds() isle.Bounds {
	return isle.Uniform(1, 0, 1)
}

func (Null) Name() string {
	return "Null problem"
}
