package algorithm

import (
	"context"

	"github.com/archipelab/isle/population"
)

// Null is the identity algorithm: it returns the population unchanged.
// It is the default UDA and a placeholder for tests and serialization
// round-trips.
type Null struct{}

func (Null) Evolve(_ context.Context, pop *population.Population) (*population.Population, error) {
	return pop, nil
}

func (Null) Name() string {
	return "Null algorithm"
}
