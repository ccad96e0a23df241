package island

import (
	"context"
)

// ThreadIsland evolves the island's population synchronously in the
// calling goroutine. It is the default UDI.
type ThreadIsland struct{}

func (ThreadIsland) RunEvolve(ctx context.Context, isl *Island) error {
	algo := isl.Algorithm()
	pop, err := algo.Evolve(ctx, isl.Population())
	if err != nil {
		return err
	}
	return isl.SetPopulation(pop)
}

func (ThreadIsland) Name() string {
	return "Thread island"
}
