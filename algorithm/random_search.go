package algorithm

import (
	"context"
	"fmt"

	"github.com/archipelab/isle/population"
)

// RandomSearch is a monte-carlo search: each iteration draws a candidate
// uniformly within the problem's bounds and replaces the worst individual
// when the candidate improves on it. Candidates come from the population's
// own generator, so runs are reproducible from the population seed.
type RandomSearch struct {
	Iters int
}

// NewRandomSearch creates a random search running iters iterations per
// evolve call. Non-positive iters default to 1.
func NewRandomSearch(iters int) *RandomSearch {
	if iters < 1 {
		iters = 1
	}
	return &RandomSearch{Iters: iters}
}

func (rs *RandomSearch) Evolve(ctx context.Context, pop *population.Population) (*population.Population, error) {
	if pop.Len() == 0 {
		return pop, nil
	}
	prob := pop.Problem()
	for i := 0; i < rs.Iters; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x := pop.RandomX()
		f, err := prob.Fitness(x)
		if err != nil {
			return nil, err
		}
		worst, err := pop.Worst()
		if err != nil {
			return nil, err
		}
		cur, err := pop.Get(worst)
		if err != nil {
			return nil, err
		}
		if f[0] < cur.F[0] {
			if err := pop.SetXF(worst, x, f); err != nil {
				return nil, err
			}
		}
	}
	return pop, nil
}

func (rs *RandomSearch) Name() string {
	return "Random search"
}

func (rs *RandomSearch) ExtraInfo() string {
	return fmt.Sprintf("Iterations: %d", rs.Iters)
}
