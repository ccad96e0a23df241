package island

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/archipelab/isle/algorithm"
	"github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/population"
	"github.com/archipelab/isle/types"
)

// UDI is the user-defined island interface. RunEvolve performs one
// evolution on the island's population, reading and writing state through
// the handle's accessors.
type UDI interface {
	RunEvolve(ctx context.Context, isl *Island) error
	Name() string
}

// ExtraInfoer is optionally implemented by UDIs that report extra details.
type ExtraInfoer interface {
	ExtraInfo() string
}

// Types is the descriptor registry for island implementations.
var Types = types.NewRegistry("island")

func init() {
	mustRegister("thread_island", func() any { return &ThreadIsland{} })
	mustRegister("pipe_island", func() any { return &PipeIsland{} })
}

func mustRegister(name string, ctor func() any) {
	if _, err := Types.RegisterNative(name, ctor); err != nil {
		panic(err)
	}
}

// Island is an opaque handle wrapping exactly one UDI for its entire
// lifetime, together with the algorithm and population the UDI evolves.
type Island struct {
	udi UDI

	mu   sync.Mutex
	algo *algorithm.Algorithm
	pop  *population.Population
}

// New creates an island. A nil udi defaults to ThreadIsland.
func New(udi UDI, algo *algorithm.Algorithm, pop *population.Population) (*Island, error) {
	if udi == nil {
		udi = &ThreadIsland{}
	}
	if algo == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "algorithm")
	}
	if pop == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "population")
	}
	return &Island{udi: udi, algo: algo, pop: pop}, nil
}

// Evolve runs n sequential evolutions by delegating to the wrapped UDI.
func (isl *Island) Evolve(ctx context.Context, n uint) error {
	for i := uint(0); i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := isl.udi.RunEvolve(ctx, isl); err != nil {
			Logger().Warn("evolution failed",
				zap.String("island", isl.Name()),
				zap.Uint("iteration", i),
				zap.Error(err))
			return err
		}
	}
	return nil
}

// Algorithm returns the island's algorithm handle.
func (isl *Island) Algorithm() *algorithm.Algorithm {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	return isl.algo
}

// SetAlgorithm replaces the island's algorithm handle.
func (isl *Island) SetAlgorithm(a *algorithm.Algorithm) error {
	if a == nil {
		return errors.NotInitialized(errors.PhaseRuntime, "algorithm")
	}
	isl.mu.Lock()
	defer isl.mu.Unlock()
	isl.algo = a
	return nil
}

// Population returns the island's population.
func (isl *Island) Population() *population.Population {
	isl.mu.Lock()
	defer isl.mu.Unlock()
	return isl.pop
}

// SetPopulation replaces the island's population.
func (isl *Island) SetPopulation(p *population.Population) error {
	if p == nil {
		return errors.NotInitialized(errors.PhaseRuntime, "population")
	}
	isl.mu.Lock()
	defer isl.mu.Unlock()
	isl.pop = p
	return nil
}

// Name returns the wrapped UDI's name.
func (isl *Island) Name() string {
	return isl.udi.Name()
}

// ExtraInfo returns the wrapped UDI's extra info, if it provides any.
func (isl *Island) ExtraInfo() string {
	if e, ok := isl.udi.(ExtraInfoer); ok {
		return e.ExtraInfo()
	}
	return ""
}
