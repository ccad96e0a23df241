// Package population holds evaluated candidate solutions for one problem.
package population

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	isle "github.com/archipelab/isle"
	"github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/problem"
)

// Individual is a single member of a population: a decision vector, its
// fitness and a stable identity that survives serialization.
type Individual struct {
	ID uuid.UUID
	X  isle.Vector
	F  isle.Vector
}

// Population holds a problem and a set of evaluated individuals.
// It is not safe for concurrent use; the owning island serializes access.
type Population struct {
	prob *problem.Problem
	inds []Individual
	rng  *rand.Rand
	seed uint64
}

// New creates a population of size random individuals, drawn uniformly
// within the problem's bounds and evaluated through the problem handle.
func New(prob *problem.Problem, size int, seed uint64) (*Population, error) {
	if prob == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "problem")
	}
	p := &Population{
		prob: prob,
		rng:  rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
	for i := 0; i < size; i++ {
		if err := p.Push(p.RandomX()); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Problem returns the population's problem handle.
func (p *Population) Problem() *problem.Problem {
	return p.prob
}

// Len returns the number of individuals.
func (p *Population) Len() int {
	return len(p.inds)
}

// Get returns the individual at index i.
func (p *Population) Get(i int) (Individual, error) {
	if i < 0 || i >= len(p.inds) {
		return Individual{}, errors.InvalidArgument(errors.PhaseRuntime,
			fmt.Sprintf("individual index %d out of range [0, %d)", i, len(p.inds)))
	}
	return p.inds[i].clone(), nil
}

// Individuals returns a copy of all individuals.
func (p *Population) Individuals() []Individual {
	out := make([]Individual, len(p.inds))
	for i, ind := range p.inds {
		out[i] = ind.clone()
	}
	return out
}

// RandomX draws a decision vector uniformly within the problem's bounds.
func (p *Population) RandomX() isle.Vector {
	b := p.prob.Bounds()
	x := make(isle.Vector, b.Dimension())
	for i := range x {
		x[i] = b.Lo[i] + p.rng.Float64()*(b.Hi[i]-b.Lo[i])
	}
	return x
}

// Push evaluates x and appends it as a new individual.
func (p *Population) Push(x isle.Vector) error {
	f, err := p.prob.Fitness(x)
	if err != nil {
		return err
	}
	p.inds = append(p.inds, Individual{ID: uuid.New(), X: x.Clone(), F: f})
	return nil
}

// SetX replaces the decision vector of individual i and re-evaluates it.
// The individual keeps its identity.
func (p *Population) SetX(i int, x isle.Vector) error {
	if i < 0 || i >= len(p.inds) {
		return errors.InvalidArgument(errors.PhaseRuntime,
			fmt.Sprintf("individual index %d out of range [0, %d)", i, len(p.inds)))
	}
	f, err := p.prob.Fitness(x)
	if err != nil {
		return err
	}
	p.inds[i].X = x.Clone()
	p.inds[i].F = f
	return nil
}

// SetXF replaces both the decision vector and the fitness of individual i
// without re-evaluating. The caller guarantees that f is the fitness of x.
func (p *Population) SetXF(i int, x, f isle.Vector) error {
	if i < 0 || i >= len(p.inds) {
		return errors.InvalidArgument(errors.PhaseRuntime,
			fmt.Sprintf("individual index %d out of range [0, %d)", i, len(p.inds)))
	}
	if len(f) == 0 {
		return errors.InvalidArgument(errors.PhaseRuntime, "fitness vector cannot be empty")
	}
	p.inds[i].X = x.Clone()
	p.inds[i].F = f.Clone()
	return nil
}

// Best returns the index of the individual with the lowest fitness.
func (p *Population) Best() (int, error) {
	if len(p.inds) == 0 {
		return 0, errors.NotInitialized(errors.PhaseRuntime, "population")
	}
	best := 0
	for i := 1; i < len(p.inds); i++ {
		if p.inds[i].F[0] < p.inds[best].F[0] {
			best = i
		}
	}
	return best, nil
}

// Worst returns the index of the individual with the highest fitness.
func (p *Population) Worst() (int, error) {
	if len(p.inds) == 0 {
		return 0, errors.NotInitialized(errors.PhaseRuntime, "population")
	}
	worst := 0
	for i := 1; i < len(p.inds); i++ {
		if p.inds[i].F[0] > p.inds[worst].F[0] {
			worst = i
		}
	}
	return worst, nil
}

// Champion returns a copy of the best individual.
func (p *Population) Champion() (Individual, error) {
	best, err := p.Best()
	if err != nil {
		return Individual{}, err
	}
	return p.inds[best].clone(), nil
}

// Seed returns the seed the population's generator was created with.
func (p *Population) Seed() uint64 {
	return p.seed
}

func (ind Individual) clone() Individual {
	return Individual{ID: ind.ID, X: ind.X.Clone(), F: ind.F.Clone()}
}

type populationState struct {
	Problem     *problem.Problem
	Individuals []Individual
	Seed        uint64
}

// GobEncode serializes the population for isolated evolution transport.
// The generator is reseeded on decode rather than carried across.
func (p *Population) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := populationState{Problem: p.prob, Individuals: p.inds, Seed: p.seed}
	if err := gob.NewEncoder(&buf).Encode(&state); err != nil {
		return nil, errors.Serialization("encode population", err)
	}
	return buf.Bytes(), nil
}

// GobDecode restores a population serialized with GobEncode.
func (p *Population) GobDecode(data []byte) error {
	var state populationState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return errors.Serialization("decode population", err)
	}
	p.prob = state.Problem
	p.inds = state.Individuals
	p.seed = state.Seed
	p.rng = rand.New(rand.NewPCG(state.Seed, state.Seed))
	return nil
}
