// Package algorithm wraps user-defined evolution algorithms into opaque
// handles with the same type-directed extraction surface as problem.
package algorithm

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"reflect"

	"github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/population"
	"github.com/archipelab/isle/types"
)

// UDA is the user-defined algorithm interface. Evolve takes a population
// and returns the evolved population; implementations may mutate and
// return their input.
type UDA interface {
	Evolve(ctx context.Context, pop *population.Population) (*population.Population, error)
	Name() string
}

// ExtraInfoer is optionally implemented by UDAs that report extra details.
type ExtraInfoer interface {
	ExtraInfo() string
}

// Types is the descriptor registry for algorithm implementations.
var Types = types.NewRegistry("algorithm")

func init() {
	mustRegister("null_algorithm", func() any { return &Null{} })
	mustRegister("random_search", func() any { return &RandomSearch{Iters: 1} })
}

func mustRegister(name string, ctor func() any) {
	if _, err := Types.RegisterNative(name, ctor); err != nil {
		panic(err)
	}
}

// Algorithm is an opaque handle wrapping exactly one UDA for its lifetime.
type Algorithm struct {
	uda UDA
}

// New wraps a UDA into an Algorithm handle.
func New(uda UDA) (*Algorithm, error) {
	if uda == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "UDA")
	}
	return &Algorithm{uda: uda}, nil
}

// Evolve runs the wrapped UDA on pop.
func (a *Algorithm) Evolve(ctx context.Context, pop *population.Population) (*population.Population, error) {
	if pop == nil {
		return nil, errors.NotInitialized(errors.PhaseEvolve, "population")
	}
	out, err := a.uda.Evolve(ctx, pop)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEvolve, errors.KindInvalidData, err,
			fmt.Sprintf("algorithm %q", a.Name()))
	}
	if out == nil {
		return nil, errors.InvalidData(errors.PhaseEvolve, nil,
			fmt.Sprintf("algorithm %q returned a nil population", a.Name()))
	}
	return out, nil
}

// Name returns the wrapped UDA's name.
func (a *Algorithm) Name() string {
	return a.uda.Name()
}

// ExtraInfo returns the wrapped UDA's extra info, if it provides any.
func (a *Algorithm) ExtraInfo() string {
	if e, ok := a.uda.(ExtraInfoer); ok {
		return e.ExtraInfo()
	}
	return ""
}

// Extract returns the wrapped UDA if its concrete type matches the type
// argument, or nil otherwise. t must be a *types.Descriptor or a
// reflect.Type; any other value fails with an invalid argument error.
func (a *Algorithm) Extract(t any) (UDA, error) {
	d, rt, err := Types.Resolve(errors.PhaseExtract, t)
	if err != nil {
		return nil, err
	}
	if d != nil && d.Backing == types.NativeBacked {
		return a.extractNative(d.New()), nil
	}
	return a.extractDynamic(rt), nil
}

// Is reports whether the wrapped UDA is of the given type. It propagates
// the same invalid argument failure as Extract.
func (a *Algorithm) Is(t any) (bool, error) {
	uda, err := a.Extract(t)
	if err != nil {
		return false, err
	}
	return uda != nil, nil
}

func (a *Algorithm) extractNative(probe any) UDA {
	if reflect.TypeOf(a.uda) == reflect.TypeOf(probe) {
		return a.uda
	}
	return nil
}

func (a *Algorithm) extractDynamic(rt reflect.Type) UDA {
	if reflect.TypeOf(a.uda) == rt {
		return a.uda
	}
	return nil
}

// ExtractAs returns the wrapped UDA as a concrete T, when it is one.
func ExtractAs[T UDA](a *Algorithm) (T, bool) {
	uda, ok := a.uda.(T)
	return uda, ok
}

type algorithmState struct {
	UDA UDA
}

// GobEncode serializes the handle for isolated evolution transport.
func (a *Algorithm) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := algorithmState{UDA: a.uda}
	if err := gob.NewEncoder(&buf).Encode(&state); err != nil {
		return nil, errors.Serialization(fmt.Sprintf("encode algorithm %q", a.Name()), err)
	}
	return buf.Bytes(), nil
}

// GobDecode restores a handle serialized with GobEncode.
func (a *Algorithm) GobDecode(data []byte) error {
	var state algorithmState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return errors.Serialization("decode algorithm", err)
	}
	a.uda = state.UDA
	return nil
}
