package problem

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"reflect"
	"sync/atomic"

	isle "github.com/archipelab/isle"
	"github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/types"
)

// UDP is the user-defined problem interface. A UDP supplies the objective
// function and the box bounds of the decision space.
type UDP interface {
	Fitness(x isle.Vector) (isle.Vector, error)
	Bounds() isle.Bounds
	Name() string
}

// ExtraInfoer is optionally implemented by UDPs that report extra details.
type ExtraInfoer interface {
	ExtraInfo() string
}

// Types is the descriptor registry for problem implementations.
var Types = types.NewRegistry("problem")

func init() {
	mustRegister("null_problem", func() any { return &Null{} })
	mustRegister("schwefel", func() any { return &Schwefel{Dim: 1} })
	mustRegister("sphere", func() any { return &Sphere{Dim: 1} })
}

func mustRegister(name string, ctor func() any) {
	if _, err := Types.RegisterNative(name, ctor); err != nil {
		panic(err)
	}
}

// Problem is an opaque handle wrapping exactly one UDP for its lifetime.
// It validates decision vectors against the UDP's bounds and counts
// fitness evaluations.
type Problem struct {
	udp    UDP
	bounds isle.Bounds
	fevals atomic.Uint64
}

// New wraps a UDP into a Problem handle. The UDP's bounds are validated
// once, here.
func New(udp UDP) (*Problem, error) {
	if udp == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "UDP")
	}
	b := udp.Bounds()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Problem{udp: udp, bounds: b}, nil
}

// Fitness evaluates the wrapped UDP at x.
func (p *Problem) Fitness(x isle.Vector) (isle.Vector, error) {
	if len(x) != p.bounds.Dimension() {
		return nil, errors.Dimension(errors.PhaseRuntime, len(x), p.bounds.Dimension())
	}
	f, err := p.udp.Fitness(x)
	if err != nil {
		return nil, err
	}
	if len(f) == 0 {
		return nil, errors.InvalidData(errors.PhaseRuntime, nil,
			fmt.Sprintf("problem %q returned an empty fitness vector", p.Name()))
	}
	p.fevals.Add(1)
	return f, nil
}

// Bounds returns the UDP's box bounds.
func (p *Problem) Bounds() isle.Bounds {
	return p.bounds
}

// Dimension returns the number of decision variables.
func (p *Problem) Dimension() int {
	return p.bounds.Dimension()
}

// Fevals returns the number of successful fitness evaluations.
func (p *Problem) Fevals() uint64 {
	return p.fevals.Load()
}

// Name returns the wrapped UDP's name.
func (p *Problem) Name() string {
	return p.udp.Name()
}

// ExtraInfo returns the wrapped UDP's extra info, if it provides any.
func (p *Problem) ExtraInfo() string {
	if e, ok := p.udp.(ExtraInfoer); ok {
		return e.ExtraInfo()
	}
	return ""
}

// Extract returns the wrapped UDP if its concrete type matches the type
// argument, or nil otherwise. t must be a *types.Descriptor or a
// reflect.Type; any other value fails with an invalid argument error.
// Native-backed descriptors are probed with a constructed instance, all
// other types go through the dynamic lookup path.
func (p *Problem) Extract(t any) (UDP, error) {
	d, rt, err := Types.Resolve(errors.PhaseExtract, t)
	if err != nil {
		return nil, err
	}
	if d != nil && d.Backing == types.NativeBacked {
		return p.extractNative(d.New()), nil
	}
	return p.extractDynamic(rt), nil
}

// Is reports whether the wrapped UDP is of the given type. It propagates
// the same invalid argument failure as Extract.
func (p *Problem) Is(t any) (bool, error) {
	udp, err := p.Extract(t)
	if err != nil {
		return false, err
	}
	return udp != nil, nil
}

func (p *Problem) extractNative(probe any) UDP {
	if reflect.TypeOf(p.udp) == reflect.TypeOf(probe) {
		return p.udp
	}
	return nil
}

func (p *Problem) extractDynamic(rt reflect.Type) UDP {
	if reflect.TypeOf(p.udp) == rt {
		return p.udp
	}
	return nil
}

// ExtractAs returns the wrapped UDP as a concrete T, when it is one.
func ExtractAs[T UDP](p *Problem) (T, bool) {
	udp, ok := p.udp.(T)
	return udp, ok
}

type problemState struct {
	UDP    UDP
	Fevals uint64
}

// GobEncode serializes the handle for isolated evolution transport.
// The wrapped UDP's concrete type must be gob-registered, which happens
// automatically on descriptor registration.
func (p *Problem) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := problemState{UDP: p.udp, Fevals: p.fevals.Load()}
	if err := gob.NewEncoder(&buf).Encode(&state); err != nil {
		return nil, errors.Serialization(fmt.Sprintf("encode problem %q", p.Name()), err)
	}
	return buf.Bytes(), nil
}

// GobDecode restores a handle serialized with GobEncode.
func (p *Problem) GobDecode(data []byte) error {
	var state problemState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return errors.Serialization("decode problem", err)
	}
	restored, err := New(state.UDP)
	if err != nil {
		return err
	}
	p.udp = restored.udp
	p.bounds = restored.bounds
	p.fevals.Store(state.Fevals)
	return nil
}
