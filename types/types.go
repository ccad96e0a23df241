package types

import (
	"encoding/gob"
	"reflect"
	"sort"
	"sync"

	"github.com/archipelab/isle/errors"
)

// Backing indicates which extraction path serves a registered type.
// It is fixed when the descriptor is registered, never inferred at call time.
type Backing uint8

const (
	// DynamicBacked types are user-supplied implementations extracted
	// through the generic lookup path.
	DynamicBacked Backing = iota

	// NativeBacked types are implementations shipped with the library,
	// extracted by probing with a default-constructed instance.
	NativeBacked
)

func (b Backing) String() string {
	switch b {
	case NativeBacked:
		return "native"
	case DynamicBacked:
		return "dynamic"
	}
	return "unknown"
}

// Descriptor is a first-class representation of a registered implementation
// type. For native-backed descriptors New constructs a probe instance, so
// extraction never has to instantiate through reflection.
type Descriptor struct {
	Name    string
	Type    reflect.Type
	Backing Backing
	New     func() any
}

// Registry maps concrete Go types to descriptors for one handle kind
// (islands, problems or algorithms).
type Registry struct {
	kind   string
	mu     sync.RWMutex
	byType map[reflect.Type]*Descriptor
	byName map[string]*Descriptor
}

// NewRegistry creates an empty registry. kind is used in error messages only.
func NewRegistry(kind string) *Registry {
	return &Registry{
		kind:   kind,
		byType: make(map[reflect.Type]*Descriptor),
		byName: make(map[string]*Descriptor),
	}
}

// RegisterNative registers a library-provided implementation type.
// ctor must return a fresh, usable instance on every call; the registered
// concrete type is taken from its result. The type is also registered with
// encoding/gob so serialized island transport can carry it.
func (r *Registry) RegisterNative(name string, ctor func() any) (*Descriptor, error) {
	if name == "" {
		return nil, errors.InvalidArgument(errors.PhaseRegister, "descriptor name cannot be empty")
	}
	if ctor == nil {
		return nil, errors.InvalidArgument(errors.PhaseRegister, "native descriptors require a constructor")
	}
	probe := ctor()
	if probe == nil {
		return nil, errors.InvalidArgument(errors.PhaseRegister, "constructor returned nil")
	}
	d := &Descriptor{
		Name:    name,
		Type:    reflect.TypeOf(probe),
		Backing: NativeBacked,
		New:     ctor,
	}
	if err := r.add(d, probe); err != nil {
		return nil, err
	}
	return d, nil
}

// RegisterDynamic registers a user-supplied implementation type from a
// prototype value. Registration is optional for extraction (unregistered
// types resolve as dynamic-backed) but required for serialized transport.
func (r *Registry) RegisterDynamic(name string, prototype any) (*Descriptor, error) {
	if name == "" {
		return nil, errors.InvalidArgument(errors.PhaseRegister, "descriptor name cannot be empty")
	}
	if prototype == nil {
		return nil, errors.InvalidArgument(errors.PhaseRegister, "prototype cannot be nil")
	}
	d := &Descriptor{
		Name:    name,
		Type:    reflect.TypeOf(prototype),
		Backing: DynamicBacked,
	}
	if err := r.add(d, prototype); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Registry) add(d *Descriptor, sample any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byType[d.Type]; ok {
		return errors.New(errors.PhaseRegister, errors.KindRegistration).
			GoType(d.Type.String()).
			Detail("%s type already registered as %q", r.kind, prev.Name).
			Build()
	}
	if _, ok := r.byName[d.Name]; ok {
		return errors.New(errors.PhaseRegister, errors.KindRegistration).
			GoType(d.Type.String()).
			Detail("%s name %q already registered", r.kind, d.Name).
			Build()
	}

	gob.Register(sample)
	r.byType[d.Type] = d
	r.byName[d.Name] = d
	return nil
}

// Lookup returns the descriptor registered for a concrete type.
func (r *Registry) Lookup(t reflect.Type) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byType[t]
	return d, ok
}

// LookupName returns the descriptor registered under name.
func (r *Registry) LookupName(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Names returns the registered descriptor names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType)
}

// Resolve interprets a type argument for extraction. Valid arguments are a
// *Descriptor or a reflect.Type; anything else fails with an invalid
// argument error. A reflect.Type without a registration resolves to a nil
// descriptor, meaning the dynamic extraction path applies.
func (r *Registry) Resolve(phase errors.Phase, t any) (*Descriptor, reflect.Type, error) {
	switch v := t.(type) {
	case *Descriptor:
		if v == nil || v.Type == nil {
			return nil, nil, errors.NotAType(phase, t)
		}
		if v.Backing == NativeBacked && v.New == nil {
			// Hand-built descriptor without a constructor: no probe can be
			// made, so only the dynamic path can serve it.
			return nil, v.Type, nil
		}
		return v, v.Type, nil
	case reflect.Type:
		if v == nil {
			return nil, nil, errors.NotAType(phase, t)
		}
		if d, ok := r.Lookup(v); ok {
			return d, v, nil
		}
		return nil, v, nil
	default:
		return nil, nil, errors.NotAType(phase, t)
	}
}

// Of returns the reflect.Type for T, for use as an extraction type argument.
func Of[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
