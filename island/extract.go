package island

import (
	"reflect"

	"github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/types"
)

// Extract returns the wrapped UDI if its concrete type matches the type
// argument, or nil otherwise. t must be a *types.Descriptor or a
// reflect.Type; any other value fails with an invalid argument error.
//
// Native-backed descriptors are probed with an instance built by their
// registered constructor; every other type goes through the dynamic
// lookup path. A type mismatch is not an error: the result is simply nil.
// The handle is never mutated.
func (isl *Island) Extract(t any) (UDI, error) {
	d, rt, err := Types.Resolve(errors.PhaseExtract, t)
	if err != nil {
		return nil, err
	}
	if d != nil && d.Backing == types.NativeBacked {
		return isl.extractNative(d.New()), nil
	}
	return isl.extractDynamic(rt), nil
}

// Is reports whether the wrapped UDI is of the given type. It propagates
// the same invalid argument failure as Extract.
func (isl *Island) Is(t any) (bool, error) {
	udi, err := isl.Extract(t)
	if err != nil {
		return false, err
	}
	return udi != nil, nil
}

// extractNative matches the wrapped UDI against a probe instance of the
// requested native variant.
func (isl *Island) extractNative(probe any) UDI {
	if reflect.TypeOf(isl.udi) == reflect.TypeOf(probe) {
		return isl.udi
	}
	return nil
}

// extractDynamic matches the wrapped UDI against a runtime type.
func (isl *Island) extractDynamic(rt reflect.Type) UDI {
	if reflect.TypeOf(isl.udi) == rt {
		return isl.udi
	}
	return nil
}

// ExtractAs returns the wrapped UDI as a concrete T, when it is one.
func ExtractAs[T UDI](isl *Island) (T, bool) {
	udi, ok := isl.udi.(T)
	return udi, ok
}
