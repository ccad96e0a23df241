// Package problem wraps user-defined optimization problems into opaque
// handles. A handle owns exactly one UDP for its lifetime, counts fitness
// evaluations and validates decision vector dimensions on every call.
//
// The wrapped UDP can be recovered with Extract, which takes a type
// argument (a *types.Descriptor or a reflect.Type) and dispatches on how
// the implementation was registered: native-backed problems are matched
// through a registry probe, everything else by dynamic type comparison.
// A type mismatch yields a nil UDP, not an error.
package problem
