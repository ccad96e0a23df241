// Package types provides type descriptors for user-defined implementations.
//
// Every implementation type a handle can wrap is described by a Descriptor
// carrying an explicit backing flag: NativeBacked for implementations shipped
// with the library, DynamicBacked for user-supplied ones. The flag is decided
// once, at registration, so extraction never sniffs for markers at call time.
//
// Each handle kind owns a Registry:
//
//	reg := types.NewRegistry("island")
//	desc, err := reg.RegisterNative("thread_island", func() any { return &ThreadIsland{} })
//
// Extraction type arguments are resolved through Registry.Resolve, which
// accepts either a *Descriptor or a reflect.Type. The Of helper builds the
// latter:
//
//	udi, err := isl.Extract(types.Of[*MyIsland]())
package types
