// Package island provides the island handle of the optimization runtime.
//
// An Island wraps exactly one user-defined island (UDI) for its entire
// lifetime, together with an algorithm handle and a population. Evolve
// delegates to the UDI, which decides where and how the evolution runs:
// ThreadIsland evolves in the calling goroutine, PipeIsland ships
// serialized state to an isolated worker.
//
// # Type-Directed Extraction
//
// The concrete UDI can be retrieved or type-checked back out of the handle:
//
//	udi, err := isl.Extract(types.Of[*island.ThreadIsland]())
//	ok, err := isl.Is(types.Of[*MyIsland]())
//
// Extraction dispatches on the type's backing, fixed at registration:
// native-backed variants are probed with a constructed instance, dynamic
// (user-supplied) variants are matched by runtime type. A mismatch yields
// nil, not an error; only a non-type argument fails.
//
// Go callers that know the target type statically can use the generic form:
//
//	ti, ok := island.ExtractAs[*island.ThreadIsland](isl)
package island
