// Package isle implements an island-model optimization runtime.
//
// An island is an opaque handle wrapping exactly one user-defined island
// implementation (UDI) together with an algorithm and a population. The
// wrapped implementation can be retrieved or type-checked through the
// handle's type-directed extraction surface, which dispatches between a
// native-backed path (implementations shipped with the library, including
// fitness kernels compiled to WebAssembly) and a dynamic path (user-supplied
// implementations).
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	isle/           Root package with the Vector and Bounds primitives
//	├── island/     Island handle, type-directed extraction, native UDIs
//	├── problem/    Problem handle and native objective functions
//	├── algorithm/  Algorithm handle and native evolution strategies
//	├── population/ Individuals, random initialization, champion tracking
//	├── types/      Type descriptors and backing registries
//	├── kernel/     WebAssembly fitness kernels executed through wazero
//	└── errors/     Structured error types for debugging
//
// # Quick Start
//
// Evolve a population and extract the concrete island back out of the handle:
//
//	udp, _ := problem.NewSchwefel(3)
//	prob, _ := problem.New(udp)
//	pop, _ := population.New(prob, 20, 42)
//	algo, _ := algorithm.New(algorithm.NewRandomSearch(100))
//	isl, _ := island.New(&island.ThreadIsland{}, algo, pop)
//
//	if err := isl.Evolve(ctx, 10); err != nil {
//	    log.Fatal(err)
//	}
//
//	udi, ok := island.ExtractAs[*island.ThreadIsland](isl)
//	fmt.Println(udi.Name(), ok) // "Thread island" true
package isle
