// Package kernel executes fitness functions as compiled WebAssembly modules.
//
// A kernel module exports a one-page linear memory and a function
// fitness(n: i32) -> f64 that reads n packed f64 decision variables from
// offset zero. Modules are emitted programmatically (emit.go), compiled and
// instantiated through wazero, and wrapped as problem UDPs:
//
//	eng, _ := kernel.NewEngine(ctx)
//	defer eng.Close(ctx)
//
//	udp, err := kernel.NewRosenbrock(ctx, eng, 5)
//	prob, err := problem.New(udp)
//
// Kernel problems register as native-backed, so extracting them out of a
// problem handle goes through the native probe path.
package kernel
