package kernel

// Instruction streams for the shipped fitness kernels. Local layout is the
// one emitFitness declares: 0 = n (param), 1 = loop counter, 2+ = f64
// scratch. Every kernel accumulates into local 2 and leaves it on the stack.

// sphereModule computes sum(x_i^2).
func sphereModule() []byte {
	f := &body{}
	f.block()
	f.loop()

	f.localGet(1)
	f.localGet(0)
	f.i32GeS()
	f.brIf(1)

	// sum += x[i] * x[i]
	f.loadX(1)
	f.localSet(3)
	f.localGet(2)
	f.localGet(3)
	f.localGet(3)
	f.f64Mul()
	f.f64Add()
	f.localSet(2)

	f.localGet(1)
	f.i32Const(1)
	f.i32Add()
	f.localSet(1)
	f.br(0)

	f.end()
	f.end()
	f.localGet(2)

	return emitFitness(2, f)
}

// rosenbrockModule computes sum over i of
// 100*(x_{i+1} - x_i^2)^2 + (1 - x_i)^2.
func rosenbrockModule() []byte {
	f := &body{}
	f.block()
	f.loop()

	// while i < n-1
	f.localGet(1)
	f.localGet(0)
	f.i32Const(1)
	f.i32Sub()
	f.i32GeS()
	f.brIf(1)

	// a = x[i]
	f.loadX(1)
	f.localSet(3)

	// b = x[i+1]
	f.localGet(1)
	f.i32Const(1)
	f.i32Add()
	f.i32Const(8)
	f.i32Mul()
	f.f64Load()
	f.localSet(4)

	// t = b - a*a
	f.localGet(4)
	f.localGet(3)
	f.localGet(3)
	f.f64Mul()
	f.f64Sub()
	f.localSet(5)

	// sum += 100 * t * t
	f.localGet(2)
	f.f64Const(100)
	f.localGet(5)
	f.localGet(5)
	f.f64Mul()
	f.f64Mul()
	f.f64Add()
	f.localSet(2)

	// t = 1 - a
	f.f64Const(1)
	f.localGet(3)
	f.f64Sub()
	f.localSet(5)

	// sum += t * t
	f.localGet(2)
	f.localGet(5)
	f.localGet(5)
	f.f64Mul()
	f.f64Add()
	f.localSet(2)

	f.localGet(1)
	f.i32Const(1)
	f.i32Add()
	f.localSet(1)
	f.br(0)

	f.end()
	f.end()
	f.localGet(2)

	return emitFitness(4, f)
}
