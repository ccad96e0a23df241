package kernel

import (
	"context"
	"math"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/archipelab/isle/errors"
)

// Engine owns a wazero runtime and instantiates fitness kernel modules.
// One engine can serve many kernels; Close releases all of them.
type Engine struct {
	runtime wazero.Runtime
}

// NewEngine creates a wazero-backed kernel engine.
func NewEngine(ctx context.Context) (*Engine, error) {
	return &Engine{runtime: wazero.NewRuntime(ctx)}, nil
}

// Close releases the engine and every instance created from it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Instantiate compiles and instantiates a kernel module. The module must
// export a linear memory named "memory" and a function
// fitness(n: i32) -> f64 reading n packed f64s from offset zero.
func (e *Engine) Instantiate(ctx context.Context, wasm []byte, name string) (*Instance, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseKernel, errors.KindInvalidData, err, "compile kernel module")
	}

	mod, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseKernel, errors.KindInvalidData, err, "instantiate kernel module")
	}

	fn := mod.ExportedFunction("fitness")
	if fn == nil {
		_ = mod.Close(ctx)
		return nil, errors.NotFound(errors.PhaseKernel, "export", "fitness")
	}
	mem := mod.Memory()
	if mem == nil {
		_ = mod.Close(ctx)
		return nil, errors.NotFound(errors.PhaseKernel, "export", "memory")
	}

	Logger().Debug("kernel instantiated",
		zap.String("name", name),
		zap.Int("module_bytes", len(wasm)))

	return &Instance{mod: mod, fn: fn, mem: mem}, nil
}

// Instance is one instantiated kernel. Calls are serialized because the
// decision vector is staged through the instance's linear memory.
type Instance struct {
	mu  sync.Mutex
	mod api.Module
	fn  api.Function
	mem api.Memory
}

// Fitness writes x into the kernel's memory and calls the exported
// fitness function.
func (inst *Instance) Fitness(ctx context.Context, x []float64) (float64, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if size := inst.mem.Size(); uint32(len(x)*8) > size {
		return 0, errors.InvalidArgument(errors.PhaseKernel,
			"decision vector does not fit in kernel memory")
	}
	for i, v := range x {
		if !inst.mem.WriteUint64Le(uint32(i*8), math.Float64bits(v)) {
			return 0, errors.InvalidArgument(errors.PhaseKernel, "memory write out of range")
		}
	}

	results, err := inst.fn.Call(ctx, uint64(uint32(len(x))))
	if err != nil {
		return 0, errors.Trap(err, "call fitness")
	}
	if len(results) != 1 {
		return 0, errors.InvalidData(errors.PhaseKernel, nil, "fitness returned no result")
	}
	return math.Float64frombits(results[0]), nil
}

// Close releases the instance.
func (inst *Instance) Close(ctx context.Context) error {
	return inst.mod.Close(ctx)
}
