package kernel

import (
	"context"
	"fmt"

	isle "github.com/archipelab/isle"
	"github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/problem"
)

func init() {
	// Kernel problems are native-backed: the implementation lives in the
	// compiled module, not in user Go code.
	if _, err := problem.Types.RegisterNative("wasm_kernel", func() any { return &Kernel{} }); err != nil {
		panic(err)
	}
}

// Kernel is a UDP whose objective function is evaluated inside a compiled
// WebAssembly module. Kernels are not serializable and therefore cannot
// cross the PipeIsland isolation barrier.
type Kernel struct {
	name   string
	inst   *Instance
	bounds isle.Bounds
}

// NewSphere instantiates the sum-of-squares kernel.
func NewSphere(ctx context.Context, eng *Engine, dim int) (*Kernel, error) {
	if dim < 1 {
		return nil, errors.InvalidArgument(errors.PhaseKernel, "sphere dimension must be at least 1")
	}
	inst, err := eng.Instantiate(ctx, sphereModule(), "sphere")
	if err != nil {
		return nil, err
	}
	return &Kernel{
		name:   "Sphere Function (wasm)",
		inst:   inst,
		bounds: isle.Uniform(dim, -10, 10),
	}, nil
}

// NewRosenbrock instantiates the Rosenbrock kernel.
func NewRosenbrock(ctx context.Context, eng *Engine, dim int) (*Kernel, error) {
	if dim < 2 {
		return nil, errors.InvalidArgument(errors.PhaseKernel, "Rosenbrock dimension must be at least 2")
	}
	inst, err := eng.Instantiate(ctx, rosenbrockModule(), "rosenbrock")
	if err != nil {
		return nil, err
	}
	return &Kernel{
		name:   "Rosenbrock Function (wasm)",
		inst:   inst,
		bounds: isle.Uniform(dim, -5, 10),
	}, nil
}

func (k *Kernel) Fitness(x isle.Vector) (isle.Vector, error) {
	f, err := k.inst.Fitness(context.Background(), x)
	if err != nil {
		return nil, err
	}
	return isle.Vector{f}, nil
}

func (k *Kernel) Bounds() isle.Bounds {
	return k.bounds
}

func (k *Kernel) Name() string {
	return k.name
}

func (k *Kernel) ExtraInfo() string {
	return fmt.Sprintf("Backend: wazero, dimension: %d", k.bounds.Dimension())
}

// Close releases the kernel's module instance.
func (k *Kernel) Close(ctx context.Context) error {
	return k.inst.Close(ctx)
}
