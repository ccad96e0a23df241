package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/archipelab/isle/algorithm"
	"github.com/archipelab/isle/island"
	"github.com/archipelab/isle/kernel"
	"github.com/archipelab/isle/population"
	"github.com/archipelab/isle/problem"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	var (
		probName    = flag.String("problem", "schwefel", "Problem: schwefel, sphere, null, sphere-wasm, rosenbrock-wasm")
		algoName    = flag.String("algo", "random", "Algorithm: random, null")
		islandName  = flag.String("island", "thread", "Island: thread, pipe")
		dim         = flag.Int("dim", 3, "Problem dimension")
		popSize     = flag.Int("pop", 20, "Population size")
		gens        = flag.Uint("gens", 50, "Number of evolutions")
		iters       = flag.Int("iters", 100, "Algorithm iterations per evolution")
		seed        = flag.Uint64("seed", 42, "Population seed")
		list        = flag.Bool("list", false, "List registered implementation types and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			island.SetLogger(logger)
			kernel.SetLogger(logger)
		}
	}

	if *list {
		listTypes()
		return
	}

	cfg := runConfig{
		problem: *probName,
		algo:    *algoName,
		island:  *islandName,
		dim:     *dim,
		popSize: *popSize,
		gens:    *gens,
		iters:   *iters,
		seed:    *seed,
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

type runConfig struct {
	problem string
	algo    string
	island  string
	dim     int
	popSize int
	gens    uint
	iters   int
	seed    uint64
}

// build assembles the island described by the config. The returned cleanup
// releases the kernel engine when a wasm problem was selected.
func (cfg runConfig) build(ctx context.Context) (*island.Island, func(), error) {
	cleanup := func() {}

	var udp problem.UDP
	switch cfg.problem {
	case "schwefel":
		s, err := problem.NewSchwefel(cfg.dim)
		if err != nil {
			return nil, nil, err
		}
		udp = s
	case "sphere":
		s, err := problem.NewSphere(cfg.dim)
		if err != nil {
			return nil, nil, err
		}
		udp = s
	case "null":
		udp = &problem.Null{}
	case "sphere-wasm", "rosenbrock-wasm":
		eng, err := kernel.NewEngine(ctx)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = eng.Close(ctx) }
		var k *kernel.Kernel
		if cfg.problem == "sphere-wasm" {
			k, err = kernel.NewSphere(ctx, eng, cfg.dim)
		} else {
			k, err = kernel.NewRosenbrock(ctx, eng, cfg.dim)
		}
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		udp = k
	default:
		return nil, nil, fmt.Errorf("unknown problem %q", cfg.problem)
	}

	prob, err := problem.New(udp)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var uda algorithm.UDA
	switch cfg.algo {
	case "random":
		uda = algorithm.NewRandomSearch(cfg.iters)
	case "null":
		uda = &algorithm.Null{}
	default:
		cleanup()
		return nil, nil, fmt.Errorf("unknown algorithm %q", cfg.algo)
	}
	algo, err := algorithm.New(uda)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	pop, err := population.New(prob, cfg.popSize, cfg.seed)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var udi island.UDI
	switch cfg.island {
	case "thread":
		udi = &island.ThreadIsland{}
	case "pipe":
		udi = &island.PipeIsland{}
	default:
		cleanup()
		return nil, nil, fmt.Errorf("unknown island %q", cfg.island)
	}

	isl, err := island.New(udi, algo, pop)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return isl, cleanup, nil
}

func run(cfg runConfig) error {
	ctx := context.Background()

	isl, cleanup, err := cfg.build(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	pop := isl.Population()
	fmt.Println(headerStyle.Render("isle"))
	fmt.Printf("%s %s\n", labelStyle.Render("Island:"), valueStyle.Render(isl.Name()))
	fmt.Printf("%s %s\n", labelStyle.Render("Algorithm:"), valueStyle.Render(isl.Algorithm().Name()))
	fmt.Printf("%s %s\n", labelStyle.Render("Problem:"), valueStyle.Render(pop.Problem().Name()))

	start, err := pop.Champion()
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n\n", labelStyle.Render("Initial champion:"), valueStyle.Render(fmt.Sprintf("%.6f", start.F[0])))

	for g := uint(0); g < cfg.gens; g++ {
		if err := isl.Evolve(ctx, 1); err != nil {
			return err
		}
		champ, err := isl.Population().Champion()
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n",
			labelStyle.Render(fmt.Sprintf("gen %3d", g+1)),
			valueStyle.Render(fmt.Sprintf("champion % .10f", champ.F[0])))
	}

	final := isl.Population()
	champ, err := final.Champion()
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n", headerStyle.Render("Result"))
	fmt.Printf("%s %s\n", labelStyle.Render("Champion fitness:"), valueStyle.Render(fmt.Sprintf("%.10f", champ.F[0])))
	fmt.Printf("%s %s\n", labelStyle.Render("Champion x:"), valueStyle.Render(fmt.Sprintf("%.4f", champ.X)))
	fmt.Printf("%s %s\n", labelStyle.Render("Fitness evaluations:"), valueStyle.Render(fmt.Sprintf("%d", final.Problem().Fevals())))
	if info := isl.ExtraInfo(); info != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Island info:"), valueStyle.Render(info))
	}
	return nil
}

func listTypes() {
	fmt.Println(headerStyle.Render("Registered implementation types"))
	fmt.Printf("%s %s\n", labelStyle.Render("Islands:"), valueStyle.Render(strings.Join(island.Types.Names(), ", ")))
	fmt.Printf("%s %s\n", labelStyle.Render("Problems:"), valueStyle.Render(strings.Join(problem.Types.Names(), ", ")))
	fmt.Printf("%s %s\n", labelStyle.Render("Algorithms:"), valueStyle.Render(strings.Join(algorithm.Types.Names(), ", ")))
}
