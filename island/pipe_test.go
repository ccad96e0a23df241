package island

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/archipelab/isle/algorithm"
	isleerrors "github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/population"
	"github.com/archipelab/isle/problem"
)

// failingSearch mutates its population and then fails, to prove that the
// isolation barrier keeps worker damage away from the parent state.
type failingSearch struct {
	Message string
}

func (f *failingSearch) Evolve(_ context.Context, pop *population.Population) (*population.Population, error) {
	if pop.Len() > 0 {
		_ = pop.SetXF(0, pop.RandomX(), []float64{1e9})
	}
	return nil, stderrors.New(f.Message)
}

func (f *failingSearch) Name() string {
	return "Failing search"
}

// hermeticSearch is intentionally not registered with any descriptor
// registry, so it cannot cross the serialization barrier.
type hermeticSearch struct{}

func (hermeticSearch) Evolve(_ context.Context, pop *population.Population) (*population.Population, error) {
	return pop, nil
}

func (hermeticSearch) Name() string {
	return "Hermetic search"
}

func init() {
	if _, err := algorithm.Types.RegisterDynamic("failing_search", &failingSearch{}); err != nil {
		panic(err)
	}
}

func newPipeIsland(t *testing.T, uda algorithm.UDA) *Island {
	t.Helper()

	udp, err := problem.NewSchwefel(3)
	if err != nil {
		t.Fatalf("NewSchwefel failed: %v", err)
	}
	prob, err := problem.New(udp)
	if err != nil {
		t.Fatalf("problem.New failed: %v", err)
	}
	pop, err := population.New(prob, 12, 7)
	if err != nil {
		t.Fatalf("population.New failed: %v", err)
	}
	algo, err := algorithm.New(uda)
	if err != nil {
		t.Fatalf("algorithm.New failed: %v", err)
	}
	isl, err := New(&PipeIsland{}, algo, pop)
	if err != nil {
		t.Fatalf("island.New failed: %v", err)
	}
	return isl
}

func TestPipeIsland_Evolve(t *testing.T) {
	isl := newPipeIsland(t, algorithm.NewRandomSearch(200))

	parentPop := isl.Population()
	before, err := parentPop.Champion()
	if err != nil {
		t.Fatalf("Champion failed: %v", err)
	}

	if err := isl.Evolve(context.Background(), 3); err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}

	evolved := isl.Population()
	if evolved == parentPop {
		t.Fatal("pipe evolution should install the worker's population copy")
	}
	after, err := evolved.Champion()
	if err != nil {
		t.Fatalf("Champion failed: %v", err)
	}
	if after.F[0] > before.F[0] {
		t.Fatalf("champion worsened: %v -> %v", before.F[0], after.F[0])
	}
	if evolved.Len() != 12 {
		t.Fatalf("population size changed: %d", evolved.Len())
	}
}

func TestPipeIsland_PreservesIdentities(t *testing.T) {
	isl := newPipeIsland(t, &algorithm.Null{})

	wantIDs := make(map[string]bool)
	for _, ind := range isl.Population().Individuals() {
		wantIDs[ind.ID.String()] = true
	}

	if err := isl.Evolve(context.Background(), 1); err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}

	for _, ind := range isl.Population().Individuals() {
		if !wantIDs[ind.ID.String()] {
			t.Fatalf("individual %s did not survive the round-trip", ind.ID)
		}
	}
}

func TestPipeIsland_WorkerError(t *testing.T) {
	isl := newPipeIsland(t, &failingSearch{Message: "fitness blew up"})

	parentPop := isl.Population()
	before := parentPop.Individuals()

	err := isl.Evolve(context.Background(), 1)
	if err == nil {
		t.Fatal("worker failure should surface as an error")
	}
	var serr *isleerrors.Error
	if !stderrors.As(err, &serr) || serr.Kind != isleerrors.KindWorkerFailure {
		t.Fatalf("error = %v, want worker_failure", err)
	}
	if !strings.Contains(err.Error(), "fitness blew up") {
		t.Fatalf("worker's message should be carried, got: %v", err)
	}

	// The worker mutated only its own copy.
	if isl.Population() != parentPop {
		t.Fatal("failed evolution must not replace the population")
	}
	after := parentPop.Individuals()
	for i := range before {
		if before[i].F[0] != after[i].F[0] {
			t.Fatal("worker mutation leaked into the parent population")
		}
	}
}

func TestPipeIsland_UnserializableState(t *testing.T) {
	isl := newPipeIsland(t, hermeticSearch{})

	err := isl.Evolve(context.Background(), 1)
	if err == nil {
		t.Fatal("unregistered UDA should fail to cross the barrier")
	}
	var serr *isleerrors.Error
	if !stderrors.As(err, &serr) || serr.Kind != isleerrors.KindSerialization {
		t.Fatalf("error = %v, want serialization", err)
	}
}
