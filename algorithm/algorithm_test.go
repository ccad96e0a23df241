package algorithm

import (
	"bytes"
	"context"
	"encoding/gob"
	stderrors "errors"
	"testing"

	isleerrors "github.com/archipelab/isle/errors"
	"github.com/archipelab/isle/population"
	"github.com/archipelab/isle/problem"
	"github.com/archipelab/isle/types"
)

// echoSearch is a dynamic UDA fixture that records evolve calls.
type echoSearch struct {
	Calls int
}

func (e *echoSearch) Evolve(ctx context.Context, pop *population.Population) (*population.Population, error) {
	e.Calls++
	return pop, nil
}

func (e *echoSearch) Name() string {
	return "Echo search"
}

func newTestPopulation(t *testing.T, size int) *population.Population {
	t.Helper()
	udp, err := problem.NewSphere(2)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	prob, err := problem.New(udp)
	if err != nil {
		t.Fatalf("problem.New failed: %v", err)
	}
	pop, err := population.New(prob, size, 17)
	if err != nil {
		t.Fatalf("population.New failed: %v", err)
	}
	return pop
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("nil UDA should fail")
	}
}

func TestNull_IsIdentity(t *testing.T) {
	a, err := New(&Null{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	pop := newTestPopulation(t, 3)
	before := pop.Individuals()

	out, err := a.Evolve(context.Background(), pop)
	if err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}
	if out != pop {
		t.Fatal("null algorithm should return its input")
	}
	after := out.Individuals()
	for i := range before {
		if after[i].ID != before[i].ID || after[i].F[0] != before[i].F[0] {
			t.Fatalf("individual %d changed", i)
		}
	}
}

func TestRandomSearch(t *testing.T) {
	if NewRandomSearch(0).Iters != 1 {
		t.Fatal("non-positive iterations should default to 1")
	}

	a, err := New(NewRandomSearch(50))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	pop := newTestPopulation(t, 5)
	before, err := pop.Champion()
	if err != nil {
		t.Fatalf("Champion failed: %v", err)
	}

	out, err := a.Evolve(context.Background(), pop)
	if err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}
	after, err := out.Champion()
	if err != nil {
		t.Fatalf("Champion failed: %v", err)
	}
	if after.F[0] > before.F[0] {
		t.Fatalf("champion worsened: %v -> %v", before.F[0], after.F[0])
	}
	if out.Len() != 5 {
		t.Fatalf("Len = %d, want 5", out.Len())
	}
}

func TestRandomSearch_EmptyPopulation(t *testing.T) {
	pop := newTestPopulation(t, 0)
	out, err := NewRandomSearch(10).Evolve(context.Background(), pop)
	if err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}
	if out != pop {
		t.Fatal("empty population should pass through unchanged")
	}
}

func TestRandomSearch_ContextCancelled(t *testing.T) {
	a, err := New(NewRandomSearch(1000))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Evolve(ctx, newTestPopulation(t, 3)); err == nil {
		t.Fatal("cancelled context should abort the evolution")
	}
}

func TestEvolve_NilPopulation(t *testing.T) {
	a, err := New(&Null{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := a.Evolve(context.Background(), nil); err == nil {
		t.Fatal("nil population should fail")
	}
}

func TestExtract(t *testing.T) {
	uda := NewRandomSearch(3)
	a, err := New(uda)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := a.Extract(types.Of[*RandomSearch]())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != UDA(uda) {
		t.Fatal("Extract should return the wrapped UDA")
	}

	got, err = a.Extract(types.Of[*Null]())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != nil {
		t.Fatal("Extract of a different type should be nil")
	}

	for _, arg := range []any{3, "random_search", nil} {
		if _, err := a.Extract(arg); err == nil {
			t.Fatalf("Extract(%#v) should fail", arg)
		} else {
			var serr *isleerrors.Error
			if !stderrors.As(err, &serr) || serr.Kind != isleerrors.KindInvalidArgument {
				t.Fatalf("Extract(%#v) error = %v, want invalid_argument", arg, err)
			}
		}
	}
}

func TestExtract_Dynamic(t *testing.T) {
	uda := &echoSearch{}
	a, err := New(uda)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := a.Extract(types.Of[*echoSearch]())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != UDA(uda) {
		t.Fatal("dynamic extraction should return the wrapped UDA")
	}

	if ok, err := a.Is(types.Of[*RandomSearch]()); err != nil || ok {
		t.Fatalf("Is = %v, %v; want false", ok, err)
	}

	rs, ok := ExtractAs[*echoSearch](a)
	if !ok || rs != uda {
		t.Fatal("ExtractAs should return the wrapped UDA")
	}
}

func TestExtraInfo(t *testing.T) {
	a, err := New(NewRandomSearch(7))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.ExtraInfo() != "Iterations: 7" {
		t.Fatalf("ExtraInfo = %q", a.ExtraInfo())
	}

	b, err := New(&echoSearch{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.ExtraInfo() != "" {
		t.Fatalf("ExtraInfo = %q, want empty", b.ExtraInfo())
	}
}

func TestGobRoundTrip(t *testing.T) {
	a, err := New(NewRandomSearch(12))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(a); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var restored Algorithm
	if err := gob.NewDecoder(&buf).Decode(&restored); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if restored.Name() != "Random search" {
		t.Fatalf("Name = %q", restored.Name())
	}
	rs, ok := ExtractAs[*RandomSearch](&restored)
	if !ok || rs.Iters != 12 {
		t.Fatalf("restored UDA = %#v", rs)
	}
}
