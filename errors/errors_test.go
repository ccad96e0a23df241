package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseExtract,
				Kind:   KindTypeMismatch,
				Path:   []string{"island", "udi"},
				GoType: "int",
				Detail: "expected a type",
			},
			contains: []string{"[extract]", "type_mismatch", "island.udi", "int", "expected a type"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEvolve,
				Kind:  KindWorkerFailure,
			},
			contains: []string{"[evolve]", "worker_failure"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseSerialize,
				Kind:   KindSerialization,
				Detail: "encode population",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[serialize]", "serialization", "encode population", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseKernel,
		Kind:  KindTrap,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseExtract,
		Kind:  KindInvalidArgument,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseExtract, Kind: KindInvalidArgument}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEvolve, Kind: KindInvalidArgument}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseExtract, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseExtract, Kind: KindInvalidArgument}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseRegister, KindRegistration).
		Path("types", "schwefel").
		GoType("*problem.Schwefel").
		Value(7).
		Cause(cause).
		Detail("duplicate registration of %q", "schwefel").
		Build()

	if err.Phase != PhaseRegister {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseRegister)
	}
	if err.Kind != KindRegistration {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRegistration)
	}
	if len(err.Path) != 2 || err.Path[0] != "types" || err.Path[1] != "schwefel" {
		t.Errorf("Path = %v, want [types schwefel]", err.Path)
	}
	if err.GoType != "*problem.Schwefel" {
		t.Errorf("GoType = %v, want '*problem.Schwefel'", err.GoType)
	}
	if err.Value != 7 {
		t.Errorf("Value = %v, want 7", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != `duplicate registration of "schwefel"` {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NotAType", func(t *testing.T) {
		err := NotAType(PhaseExtract, 42)
		if err.Kind != KindInvalidArgument {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidArgument)
		}
		if err.GoType != "int" {
			t.Errorf("GoType = %v, want int", err.GoType)
		}
		if !strings.Contains(err.Detail, "must be a type") {
			t.Errorf("Detail = %v, should name the contract", err.Detail)
		}
	})

	t.Run("Dimension", func(t *testing.T) {
		err := Dimension(PhaseValidate, 3, 5)
		if err.Kind != KindDimension {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDimension)
		}
		if !strings.Contains(err.Detail, "3") || !strings.Contains(err.Detail, "5") {
			t.Errorf("Detail = %v, should contain both dimensions", err.Detail)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseRuntime, "problem", "schwefel")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
	})

	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseRuntime, "population")
		if err.Kind != KindNotInitialized {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotInitialized)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		err := Registration("schwefel", errors.New("dup"))
		if err.Kind != KindRegistration {
			t.Errorf("Kind = %v, want %v", err.Kind, KindRegistration)
		}
		if err.Phase != PhaseRegister {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseRegister)
		}
	})

	t.Run("Serialization", func(t *testing.T) {
		cause := errors.New("gob: type not registered")
		err := Serialization("encode algorithm", cause)
		if err.Kind != KindSerialization {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSerialization)
		}
		if !errors.Is(err.Cause, cause) {
			t.Error("cause not preserved")
		}
	})

	t.Run("WorkerFailure", func(t *testing.T) {
		err := WorkerFailure("fitness length mismatch")
		if err.Kind != KindWorkerFailure {
			t.Errorf("Kind = %v, want %v", err.Kind, KindWorkerFailure)
		}
		if err.Phase != PhaseEvolve {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseEvolve)
		}
	})

	t.Run("Trap", func(t *testing.T) {
		err := Trap(errors.New("out of bounds memory access"), "call fitness")
		if err.Kind != KindTrap {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTrap)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseKernel, "multi-objective kernels")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}
