// Package errors provides structured error types for the isle library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseExtract, errors.KindInvalidArgument).
//		GoType("int").
//		Detail("the type parameter must be a type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotAType(errors.PhaseExtract, 42)
//	err := errors.Dimension(errors.PhaseValidate, 3, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
