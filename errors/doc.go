// Package errors provides structured error types for the eagerlink toolchain.
//
// Errors are categorized by Phase (where in the pipeline the error occurred)
// and Kind (error category). The Error type includes rich context: the
// binding name, the scheduled section name, a field path, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindCapability).
//		Binding("ROUTE_TABLE").
//		Detail("type Device lacks the share capability").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedPlatform(errors.PhaseSchedule, "plan9")
//	err := errors.MissingCapability("ROUTE_TABLE", "Device", "share")
//
// All build-time phases (parse, validate, schedule, generate) are fatal and
// block artifact production; there is no warn-and-continue path. The
// construct phase has exactly one failure mode, the startup fault, which
// mirrors the platform loader aborting the process on a failing pre-entry
// constructor.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
