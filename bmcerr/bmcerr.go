// Package bmcerr classifies the failures the checker can hit into the
// classes its process exit codes report: usage errors, malformed models,
// solver failures, model-acquisition failures, and property-set failures.
// Internal packages wrap these sentinels and return plain errors; only the
// command-line layer converts them to exit codes.
package bmcerr

import "errors"

// ErrUsage is wrapped around command-line and flag-acquisition failures
// (unknown flag, missing required argument, no properties to check,
// out-of-scope feature request such as --interpolation). Exit code 1.
var ErrUsage = errors.New("usage error")

// ErrModelMalformed is wrapped around failures discovered while building
// the netlist or symbol table: undeclared signals, modules with state but
// no transition relation, ambiguous or missing main module. Exit code 1,
// shared with ErrUsage: both abort before any solver state is created.
var ErrModelMalformed = errors.New("model malformed")

// ErrSolver is wrapped around failures reported by the underlying decision
// procedure itself (as opposed to failures in the model being checked).
// Exit code 2.
var ErrSolver = errors.New("solver error")

// ErrAcquisition is wrapped around failures to acquire a model from an
// external software front-end (the hw-cbmc integration seam). Exit code 6.
var ErrAcquisition = errors.New("model acquisition failed")

// ErrPropertySet is wrapped around failures assembling the property set
// itself, e.g. a --property selection naming no known property. Exit
// code 7.
var ErrPropertySet = errors.New("property-set failure")

// ExitCode maps err (possibly wrapped) to a process exit status:
// 0 success, 1 usage or model error, 2 decision-procedure error, 6 model
// acquisition failure, 7 property-set failure, 1 for anything
// unrecognized. The 10 a violated property yields is not produced here:
// a FAILURE verdict is a result, not an error, and the orchestrator maps
// it directly.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage), errors.Is(err, ErrModelMalformed):
		return 1
	case errors.Is(err, ErrSolver):
		return 2
	case errors.Is(err, ErrAcquisition):
		return 6
	case errors.Is(err, ErrPropertySet):
		return 7
	default:
		return 1
	}
}
