// Package hwcbmc is the integration seam for acquiring a model from an
// external hw-cbmc-style front-end (Verilog/VHDL elaboration) instead of
// constructing an hdl.SymbolTable directly via package hdl's Builder. No
// such front-end is implemented here; this package only defines the
// acquisition contract and its designated failure mode, so callers
// (package cmd/ebmc) have a single place to plug a real front-end into
// later without reshaping the orchestrator.
package hwcbmc

import (
	"errors"
	"fmt"

	"github.com/rfielding/ebmc-go/bmcerr"
	"github.com/rfielding/ebmc-go/hdl"
)

// ErrAcquisitionFailed is returned when an external model source could not
// produce a symbol table (e.g. the front-end tool failed or is absent).
// This maps to exit code 6, as opposed to ErrModelMalformed's "the model
// was read but is inconsistent".
var ErrAcquisitionFailed = errors.New("hwcbmc: model acquisition failed")

// Source is the interface a real front-end integration would implement:
// given a path to a design, produce an elaborated symbol table.
type Source interface {
	Acquire(path string) (*hdl.SymbolTable, error)
}

// Unavailable is the zero-value Source used when no front-end is wired in;
// every call fails with ErrAcquisitionFailed, wrapped with
// bmcerr.ErrAcquisition so bmcerr.ExitCode maps it to 6 regardless of
// which sentinel a caller checks for.
type Unavailable struct{}

func (Unavailable) Acquire(path string) (*hdl.SymbolTable, error) {
	return nil, fmt.Errorf("%w: %w: no hardware front-end is wired into this build (path %q)", bmcerr.ErrAcquisition, ErrAcquisitionFailed, path)
}
