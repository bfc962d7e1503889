package hdl

import (
	"fmt"

	"github.com/rfielding/ebmc-go/bmcerr"
	"github.com/rfielding/ebmc-go/expr"
)

// Sentinel errors for symbol table lookups. Each wraps the bmcerr sentinel
// its failure class belongs to, so callers that only check bmcerr.ExitCode
// (rather than this package's own sentinels) still get the right exit
// code: an unresolved top module is ModelMalformed (a symbol-table
// resolution failure), while a bad --property selection is a property-set
// failure (the set itself could not be assembled as requested, distinct
// from a bad model or bad flags).
var (
	ErrModuleNotFound   = fmt.Errorf("%w: module not found", bmcerr.ErrModelMalformed)
	ErrNoMainModule     = fmt.Errorf("%w: no main module and none specified", bmcerr.ErrModelMalformed)
	ErrAmbiguousMain    = fmt.Errorf("%w: multiple modules present; --module/--top required", bmcerr.ErrModelMalformed)
	ErrPropertyNotFound = fmt.Errorf("%w: named property not found", bmcerr.ErrPropertySet)
)

// PropertySource is a property as it exists in the elaborated symbol table,
// before lowering: an origin, its parsed expression, and the HDL dialect
// ("mode") it came from.
type PropertySource struct {
	Name string
	Expr expr.Expr
	Mode string
	// Description is a human-readable origin string ("command-line
	// assertion" or the HDL comment attached to the property symbol).
	Description string
}

// Module is one elaborated HDL module: a name, its transition System, and
// the properties attached to it in the symbol table (as opposed to
// properties supplied on the command line, which are appended separately
// by the caller).
type Module struct {
	name       string
	mode       string
	system     *System
	properties []PropertySource
}

func (m *Module) Name() string                  { return m.name }
func (m *Module) Mode() string                   { return m.mode }
func (m *Module) System() *System                { return m.system }
func (m *Module) Properties() []PropertySource   { return append([]PropertySource{}, m.properties...) }

// SymbolTable is the read-only-after-typecheck collection of elaborated
// modules a front-end hands the checker.
type SymbolTable struct {
	modules map[string]*Module
	order   []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{modules: make(map[string]*Module)}
}

// AddModule registers an elaborated module. Re-adding a name overwrites it,
// mirroring how a front-end might re-elaborate on reparse.
func (st *SymbolTable) AddModule(m *Module) {
	if _, exists := st.modules[m.name]; !exists {
		st.order = append(st.order, m.name)
	}
	st.modules[m.name] = m
}

func (st *SymbolTable) Lookup(name string) (*Module, bool) {
	m, ok := st.modules[name]
	return m, ok
}

// ModuleNames returns module names in registration order.
func (st *SymbolTable) ModuleNames() []string {
	return append([]string{}, st.order...)
}

// GetMain resolves the top module by name: an explicit name is looked up
// directly; an empty name falls back to a module named "main", or to the
// sole registered module, erroring otherwise.
func (st *SymbolTable) GetMain(topName string) (*Module, error) {
	if topName != "" {
		m, ok := st.modules[topName]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, topName)
		}
		return m, nil
	}
	if m, ok := st.modules["main"]; ok {
		return m, nil
	}
	if len(st.order) == 1 {
		return st.modules[st.order[0]], nil
	}
	if len(st.order) == 0 {
		return nil, ErrNoMainModule
	}
	return nil, ErrAmbiguousMain
}
