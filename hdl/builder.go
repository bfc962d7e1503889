package hdl

import "github.com/rfielding/ebmc-go/expr"

// Builder constructs an elaborated Module fluently. It stands in for the
// HDL front-end elaboration this checker consumes rather than implements:
// tests and package examples build fixtures with it directly.
type Builder struct {
	name       string
	mode       string
	stateVars  []VarDecl
	inputVars  []VarDecl
	initConj   []expr.Expr
	transConj  []expr.Expr
	properties []PropertySource
}

// NewBuilder starts a module named name. mode is the HDL dialect tag
// attached to properties; pass "" if irrelevant.
func NewBuilder(name, mode string) *Builder {
	return &Builder{name: name, mode: mode}
}

func (b *Builder) State(name string, width int) *Builder {
	b.stateVars = append(b.stateVars, VarDecl{Name: name, Width: width, Kind: StateVar})
	return b
}

func (b *Builder) Input(name string, width int) *Builder {
	b.inputVars = append(b.inputVars, VarDecl{Name: name, Width: width, Kind: InputVar})
	return b
}

// Init adds a conjunct to the initial-state predicate.
func (b *Builder) Init(p expr.Expr) *Builder {
	b.initConj = append(b.initConj, p)
	return b
}

// Trans adds a conjunct to the transition predicate.
func (b *Builder) Trans(p expr.Expr) *Builder {
	b.transConj = append(b.transConj, p)
	return b
}

// Property attaches a named safety property to the module, as if it had
// been read out of the symbol table rather than supplied on the command
// line.
func (b *Builder) Property(name string, p expr.Expr) *Builder {
	b.properties = append(b.properties, PropertySource{
		Name:        name,
		Expr:        expr.WrapImplicitAlways(p),
		Mode:        b.mode,
		Description: "module property",
	})
	return b
}

// Build finalizes the module.
func (b *Builder) Build() *Module {
	sys := NewSystem(expr.AndAll(b.initConj...), expr.AndAll(b.transConj...), b.stateVars, b.inputVars)
	return &Module{
		name:       b.name,
		mode:       b.mode,
		system:     sys,
		properties: append([]PropertySource{}, b.properties...),
	}
}
