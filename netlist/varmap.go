package netlist

import "github.com/irifrance/gini/z"

// Bit is one bit's present-frame and next-frame literal. For latches
// Current and Next differ (Next is the next-state function's output
// literal); for inputs and pure combinational signals they coincide.
type Bit struct {
	Current z.Lit
	Next    z.Lit
}

func (b Bit) IsLatchBit() bool { return b.Current != b.Next }

// VarMap maps (HDL variable identifier, bit index) to a Bit.
type VarMap struct {
	order   []string       // declaration order, for stable dumps
	entries map[string][]Bit
	isLatch map[string]bool
}

func newVarMap() *VarMap {
	return &VarMap{entries: make(map[string][]Bit), isLatch: make(map[string]bool)}
}

func (vm *VarMap) declare(name string, bits []Bit, latch bool) {
	if _, exists := vm.entries[name]; !exists {
		vm.order = append(vm.order, name)
	}
	vm.entries[name] = bits
	vm.isLatch[name] = latch
}

// Bits returns the bit vector (current/next literal pairs) for name.
func (vm *VarMap) Bits(name string) ([]Bit, bool) {
	b, ok := vm.entries[name]
	return b, ok
}

// CurrentLits returns just the "current" literals of name, LSB first.
func (vm *VarMap) CurrentLits(name string) []z.Lit {
	bits := vm.entries[name]
	out := make([]z.Lit, len(bits))
	for i, b := range bits {
		out[i] = b.Current
	}
	return out
}

// NextLits returns just the "next" literals of name, LSB first.
func (vm *VarMap) NextLits(name string) []z.Lit {
	bits := vm.entries[name]
	out := make([]z.Lit, len(bits))
	for i, b := range bits {
		out[i] = b.Next
	}
	return out
}

// IsLatch reports whether name is a sequential (latched) variable.
func (vm *VarMap) IsLatch(name string) bool { return vm.isLatch[name] }

// Names returns all declared variable names in declaration order.
func (vm *VarMap) Names() []string { return append([]string{}, vm.order...) }

// LatchEntry names one element of the Netlist's latch list.
type LatchEntry struct {
	Name string
	Bit  int
	Lit  Bit
}
