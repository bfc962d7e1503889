package property

import "github.com/rfielding/ebmc-go/hdl"

// Store is the run's ordered property sequence: stable per-run identity
// by name, the single mutated structure during solving. Properties
// are read out of the symbol table (or appended from a command-line -p
// selection upstream of Store) in the order NewStore receives them, and
// that order is preserved through solving and reporting.
type Store struct {
	props []*Property
}

// NewStore wraps sources (in symbol-table order) as fresh, UNKNOWN
// properties.
func NewStore(sources []hdl.PropertySource) *Store {
	props := make([]*Property, len(sources))
	for i, src := range sources {
		props[i] = NewFromSource(src)
	}
	return &Store{props: props}
}

// All returns every property in declaration order, enabled or not.
func (s *Store) All() []*Property { return append([]*Property{}, s.props...) }

// Enabled returns every non-Disabled property in declaration order.
func (s *Store) Enabled() []*Property {
	out := make([]*Property, 0, len(s.props))
	for _, p := range s.props {
		if p.Status != Disabled {
			out = append(out, p)
		}
	}
	return out
}

// ByName looks up a property by name, returning the first match in
// declaration order (names are not required to be unique).
func (s *Store) ByName(name string) (*Property, bool) {
	for _, p := range s.props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// SelectByName restricts the run to a single named property: every other
// property is marked DISABLED, and the first property matching name (in
// declaration order) is left enabled. Returns hdl.ErrPropertyNotFound if
// no property matches name; in that case no property's status is changed.
func (s *Store) SelectByName(name string) error {
	target, ok := s.ByName(name)
	if !ok {
		return hdl.ErrPropertyNotFound
	}
	for _, p := range s.props {
		if p == target {
			continue
		}
		p.Status = Disabled
	}
	return nil
}
