package netlist

import (
	"github.com/irifrance/gini/z"
	"github.com/rfielding/ebmc-go/solver"
)

// bits.go is the bit-blasting toolkit shared by the netlist builder (latch
// next-state functions) and the word-level property compiler: one
// combinational gate template per operator, built over the shared circuit.

func xor1(s *solver.SAT, a, b z.Lit) z.Lit {
	return s.Or(s.And(a, b.Not()), s.And(a.Not(), b))
}

// constBits returns the little-endian bit literals of value, truncated to
// width bits.
func constBits(s *solver.SAT, value uint64, width int) []z.Lit {
	out := make([]z.Lit, width)
	for i := 0; i < width; i++ {
		if value&(1<<uint(i)) != 0 {
			out[i] = s.True()
		} else {
			out[i] = s.False()
		}
	}
	return out
}

// fullAdder returns (sum, carryOut) for one bit position.
func fullAdder(s *solver.SAT, a, b, cin z.Lit) (z.Lit, z.Lit) {
	axb := xor1(s, a, b)
	sum := xor1(s, axb, cin)
	cout := s.Or(s.And(a, b), s.And(axb, cin))
	return sum, cout
}

// fullSub returns (diff, borrowOut) for one bit position.
func fullSub(s *solver.SAT, a, b, bin z.Lit) (z.Lit, z.Lit) {
	axb := xor1(s, a, b)
	diff := xor1(s, axb, bin)
	bout := s.Or(s.And(a.Not(), b), s.And(s.Or(a.Not(), b), bin))
	return diff, bout
}

// addBitsCarry adds a and b (same length, little-endian), returning the
// width-truncated sum and the final carry-out.
func addBitsCarry(s *solver.SAT, a, b []z.Lit) ([]z.Lit, z.Lit) {
	n := len(a)
	sum := make([]z.Lit, n)
	carry := s.False()
	for i := 0; i < n; i++ {
		sum[i], carry = fullAdder(s, a[i], b[i], carry)
	}
	return sum, carry
}

// addBits is addBitsCarry without the carry-out: this is exactly modular
// (mod 2^width) addition, which is what a fixed-width HDL register wrap
// naturally computes.
func addBits(s *solver.SAT, a, b []z.Lit) []z.Lit {
	sum, _ := addBitsCarry(s, a, b)
	return sum
}

// subBits computes a-b via two's complement (invert b, add with carry-in 1).
func subBits(s *solver.SAT, a, b []z.Lit) []z.Lit {
	n := len(b)
	notB := make([]z.Lit, n)
	for i, l := range b {
		notB[i] = l.Not()
	}
	carry := s.True() // carry-in 1 completes two's-complement negation of b
	sum := make([]z.Lit, n)
	for i := 0; i < n; i++ {
		sum[i], carry = fullAdder(s, a[i], notB[i], carry)
	}
	return sum
}

// eqBits reports bitwise equality.
func eqBits(s *solver.SAT, a, b []z.Lit) z.Lit {
	eqs := make([]z.Lit, len(a))
	for i := range a {
		eqs[i] = xor1(s, a[i], b[i]).Not()
	}
	return s.And(eqs...)
}

// ltBits computes unsigned a < b via a ripple borrow chain over a - b.
func ltBits(s *solver.SAT, a, b []z.Lit) z.Lit {
	borrow := s.False()
	for i := 0; i < len(a); i++ {
		_, borrow = fullSub(s, a[i], b[i], borrow)
	}
	return borrow
}

func lteBits(s *solver.SAT, a, b []z.Lit) z.Lit { return ltBits(s, b, a).Not() }
func gtBits(s *solver.SAT, a, b []z.Lit) z.Lit  { return ltBits(s, b, a) }
func gteBits(s *solver.SAT, a, b []z.Lit) z.Lit { return ltBits(s, a, b).Not() }

// muxBits selects a when sel is true, else b.
func muxBits(s *solver.SAT, sel z.Lit, a, b []z.Lit) []z.Lit {
	out := make([]z.Lit, len(a))
	for i := range a {
		out[i] = s.Or(s.And(sel, a[i]), s.And(sel.Not(), b[i]))
	}
	return out
}

// modBits computes a % modulus. When modulus equals 2^len(a) this is a
// no-op truncation (the common "counter wraps at its declared width" case,
// e.g. a 2-bit counter mod 4). For any other modulus, a single conditional
// subtraction is used, which is exact as long as a never exceeds
// 2*modulus-1, true for every single-increment counter in this package's
// examples. A general iterated-subtraction reduction tree is not
// implemented.
func modBits(s *solver.SAT, a []z.Lit, modulus uint64, width int) []z.Lit {
	if modulus == 0 || modulus == uint64(1)<<uint(width) {
		return a
	}
	m := constBits(s, modulus, width)
	diff := subBits(s, a, m)
	ge := gteBits(s, a, m)
	return muxBits(s, ge, diff, a)
}
