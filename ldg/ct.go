package ldg

import "github.com/rfielding/ebmc-go/netlist"

// MaxSafeExponent bounds how many latch bits ComputeCT will exponentiate
// before giving up (2^64 already overflows uint64; we stop well short of
// that so the bound is still a meaningful number rather than wraparound
// garbage).
const MaxSafeExponent = 62

// ComputeCT derives a structural completeness-threshold upper bound on the
// recurrence diameter: the number of distinct states the latch bits can
// represent is an upper bound on how many steps a BMC run must unwind
// before any further step is guaranteed to revisit an already-seen state.
// ok is false when the latch
// count makes 2^bits exceed what a uint64 can represent, in which case the
// bound is not usable and the caller should fall back to a user-supplied
// --max-bound instead.
func ComputeCT(nl *netlist.Netlist) (bound uint64, ok bool) {
	bits := 0
	for _, l := range nl.Latches {
		_ = l
		bits++
	}
	if bits == 0 {
		return 1, true
	}
	if bits > MaxSafeExponent {
		return 0, false
	}
	return uint64(1) << uint(bits), true
}
