package hwtopo

// CoreClass distinguishes performance from efficiency cores on a hybrid
// part (spec.md §3). CoreUnknown is only transient during detection:
// when no core is classed CoreEfficiency, Topology.finalize promotes every
// CoreUnknown core to CorePerformance, so a homogeneous part reports all
// cores as CorePerformance.
type CoreClass uint8

const (
	CoreUnknown CoreClass = iota
	CorePerformance
	CoreEfficiency
)

// PhysicalCore is one physical core and the logical processors (hardware
// threads) it exposes, plus the private caches attached to it.
//
// Invariant (spec.md §3): LPIDs is non-empty and strictly increasing.
// L1I, L1D, and L2 are nil when the platform back-end could not
// establish a valid descriptor for that level, callers must nil-check
// before dereferencing.
type PhysicalCore struct {
	GlobalID uint32
	SocketID uint32
	Class    CoreClass

	// LPIDs lists the logical processor (hardware thread) IDs exposed by
	// this core, in increasing order. A single-threaded core has exactly
	// one entry.
	LPIDs []uint32

	L1I *CacheDescriptor
	L1D *CacheDescriptor
	L2  *CacheDescriptor
}

// NumLogicalProcessors returns len(c.LPIDs).
func (c *PhysicalCore) NumLogicalProcessors() int {
	return len(c.LPIDs)
}

// HasLP reports whether lpID is one of this core's logical processors.
func (c *PhysicalCore) HasLP(lpID uint32) bool {
	for _, id := range c.LPIDs {
		if id == lpID {
			return true
		}
	}
	return false
}
