package hwtopo

import "fmt"

// Topology is the canonical, immutable description of the host CPU:
// sockets, their cores and logical processors, attached caches, and a
// feature bitset (spec.md §3).
//
// A Topology is built exactly once per process by detect() and never
// mutated afterward; callers may share a *Topology across goroutines
// without synchronisation.
type Topology struct {
	Vendor    Vendor
	ModelName string
	Features  FeatureSet
	Sockets   []*Socket

	TotalSockets           int
	TotalPhysicalCores     int
	TotalLogicalProcessors int
	TotalPerformanceCores  int
	TotalEfficiencyCores   int
}

// IsHybrid reports whether the machine has both performance and
// efficiency cores (spec.md §8, property 8).
func (t *Topology) IsHybrid() bool {
	return t.TotalPerformanceCores > 0 && t.TotalEfficiencyCores > 0
}

// coreByGlobalID returns the core with the given dense global ID, or nil.
func (t *Topology) coreByGlobalID(id uint32) *PhysicalCore {
	for _, s := range t.Sockets {
		for _, c := range s.Cores {
			if c.GlobalID == id {
				return c
			}
		}
	}
	return nil
}

// finalize computes the five aggregate counters from Sockets and
// degenerates an all-Unknown classification to all-Performance, per
// spec.md §3 ("If no core is classed Efficiency, all are Performance").
// Topo calls it once on the Topology returned by the platform back-end's
// detect(), before validating and publishing it.
func (t *Topology) finalize() {
	t.TotalSockets = len(t.Sockets)

	hasEfficiency := false
	for _, s := range t.Sockets {
		for _, c := range s.Cores {
			if c.Class == CoreEfficiency {
				hasEfficiency = true
			}
		}
	}
	if !hasEfficiency {
		for _, s := range t.Sockets {
			for _, c := range s.Cores {
				if c.Class == CoreUnknown {
					c.Class = CorePerformance
				}
			}
		}
	}

	t.TotalPhysicalCores = 0
	t.TotalLogicalProcessors = 0
	t.TotalPerformanceCores = 0
	t.TotalEfficiencyCores = 0
	for _, s := range t.Sockets {
		t.TotalPhysicalCores += s.NumCores()
		for _, c := range s.Cores {
			t.TotalLogicalProcessors += c.NumLogicalProcessors()
			switch c.Class {
			case CorePerformance:
				t.TotalPerformanceCores++
			case CoreEfficiency:
				t.TotalEfficiencyCores++
			}
		}
	}
}

// validate checks the universal invariants of spec.md §8 against an
// assembled Topology. Topo calls it after finalize, and the back-end
// tests call it on their fixtures; a violation indicates a back-end bug
// rather than an unusual but legitimate host, so it is reported as a
// Detection error rather than silently tolerated.
func (t *Topology) validate() error {
	seenLP := make(map[uint32]bool)
	seenGlobalID := make(map[uint32]bool)

	for _, s := range t.Sockets {
		if len(s.Cores) == 0 {
			return errDetection(fmt.Sprintf("socket %d has no cores", s.ID))
		}
		for _, c := range s.Cores {
			if c.SocketID != s.ID {
				return errDetection(fmt.Sprintf("core %d: socket_id %d does not match containing socket %d", c.GlobalID, c.SocketID, s.ID))
			}
			if len(c.LPIDs) == 0 {
				return errDetection(fmt.Sprintf("core %d has no logical processors", c.GlobalID))
			}
			for i := 1; i < len(c.LPIDs); i++ {
				if c.LPIDs[i] <= c.LPIDs[i-1] {
					return errDetection(fmt.Sprintf("core %d: lp_ids not strictly increasing", c.GlobalID))
				}
			}
			for _, lp := range c.LPIDs {
				if seenLP[lp] {
					return errDetection(fmt.Sprintf("logical processor %d appears in more than one core", lp))
				}
				seenLP[lp] = true
			}
			if seenGlobalID[c.GlobalID] {
				return errDetection(fmt.Sprintf("duplicate core global_id %d", c.GlobalID))
			}
			seenGlobalID[c.GlobalID] = true
			for _, cache := range []*CacheDescriptor{c.L1I, c.L1D, c.L2} {
				if cache != nil && !cache.valid() {
					return errDetection("cache descriptor present with zero size or line width")
				}
			}
		}
	}

	for i := 0; i < t.TotalPhysicalCores; i++ {
		if !seenGlobalID[uint32(i)] {
			return errDetection(fmt.Sprintf("core global_id range is not contiguous: missing %d", i))
		}
	}

	if t.TotalPerformanceCores+t.TotalEfficiencyCores > t.TotalPhysicalCores {
		return errDetection("performance + efficiency core counts exceed total physical cores")
	}
	for _, s := range t.Sockets {
		if s.L3 != nil && !s.L3.valid() {
			return errDetection("socket L3 descriptor present with zero size or line width")
		}
	}

	return nil
}
