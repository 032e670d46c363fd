package hwtopo

import "sync"

var (
	topologyOnce sync.Once
	topologyVal  *Topology
	topologyErr  error
)

// Topo returns the process-wide Topology, detecting it on first call and
// caching the result (or the error) for every subsequent call. All
// callers on a given machine observe the same *Topology reference;
// losers of the first-call race block on the winner's detection rather
// than performing their own (spec.md §5).
func Topo() (*Topology, error) {
	topologyOnce.Do(func() {
		t, err := detect()
		if err != nil {
			topologyErr = err
			return
		}
		t.finalize()
		if verr := t.validate(); verr != nil {
			topologyErr = verr
			return
		}
		topologyVal = t
	})
	return topologyVal, topologyErr
}

// MustTopo is like Topo but panics if detection failed. It exists for
// callers, such as init-time configuration, where a missing topology is
// unrecoverable.
func MustTopo() *Topology {
	t, err := Topo()
	if err != nil {
		panic(err)
	}
	return t
}

// NumPhysicalCores is a convenience accessor on the cached Topology.
func NumPhysicalCores() (int, error) {
	t, err := Topo()
	if err != nil {
		return 0, err
	}
	return t.TotalPhysicalCores, nil
}

// NumLogicalProcessors is a convenience accessor on the cached Topology.
func NumLogicalProcessors() (int, error) {
	t, err := Topo()
	if err != nil {
		return 0, err
	}
	return t.TotalLogicalProcessors, nil
}

// NumPerformanceCores is a convenience accessor on the cached Topology.
func NumPerformanceCores() (int, error) {
	t, err := Topo()
	if err != nil {
		return 0, err
	}
	return t.TotalPerformanceCores, nil
}

// NumEfficiencyCores is a convenience accessor on the cached Topology.
func NumEfficiencyCores() (int, error) {
	t, err := Topo()
	if err != nil {
		return 0, err
	}
	return t.TotalEfficiencyCores, nil
}

// IsHybrid is a convenience accessor on the cached Topology.
func IsHybrid() (bool, error) {
	t, err := Topo()
	if err != nil {
		return false, err
	}
	return t.IsHybrid(), nil
}

// PinCurrentThread restricts the calling OS thread to lpID alone. The
// caller must have already locked the goroutine to its OS thread with
// runtime.LockOSThread; PinCurrentThread does not do this itself because
// it has no way to unlock it again safely on the caller's behalf.
func PinCurrentThread(lpID uint32) error {
	t, err := Topo()
	if err != nil {
		return err
	}
	if err := validateLPID(t, lpID); err != nil {
		return err
	}
	return pinCurrentThread(lpID)
}

// SetCurrentThreadAffinity restricts the calling OS thread to the
// logical processors set in mask.
func SetCurrentThreadAffinity(mask AffinityMask) error {
	if mask.IsEmpty() {
		return errAffinity("affinity mask must not be empty")
	}
	t, err := Topo()
	if err != nil {
		return err
	}
	for _, lp := range mask.Iter() {
		if err := validateLPID(t, lp); err != nil {
			return err
		}
	}
	return setCurrentThreadAffinity(mask)
}

// SetCurrentThreadPriority sets the calling OS thread's scheduling
// priority to the abstract level p.
func SetCurrentThreadPriority(p Priority) error {
	if p < Background || p > TimeCritical {
		return errInvalidParameter("priority out of range: %d", int(p))
	}
	return setCurrentThreadPriority(p)
}

// validateLPID reports an InvalidCoreID error if lpID does not name a
// logical processor present in t.
func validateLPID(t *Topology, lpID uint32) error {
	for _, s := range t.Sockets {
		for _, c := range s.Cores {
			if c.HasLP(lpID) {
				return nil
			}
		}
	}
	return errInvalidCoreID(int(lpID))
}
