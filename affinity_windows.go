//go:build windows

package hwtopo

var (
	procSetThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

func currentThreadHandle() uintptr {
	h, _, _ := procGetCurrentThread.Call()
	return h
}

// setThreadAffinityMask wraps SetThreadAffinityMask. Only the first 64
// logical processors are addressable this way (spec.md §4.3/§9 open
// question): lp_id >= 64 is rejected by the caller before this is
// reached.
func setThreadAffinityMask(mask uint64) error {
	r, _, err := procSetThreadAffinityMask.Call(currentThreadHandle(), uintptr(mask))
	if r == 0 {
		return errAffinity("SetThreadAffinityMask: %s", err)
	}
	return nil
}

func pinCurrentThread(lpID uint32) error {
	if lpID >= 64 {
		return errInvalidCoreID(int(lpID))
	}
	return setThreadAffinityMask(1 << lpID)
}

func setCurrentThreadAffinity(mask AffinityMask) error {
	for _, lp := range mask.Iter() {
		if lp >= 64 {
			return errInvalidCoreID(int(lp))
		}
	}
	return setThreadAffinityMask(mask.AsRawU64())
}
