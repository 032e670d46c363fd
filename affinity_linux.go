//go:build linux

package hwtopo

import "golang.org/x/sys/unix"

func pinCurrentThread(lpID uint32) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(int(lpID))
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return errAffinity("sched_setaffinity(lp %d): %s", lpID, err)
	}
	return nil
}

func setCurrentThreadAffinity(mask AffinityMask) error {
	var set unix.CPUSet
	set.Zero()
	for _, lp := range mask.Iter() {
		set.Set(int(lp))
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return errAffinity("sched_setaffinity: %s", err)
	}
	return nil
}
