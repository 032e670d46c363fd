//go:build darwin

package hwtopo

import "golang.org/x/sys/unix"

// sysctl wrappers follow the two-call (size query, then fetch) protocol
// internally via golang.org/x/sys/unix; ENOENT on an optional key means
// "not available on this system" (spec.md §4.4), so these all collapse
// absence into the zero value rather than propagating the error.

func sysctl(name string) string {
	v, err := unix.Sysctl(name)
	if err != nil {
		return ""
	}
	return v
}

func sysctl32(name string) (uint32, bool) {
	v, err := unix.SysctlUint32(name)
	if err != nil {
		return 0, false
	}
	return v, true
}

func sysctl64(name string) (uint64, bool) {
	v, err := unix.SysctlUint64(name)
	if err != nil {
		return 0, false
	}
	return v, true
}

func sysctlBool(name string) bool {
	v, ok := sysctl32(name)
	return ok && v != 0
}
