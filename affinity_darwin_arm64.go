//go:build darwin && arm64

package hwtopo

// Apple Silicon rejects affinity policy outright: the kernel dynamically
// manages core assignment by QoS, power, and thermal state (spec.md
// §4.5). Callers must use SetCurrentThreadPriority instead.
func pinCurrentThread(lpID uint32) error {
	return errUnsupported("thread affinity is not supported on Apple Silicon; use priority/QoS instead")
}

func setCurrentThreadAffinity(mask AffinityMask) error {
	return errUnsupported("thread affinity is not supported on Apple Silicon; use priority/QoS instead")
}
