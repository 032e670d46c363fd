//go:build darwin && amd64

package hwtopo

/*
#include <mach/mach.h>
#include <mach/thread_policy.h>
#include <pthread.h>

static kern_return_t hwtopo_set_thread_affinity(integer_t tag) {
	thread_affinity_policy_data_t policy = { tag };
	thread_port_t thread = pthread_mach_thread_np(pthread_self());
	return thread_policy_set(thread, THREAD_AFFINITY_POLICY, (thread_policy_t)&policy, THREAD_AFFINITY_POLICY_COUNT);
}
*/
import "C"

// pinCurrentThread on Intel Macs calls thread_policy_set with
// THREAD_AFFINITY_POLICY, using lpID+1 as the affinity tag so that lpID 0
// does not map to THREAD_AFFINITY_TAG_NULL (0). This is
// advisory only: the kernel may group threads sharing a tag onto the
// same L2/L3 domain rather than a specific logical processor, and QoS
// can override it (spec.md §4.5).
func pinCurrentThread(lpID uint32) error {
	if kr := C.hwtopo_set_thread_affinity(C.integer_t(lpID) + 1); kr != C.KERN_SUCCESS {
		return errAffinity("thread_policy_set(THREAD_AFFINITY_POLICY): kern_return_t %d", int(kr))
	}
	return nil
}

// setCurrentThreadAffinity is unsupported on macOS even on Intel: there
// is no multi-core equivalent of THREAD_AFFINITY_POLICY's single
// affinity tag (spec.md §4.5).
func setCurrentThreadAffinity(mask AffinityMask) error {
	return errUnsupported("set_current_thread_affinity is not supported on macOS")
}
