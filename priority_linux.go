//go:build linux

package hwtopo

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// linuxSchedParam mirrors struct sched_param from <sched.h>. golang.org/x/sys/unix
// has no sched_setscheduler wrapper, so the raw syscall below needs this
// layout itself.
type linuxSchedParam struct {
	Priority int32
}

const schedOther = 0
const schedRR = 2

// schedSetschedulerFn sets the scheduling policy and priority of the
// thread named by tid. Production code wires this to schedSetscheduler;
// tests inject a fake that returns unix.EPERM or success on demand, the
// same seam pathReaderFn/pathGlobFn give sysfs_linux.go.
type schedSetschedulerFn func(tid int, policy int, priority int32) error

// setPriorityFn sets the nice value of the thread named by tid.
// Production code wires this to unix.Setpriority.
type setPriorityFn func(tid int, nice int) error

// schedPriorityRangeFn returns the min or max absolute priority a policy
// accepts. Production code wires this to schedPriorityMin/schedPriorityMax.
type schedPriorityRangeFn func(policy int) (int, error)

// linuxPriorityApplier applies a resolved LinuxSchedulingPolicy to the
// calling thread, with every underlying syscall routed through an
// injectable field so tests can exercise the RT-priority EPERM -> nice(0)
// degradation path (spec.md §4.5, §8 scenarios 5-6) without real
// privileges.
type linuxPriorityApplier struct {
	setScheduler schedSetschedulerFn
	setPriority  setPriorityFn
	priorityMin  schedPriorityRangeFn
	priorityMax  schedPriorityRangeFn
	gettid       func() int
}

func newLinuxPriorityApplier() *linuxPriorityApplier {
	return &linuxPriorityApplier{
		setScheduler: schedSetscheduler,
		setPriority:  func(tid int, nice int) error { return unix.Setpriority(unix.PRIO_PROCESS, tid, nice) },
		priorityMin:  schedPriorityMin,
		priorityMax:  schedPriorityMax,
		gettid:       unix.Gettid,
	}
}

func schedSetscheduler(tid int, policy int, priority int32) error {
	param := linuxSchedParam{Priority: priority}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, uintptr(tid), uintptr(policy), uintptr(unsafe.Pointer(&param)))
	if errno != 0 {
		return errno
	}
	return nil
}

// apply sets the calling thread's scheduling policy per p, degrading to
// nice(0)/SCHED_OTHER if the real-time path is denied (spec.md §4.5):
// background work should keep running rather than have its thread
// killed outright.
func (a *linuxPriorityApplier) apply(p Priority) error {
	policy := linuxSchedulingPolicyTable(p)
	tid := a.gettid()

	if policy.RealTime {
		rrPrio := policy.RRPriority
		min, errMin := a.priorityMin(schedRR)
		max, errMax := a.priorityMax(schedRR)
		if errMin == nil && errMax == nil {
			if rrPrio < min {
				rrPrio = min
			}
			if rrPrio > max {
				rrPrio = max
			}
		}
		if err := a.setScheduler(tid, schedRR, int32(rrPrio)); err != nil {
			if err == unix.EPERM {
				// Degrade to nice(0)/SCHED_OTHER before reporting
				// failure (spec.md §4.5): background work should keep
				// running rather than kill the thread outright.
				if fallbackErr := a.setPriority(tid, 0); fallbackErr != nil {
					return errPermissionDenied("sched_setscheduler(SCHED_RR, %d) denied, nice(0) fallback also failed: %s", rrPrio, fallbackErr)
				}
				return nil
			}
			return errSystemCall("sched_setscheduler: %s", err)
		}
		return nil
	}

	if err := a.setPriority(tid, policy.Nice); err != nil {
		if err == unix.EPERM {
			if fallbackErr := a.setPriority(tid, 0); fallbackErr != nil {
				return errPermissionDenied("setpriority(%d) denied, nice(0) fallback also failed: %s", policy.Nice, fallbackErr)
			}
			return nil
		}
		return errSystemCall("setpriority: %s", err)
	}
	return nil
}

func setCurrentThreadPriority(p Priority) error {
	return newLinuxPriorityApplier().apply(p)
}

// schedPriorityMin/Max wrap sched_get_priority_min/max, which
// golang.org/x/sys/unix also leaves unwrapped on Linux.
func schedPriorityMin(policy int) (int, error) {
	r0, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MIN, uintptr(policy), 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return int(int32(r0)), nil
}

func schedPriorityMax(policy int) (int, error) {
	r0, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MAX, uintptr(policy), 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return int(int32(r0)), nil
}
