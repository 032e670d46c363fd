//go:build darwin

package hwtopo

/*
#include <pthread.h>
#include <sched.h>
#include <errno.h>

static int hwtopo_set_qos(int qos_class, int relative_priority) {
	if (pthread_set_qos_class_self_np((qos_class_t)qos_class, relative_priority) != 0) {
		return errno;
	}
	return 0;
}

static int hwtopo_set_sched_rr(int priority) {
	struct sched_param param;
	param.sched_priority = priority;
	if (pthread_setschedparam(pthread_self(), SCHED_RR, &param) != 0) {
		return errno;
	}
	return 0;
}

static int hwtopo_sched_rr_min(void) { return sched_get_priority_min(SCHED_RR); }
static int hwtopo_sched_rr_max(void) { return sched_get_priority_max(SCHED_RR); }

enum {
	hwtopo_qos_user_interactive = QOS_CLASS_USER_INTERACTIVE,
	hwtopo_qos_user_initiated   = QOS_CLASS_USER_INITIATED,
	hwtopo_qos_default          = QOS_CLASS_DEFAULT,
	hwtopo_qos_utility          = QOS_CLASS_UTILITY,
	hwtopo_qos_background       = QOS_CLASS_BACKGROUND,
};
*/
import "C"

// darwinQOSClassConst translates the portable DarwinQoSClass enum into
// the cgo-side QOS_CLASS_* constant.
func darwinQOSClassConst(c DarwinQoSClass) C.int {
	switch c {
	case DarwinQoSBackground:
		return C.hwtopo_qos_background
	case DarwinQoSUtility:
		return C.hwtopo_qos_utility
	case DarwinQoSDefault:
		return C.hwtopo_qos_default
	case DarwinQoSUserInteractive:
		return C.hwtopo_qos_user_interactive
	default:
		return C.hwtopo_qos_user_initiated
	}
}

func setCurrentThreadPriority(p Priority) error {
	policy := darwinSchedulingPolicyTable(p)

	if !policy.Absolute {
		qos := darwinQOSClassConst(policy.QoSClass)
		if errno := C.hwtopo_set_qos(qos, C.int(policy.RelativePriority)); errno != 0 {
			return errAffinity("pthread_set_qos_class_self_np: errno %d", int(errno))
		}
		return nil
	}

	min := int(C.hwtopo_sched_rr_min())
	max := int(C.hwtopo_sched_rr_max())
	prio := policy.AbsolutePriority
	if prio < min {
		prio = min
	}
	if prio > max {
		prio = max
	}

	if errno := C.hwtopo_set_sched_rr(C.int(prio)); errno != 0 {
		return errAffinity("pthread_setschedparam(SCHED_RR, %d): errno %d", prio, int(errno))
	}
	return nil
}
