package hwtopo

import "fmt"

// LinuxSchedulingPolicy is the concrete Linux scheduling policy a
// Priority resolves to: either a SCHED_OTHER nice value or an absolute
// SCHED_RR priority (spec.md §4.5). Exposed so callers can log or assert
// the resolved policy before calling SetCurrentThreadPriority, mirroring
// the inspectable SchedulingPolicy value the original gdt-cpus crate
// returns from its own default_for.
type LinuxSchedulingPolicy struct {
	// RealTime is true when this Priority maps to an absolute SCHED_RR
	// priority rather than a SCHED_OTHER nice value.
	RealTime bool
	// Nice is the nice value to use when RealTime is false.
	Nice int
	// RRPriority is the unclamped SCHED_RR priority to use when RealTime
	// is true. The platform back-end clamps this against
	// sched_get_priority_min/max before applying it.
	RRPriority int
}

func (p LinuxSchedulingPolicy) String() string {
	if p.RealTime {
		return fmt.Sprintf("SCHED_RR priority %d", p.RRPriority)
	}
	return fmt.Sprintf("SCHED_OTHER nice %d", p.Nice)
}

// linuxSchedulingPolicyTable is the Priority -> SchedulingPolicy mapping
// of spec.md §4.5's table, shared by SchedulingPolicyForLinux and the
// Linux back-end itself so the two never drift apart.
func linuxSchedulingPolicyTable(p Priority) LinuxSchedulingPolicy {
	switch p {
	case Background:
		return LinuxSchedulingPolicy{Nice: 19}
	case Lowest:
		return LinuxSchedulingPolicy{Nice: 15}
	case BelowNormal:
		return LinuxSchedulingPolicy{Nice: 10}
	case Normal:
		return LinuxSchedulingPolicy{Nice: 0}
	case AboveNormal:
		return LinuxSchedulingPolicy{Nice: -5}
	case Highest:
		return LinuxSchedulingPolicy{RealTime: true, RRPriority: 97}
	case TimeCritical:
		return LinuxSchedulingPolicy{RealTime: true, RRPriority: 99}
	default:
		return LinuxSchedulingPolicy{Nice: 0}
	}
}

// SchedulingPolicyForLinux returns the Linux scheduling policy that p
// resolves to, without applying it.
func SchedulingPolicyForLinux(p Priority) LinuxSchedulingPolicy {
	return linuxSchedulingPolicyTable(p)
}

// DarwinQoSClass identifies one of macOS's Quality-of-Service classes.
type DarwinQoSClass int

const (
	DarwinQoSBackground DarwinQoSClass = iota
	DarwinQoSUtility
	DarwinQoSDefault
	DarwinQoSUserInitiated
	DarwinQoSUserInteractive
)

func (c DarwinQoSClass) String() string {
	switch c {
	case DarwinQoSBackground:
		return "Background"
	case DarwinQoSUtility:
		return "Utility"
	case DarwinQoSDefault:
		return "Default"
	case DarwinQoSUserInitiated:
		return "User Initiated"
	case DarwinQoSUserInteractive:
		return "User Interactive"
	default:
		return "Unknown"
	}
}

// DarwinSchedulingPolicy is the concrete macOS scheduling policy a
// Priority resolves to: either a QoS class with a relative priority
// offset, or an absolute SCHED_RR priority for the two highest levels
// (spec.md §4.5).
type DarwinSchedulingPolicy struct {
	// Absolute is true when this Priority maps to an absolute SCHED_RR
	// priority rather than a QoS class.
	Absolute bool
	// QoSClass is the QoS class to use when Absolute is false.
	QoSClass DarwinQoSClass
	// RelativePriority is the offset from QoSClass's default priority.
	// This package's mapping table always uses 0.
	RelativePriority int
	// AbsolutePriority is the unclamped SCHED_RR priority to use when
	// Absolute is true. The platform back-end clamps this against
	// sched_get_priority_min/max before applying it.
	AbsolutePriority int
}

func (p DarwinSchedulingPolicy) String() string {
	if p.Absolute {
		return fmt.Sprintf("Absolute Priority: %d", p.AbsolutePriority)
	}
	return fmt.Sprintf("QoS Class: %s, Relative Priority: %d", p.QoSClass, p.RelativePriority)
}

// darwinSchedulingPolicyTable is the Priority -> SchedulingPolicy mapping
// of spec.md §4.5's table, shared by SchedulingPolicyForDarwin and the
// Darwin back-end itself so the two never drift apart.
func darwinSchedulingPolicyTable(p Priority) DarwinSchedulingPolicy {
	switch p {
	case Background:
		return DarwinSchedulingPolicy{QoSClass: DarwinQoSBackground}
	case Lowest:
		return DarwinSchedulingPolicy{QoSClass: DarwinQoSUtility}
	case BelowNormal:
		return DarwinSchedulingPolicy{QoSClass: DarwinQoSDefault}
	case Normal:
		return DarwinSchedulingPolicy{QoSClass: DarwinQoSUserInitiated}
	case AboveNormal:
		return DarwinSchedulingPolicy{QoSClass: DarwinQoSUserInteractive}
	case Highest:
		return DarwinSchedulingPolicy{Absolute: true, AbsolutePriority: 43}
	case TimeCritical:
		return DarwinSchedulingPolicy{Absolute: true, AbsolutePriority: 47}
	default:
		return DarwinSchedulingPolicy{QoSClass: DarwinQoSUserInitiated}
	}
}

// SchedulingPolicyForDarwin returns the macOS scheduling policy that p
// resolves to, without applying it.
func SchedulingPolicyForDarwin(p Priority) DarwinSchedulingPolicy {
	return darwinSchedulingPolicyTable(p)
}
