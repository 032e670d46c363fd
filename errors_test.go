package hwtopo

import "testing"

func TestErrorMessagesIncludeContext(t *testing.T) {
	if got := errInvalidCoreID(71).Error(); got != "invalid core id: 71" {
		t.Fatalf("Error() = %q", got)
	}
	if got := errNoCoreOfType(CoreEfficiency).Error(); got != "no core of type Efficiency found" {
		t.Fatalf("Error() = %q", got)
	}
	if got := errPermissionDenied("sched_setscheduler denied").Error(); got != "permission denied: sched_setscheduler denied" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestKindStringCoversAllVariants(t *testing.T) {
	kinds := []Kind{Detection, InvalidCoreID, NoCoreOfType, Affinity, Unsupported,
		PermissionDenied, IO, SystemCall, NotFound, InvalidParameter, NotImplemented}
	for _, k := range kinds {
		if k.String() == "unknown" {
			t.Errorf("Kind(%d).String() = %q, want a named string", int(k), k.String())
		}
	}
}
