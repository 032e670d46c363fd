package hwtopo

import "testing"

func TestValidateLPIDFindsExisting(t *testing.T) {
	top := twoSocketHybridTopology()
	if err := validateLPID(top, 4); err != nil {
		t.Fatalf("validateLPID(4) = %v, want nil", err)
	}
}

func TestValidateLPIDRejectsUnknown(t *testing.T) {
	top := twoSocketHybridTopology()
	err := validateLPID(top, 999)
	if err == nil {
		t.Fatal("validateLPID(999) = nil, want an error")
	}
	herr, ok := err.(*Error)
	if !ok || herr.Kind != InvalidCoreID {
		t.Fatalf("validateLPID(999) error = %v, want Kind == InvalidCoreID", err)
	}
}

func TestSetCurrentThreadPriorityRejectsOutOfRange(t *testing.T) {
	if err := SetCurrentThreadPriority(Priority(-1)); err == nil {
		t.Fatal("SetCurrentThreadPriority(-1) = nil, want an error")
	}
	if err := SetCurrentThreadPriority(Priority(100)); err == nil {
		t.Fatal("SetCurrentThreadPriority(100) = nil, want an error")
	}
}
