package hwtopo

import "testing"

func twoSocketHybridTopology() *Topology {
	mkCore := func(globalID, socketID uint32, class CoreClass, lpIDs ...uint32) *PhysicalCore {
		return &PhysicalCore{GlobalID: globalID, SocketID: socketID, Class: class, LPIDs: lpIDs}
	}
	s0 := &Socket{ID: 0, Cores: []*PhysicalCore{
		mkCore(0, 0, CorePerformance, 0, 1),
		mkCore(1, 0, CorePerformance, 2, 3),
		mkCore(2, 0, CoreEfficiency, 4),
	}}
	s1 := &Socket{ID: 1, Cores: []*PhysicalCore{
		mkCore(3, 1, CorePerformance, 5, 6),
		mkCore(4, 1, CoreEfficiency, 7),
	}}
	t := &Topology{Vendor: VendorIntel, ModelName: "Test CPU", Sockets: []*Socket{s0, s1}}
	t.finalize()
	return t
}

func TestTopologyFinalizeAggregates(t *testing.T) {
	top := twoSocketHybridTopology()

	if top.TotalSockets != 2 {
		t.Fatalf("TotalSockets = %d, want 2", top.TotalSockets)
	}
	if top.TotalPhysicalCores != 5 {
		t.Fatalf("TotalPhysicalCores = %d, want 5", top.TotalPhysicalCores)
	}
	if top.TotalLogicalProcessors != 8 {
		t.Fatalf("TotalLogicalProcessors = %d, want 8", top.TotalLogicalProcessors)
	}
	if top.TotalPerformanceCores != 3 {
		t.Fatalf("TotalPerformanceCores = %d, want 3", top.TotalPerformanceCores)
	}
	if top.TotalEfficiencyCores != 2 {
		t.Fatalf("TotalEfficiencyCores = %d, want 2", top.TotalEfficiencyCores)
	}
	if !top.IsHybrid() {
		t.Fatal("IsHybrid() = false, want true")
	}
}

func TestTopologyFinalizeDegenerateAllUnknown(t *testing.T) {
	core := &PhysicalCore{GlobalID: 0, SocketID: 0, Class: CoreUnknown, LPIDs: []uint32{0, 1}}
	top := &Topology{Sockets: []*Socket{{ID: 0, Cores: []*PhysicalCore{core}}}}
	top.finalize()

	if top.IsHybrid() {
		t.Fatal("IsHybrid() = true for an all-Unknown topology, want false")
	}
	if core.Class != CorePerformance {
		t.Fatalf("Class = %s, want %s (all-Unknown degenerates to Performance)", core.Class, CorePerformance)
	}
	if top.TotalPerformanceCores != 1 || top.TotalEfficiencyCores != 0 {
		t.Fatalf("got perf=%d eff=%d, want perf=1 eff=0", top.TotalPerformanceCores, top.TotalEfficiencyCores)
	}
}

func TestTopologyValidatePasses(t *testing.T) {
	top := twoSocketHybridTopology()
	if err := top.validate(); err != nil {
		t.Fatalf("validate() = %v, want nil", err)
	}
}

func TestTopologyValidateRejectsMismatchedSocketID(t *testing.T) {
	core := &PhysicalCore{GlobalID: 0, SocketID: 7, LPIDs: []uint32{0}}
	top := &Topology{Sockets: []*Socket{{ID: 0, Cores: []*PhysicalCore{core}}}}
	top.finalize()

	if err := top.validate(); err == nil {
		t.Fatal("validate() = nil, want an error for mismatched socket_id")
	}
}

func TestTopologyValidateRejectsNonIncreasingLPIDs(t *testing.T) {
	core := &PhysicalCore{GlobalID: 0, SocketID: 0, LPIDs: []uint32{1, 1}}
	top := &Topology{Sockets: []*Socket{{ID: 0, Cores: []*PhysicalCore{core}}}}
	top.finalize()

	if err := top.validate(); err == nil {
		t.Fatal("validate() = nil, want an error for non-increasing lp_ids")
	}
}

func TestTopologyValidateRejectsDuplicateLP(t *testing.T) {
	c0 := &PhysicalCore{GlobalID: 0, SocketID: 0, LPIDs: []uint32{0}}
	c1 := &PhysicalCore{GlobalID: 1, SocketID: 0, LPIDs: []uint32{0}}
	top := &Topology{Sockets: []*Socket{{ID: 0, Cores: []*PhysicalCore{c0, c1}}}}
	top.finalize()

	if err := top.validate(); err == nil {
		t.Fatal("validate() = nil, want an error for an lp_id shared by two cores")
	}
}

func TestTopologyValidateRejectsInvalidCache(t *testing.T) {
	core := &PhysicalCore{
		GlobalID: 0, SocketID: 0, LPIDs: []uint32{0},
		L1D: &CacheDescriptor{Level: CacheLevelL1, Kind: CacheKindData, SizeBytes: 0, LineBytes: 64},
	}
	top := &Topology{Sockets: []*Socket{{ID: 0, Cores: []*PhysicalCore{core}}}}
	top.finalize()

	if err := top.validate(); err == nil {
		t.Fatal("validate() = nil, want an error for a zero-size cache descriptor")
	}
}
